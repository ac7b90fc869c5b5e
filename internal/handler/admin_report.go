package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"daily-report/internal/logger"
	"daily-report/internal/middleware"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type AdminReportHandler struct{ reports *service.ReportService }

func NewAdminReportHandler(reports *service.ReportService) *AdminReportHandler {
	return &AdminReportHandler{reports: reports}
}

// GET /api/admin/reports?employeeId&startDate&endDate&page&limit
func (h *AdminReportHandler) List(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	page, limit, ok := parsePage(c)
	if !ok {
		return
	}
	f.Limit = limit
	f.Offset = (page - 1) * limit

	reports, total, err := h.reports.Query(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ReportPage{Reports: reports, Total: total, Page: page, Limit: limit})
}

// GET /api/admin/reports/summary?employeeId&startDate&endDate
func (h *AdminReportHandler) Summary(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	sum, err := h.reports.Summary(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

// GET /api/admin/reports/export?employeeId&startDate&endDate&format=csv|xlsx
// Pagination parameters are ignored; every matching report is exported.
func (h *AdminReportHandler) Export(c *gin.Context) {
	f, ok := parseFilter(c)
	if !ok {
		return
	}
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		fail(c, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	reports, _, err := h.reports.Query(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	contentType := contentTypeCSV
	if format == "xlsx" {
		contentType = contentTypeXLSX
		err = service.WriteXLSX(&buf, reports)
	} else {
		err = service.WriteCSV(&buf, reports)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	name := fmt.Sprintf("daily-reports-%s.%s", h.reports.Today(), format)
	logger.Info("report.export", "admin", middleware.CurrentAdmin(c).Username, "format", format, "rows", len(reports))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// GET /api/admin/reports/:id
func (h *AdminReportHandler) Get(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	r, err := h.reports.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// PUT /api/admin/reports/:id
func (h *AdminReportHandler) Update(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	var patch model.ReportPatch
	if !bindJSON(c, &patch) {
		return
	}
	r, err := h.reports.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("report.update", "admin", middleware.CurrentAdmin(c).Username, "report_id", id)
	c.JSON(http.StatusOK, r)
}

// DELETE /api/admin/reports/:id
func (h *AdminReportHandler) Delete(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.reports.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	logger.Info("report.delete", "admin", middleware.CurrentAdmin(c).Username, "report_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "report deleted"})
}
