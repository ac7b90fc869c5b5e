package handler

import (
	"errors"
	"net/http"

	"daily-report/internal/logger"
	"daily-report/internal/middleware"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler serves the employee side of daily reports.
type ReportHandler struct{ reports *service.ReportService }

func NewReportHandler(reports *service.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// POST /api/reports/submit
func (h *ReportHandler) Submit(c *gin.Context) {
	var req model.SubmitReportRequest
	if !bindJSON(c, &req) {
		return
	}
	e := middleware.CurrentEmployee(c)
	date := h.reports.Today()

	r, err := h.reports.Submit(c.Request.Context(), e.EmployeeID, e.Name, req.Counters(), date)
	if err != nil {
		if errors.Is(err, service.ErrReportExists) {
			logger.Info("report.duplicate", "employee_id", e.EmployeeID, "date", date)
		}
		respondError(c, err)
		return
	}
	logger.Info("report.submit", "employee_id", e.EmployeeID, "date", date, "report_id", r.ID)
	c.JSON(http.StatusCreated, r)
}

// GET /api/reports/today
func (h *ReportHandler) Today(c *gin.Context) {
	e := middleware.CurrentEmployee(c)
	date := h.reports.Today()

	r, err := h.reports.FindByDate(c.Request.Context(), e.EmployeeID, date)
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusOK, model.TodayStatus{Date: date})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.TodayStatus{Date: date, Submitted: true, Report: r})
}

// GET /api/reports/mine?page&limit
func (h *ReportHandler) Mine(c *gin.Context) {
	page, limit, ok := parsePage(c)
	if !ok {
		return
	}
	e := middleware.CurrentEmployee(c)
	reports, total, err := h.reports.Query(c.Request.Context(), model.ReportFilter{
		EmployeeID: e.EmployeeID,
		Limit:      limit,
		Offset:     (page - 1) * limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.ReportPage{Reports: reports, Total: total, Page: page, Limit: limit})
}
