package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"daily-report/internal/logger"
	"daily-report/internal/middleware"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

const maxImportSize = 5 << 20

// Import handles POST /api/admin/employees/import. The multipart field "file"
// holds a .csv or .xlsx list with columns Employee ID, Name, Password.
func (h *EmployeeHandler) Import(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "file is required")
		return
	}
	if file.Size > maxImportSize {
		fail(c, http.StatusBadRequest, "file is too large")
		return
	}
	logger.Info("employee.import.start", "file", file.Filename, "size", file.Size)

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	rows, err := service.ReadEmployeeSheet(src, format)
	if err != nil {
		logger.Warn("employee.import.unreadable", "file", file.Filename, "err", err)
		respondError(c, err)
		return
	}

	res, err := h.employees.Import(c.Request.Context(), rows)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("employee.import.done", "admin", middleware.CurrentAdmin(c).Username, "imported", res.Imported, "skipped", len(res.Skipped))
	c.JSON(http.StatusOK, res)
}
