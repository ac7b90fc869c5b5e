package handler

import (
	"net/http"

	"daily-report/internal/logger"
	"daily-report/internal/middleware"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

// EmployeeHandler is the admin-only employee account CRUD.
type EmployeeHandler struct{ employees *service.EmployeeService }

func NewEmployeeHandler(employees *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employees: employees}
}

// GET /api/admin/employees
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.employees.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []model.Employee{}
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/admin/employees
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req model.CreateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.employees.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("employee.create", "admin", middleware.CurrentAdmin(c).Username, "employee_id", e.EmployeeID)
	c.JSON(http.StatusCreated, e)
}

// GET /api/admin/employees/:id
func (h *EmployeeHandler) Get(c *gin.Context) {
	e, err := h.employees.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// PUT /api/admin/employees/:id
func (h *EmployeeHandler) Update(c *gin.Context) {
	var req model.UpdateEmployeeRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.employees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	logger.Info("employee.update", "admin", middleware.CurrentAdmin(c).Username, "employee_id", e.EmployeeID)
	c.JSON(http.StatusOK, e)
}

// DELETE /api/admin/employees/:id
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.employees.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	logger.Info("employee.delete", "admin", middleware.CurrentAdmin(c).Username, "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "employee deleted"})
}
