package handler

import (
	"net/http"

	"daily-report/internal/logger"
	"daily-report/internal/middleware"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{ auth *service.AuthService }

func NewAuthHandler(auth *service.AuthService) *AuthHandler { return &AuthHandler{auth: auth} }

// POST /api/employee/login
func (h *AuthHandler) EmployeeLogin(c *gin.Context) {
	var req model.EmployeeLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	e, sess, err := h.auth.EmployeeLogin(c.Request.Context(), req.EmployeeID, req.Password)
	if err != nil {
		logger.Warn("login.failed", "kind", model.KindEmployee, "employee_id", req.EmployeeID)
		respondError(c, err)
		return
	}

	logger.Info("login.ok", "kind", model.KindEmployee, "id", e.ID, "employee_id", e.EmployeeID)
	c.JSON(http.StatusOK, model.EmployeeLoginResponse{
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
		Employee:     e,
	})
}

// POST /api/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req model.AdminLoginRequest
	if !bindJSON(c, &req) {
		return
	}

	a, sess, err := h.auth.AdminLogin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "kind", model.KindAdmin, "username", req.Username)
		respondError(c, err)
		return
	}

	logger.Info("login.ok", "kind", model.KindAdmin, "id", a.ID, "username", a.Username)
	c.JSON(http.StatusOK, model.AdminLoginResponse{
		SessionToken: sess.Token,
		ExpiresAt:    sess.ExpiresAt,
		Admin:        a,
	})
}

// POST /api/employee/logout, POST /api/admin/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.CurrentSession(c)
	if err := h.auth.Logout(c.Request.Context(), sess.Token); err != nil {
		respondError(c, err)
		return
	}
	logger.Info("logout", "kind", sess.PrincipalKind, "id", sess.PrincipalID)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// GET /api/employee/me
func (h *AuthHandler) EmployeeMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentEmployee(c))
}

// GET /api/admin/me
func (h *AuthHandler) AdminMe(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentAdmin(c))
}
