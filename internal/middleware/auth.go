package middleware

import (
	"errors"
	"net/http"
	"strings"

	"daily-report/internal/logger"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	KeyEmployee = "employee"
	KeyAdmin    = "admin"
	KeySession  = "session"
)

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("Bearer "):])
}

func RequireEmployee(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		e, sess, err := auth.AuthenticateEmployee(c.Request.Context(), BearerToken(c))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(KeyEmployee, e)
		c.Set(KeySession, sess)
		c.Next()
	}
}

func RequireAdmin(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, sess, err := auth.AuthenticateAdmin(c.Request.Context(), BearerToken(c))
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(KeyAdmin, a)
		c.Set(KeySession, sess)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Message: "unauthorized"})
	case errors.Is(err, service.ErrPrincipalNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, model.ErrorResponse{Message: "account not found"})
	default:
		logger.Error("auth.resolve.failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{Message: "internal server error"})
	}
}

func CurrentEmployee(c *gin.Context) *model.Employee {
	e, _ := c.MustGet(KeyEmployee).(*model.Employee)
	return e
}

func CurrentAdmin(c *gin.Context) *model.Admin {
	a, _ := c.MustGet(KeyAdmin).(*model.Admin)
	return a
}

func CurrentSession(c *gin.Context) *model.Session {
	s, _ := c.MustGet(KeySession).(*model.Session)
	return s
}
