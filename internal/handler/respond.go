package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"daily-report/internal/logger"
	"daily-report/internal/model"
	"daily-report/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var registerOnce sync.Once

// RegisterValidation makes binding errors name fields by their JSON keys.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, model.ErrorResponse{Message: msg})
}

// respondError maps service errors onto the HTTP error taxonomy.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, service.ErrUnauthenticated):
		fail(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrPrincipalNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrReportExists):
		fail(c, http.StatusConflict, "report already submitted for this date")
	case errors.Is(err, service.ErrEmployeeIDTaken):
		fail(c, http.StatusConflict, "employee id already exists")
	case errors.Is(err, service.ErrUsernameTaken):
		fail(c, http.StatusConflict, "username already exists")
	case errors.Is(err, service.ErrImportFile):
		fail(c, http.StatusBadRequest, "file must be a .csv or .xlsx employee list")
	default:
		logger.Error("request.failed", "path", c.FullPath(), "err", err)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}

// bindJSON decodes and validates the body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		fail(c, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		fe := ve[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "min":
			if fe.Kind() == reflect.String {
				return fmt.Sprintf("%s must not be empty", fe.Field())
			}
			return fmt.Sprintf("%s must be a non-negative integer", fe.Field())
		case "max":
			return fmt.Sprintf("%s is too long", fe.Field())
		case "datetime":
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fe.Field())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	}
	return "invalid request body"
}

func parsePage(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, defaultLimit
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "page must be a positive integer")
			return 0, 0, false
		}
		page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fail(c, http.StatusBadRequest, "limit must be a positive integer")
			return 0, 0, false
		}
		limit = min(n, maxLimit)
	}
	return page, limit, true
}

// parseFilter reads employeeId, startDate and endDate from the query string.
func parseFilter(c *gin.Context) (model.ReportFilter, bool) {
	f := model.ReportFilter{
		EmployeeID: strings.TrimSpace(c.Query("employeeId")),
		StartDate:  c.Query("startDate"),
		EndDate:    c.Query("endDate"),
	}
	for name, v := range map[string]string{"startDate": f.StartDate, "endDate": f.EndDate} {
		if v == "" {
			continue
		}
		if _, err := time.Parse(service.DateLayout, v); err != nil {
			fail(c, http.StatusBadRequest, name+" must be a date in YYYY-MM-DD format")
			return f, false
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		fail(c, http.StatusBadRequest, "startDate must not be after endDate")
		return f, false
	}
	return f, true
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		fail(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(n), true
}
