package middleware

import (
	"time"

	"daily-report/internal/logger"

	"github.com/gin-gonic/gin"
)

// RequestLog writes one structured line per request.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			args = append(args, "errors", c.Errors.String())
		}
		switch status := c.Writer.Status(); {
		case status >= 500:
			logger.Error("http.request", args...)
		case status >= 400:
			logger.Warn("http.request", args...)
		default:
			logger.Debug("http.request", args...)
		}
	}
}
