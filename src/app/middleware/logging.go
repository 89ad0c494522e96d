package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"roombooking/src/infra/logger"
)

// Logging emits one access log line per request. Bodies are not logged:
// they carry passwords and personal details.
func Logging(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		status := c.Writer.Status()
		reqLog := logger.WithRequestID(log, GetRequestID(c))
		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"route", c.FullPath(),
			"status", status,
			"bytes", c.Writer.Size(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error(reqLog, "request failed", attrs...)
		case status >= 400:
			logger.Warn(reqLog, "request rejected", attrs...)
		default:
			logger.Info(reqLog, "request served", attrs...)
		}
	}
}
