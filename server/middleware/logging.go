package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webtoon-api/logger"
)

// RequestLogger returns a Gin middleware that logs every request once it
// completes. The level follows the status: 5xx error, 4xx warn, else debug.
// Health checks are skipped. Headers and bodies are never logged.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		reqLog := log.WithContext(c.Request.Context()).WithFields(map[string]interface{}{
			"method":             c.Request.Method,
			"path":               c.Request.URL.Path,
			logger.FieldClientIP: c.ClientIP(),
		})
		fields := map[string]interface{}{
			logger.FieldStatus:   status,
			logger.FieldDuration: latency.Milliseconds(),
		}
		if latency > 500*time.Millisecond {
			fields["slow"] = true
		}
		logByStatus(reqLog, fields, status)
	}
}

// logByStatus logs request fields at the appropriate level based on HTTP status code.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Debug("Request completed", fields)
	}
}
