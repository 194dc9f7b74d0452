package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/webtoon-api/errors"
	"github.com/kbukum/webtoon-api/logger"
)

// Recovery returns a Gin middleware that recovers from panics, logs the
// stack and answers INTERNAL_ERROR.
func Recovery(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.WithContext(c.Request.Context()).Error("Panic recovered", map[string]interface{}{
					logger.FieldError:    fmt.Sprintf("%v", err),
					"stack":              string(debug.Stack()),
					"path":               c.Request.URL.Path,
					"method":             c.Request.Method,
					logger.FieldClientIP: c.ClientIP(),
				})
				abortWithError(c, apperrors.Internal(fmt.Errorf("panic: %v", err)))
			}
		}()
		c.Next()
	}
}
