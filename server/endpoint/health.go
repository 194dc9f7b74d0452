// Package endpoint holds built-in HTTP handlers shared by services.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/webtoon-api/component"
)

// HealthChecker returns the aggregate health of the service's components.
type HealthChecker func(ctx context.Context) component.Report

// Health returns a handler that reports service health including component
// statuses. An unhealthy service answers 503.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := component.Report{Status: component.StatusHealthy, Components: []component.Health{}}
		if checker != nil {
			report = checker(c.Request.Context())
		}

		httpStatus := http.StatusOK
		if report.Status == component.StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     report.Status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": report.Components,
		})
	}
}
