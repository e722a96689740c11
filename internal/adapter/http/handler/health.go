package handler

import (
	"net/http"

	"qr-slot-allocator/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// Overall health states.
const (
	healthOK        = "healthy"
	healthDegraded  = "degraded"  // idempotency or rate limiting unavailable
	healthUnhealthy = "unhealthy" // allocations cannot be served
)

// HealthCheck handles GET /health. A failing critical dependency answers 503;
// a failing optional one answers 200 with status "degraded".
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status   string `json:"status"`
			Critical bool   `json:"critical"`
			Error    string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus, len(checkers))
		status := healthOK

		for _, checker := range checkers {
			dep := depStatus{Status: healthOK, Critical: checker.Critical()}
			if err := checker.Ping(c.Request.Context()); err != nil {
				dep.Status = healthUnhealthy
				dep.Error = err.Error()
				switch {
				case checker.Critical():
					status = healthUnhealthy
				case status == healthOK:
					status = healthDegraded
				}
			}
			deps[checker.Name()] = dep
		}

		httpCode := http.StatusOK
		if status == healthUnhealthy {
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
