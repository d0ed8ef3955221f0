// Package endpoint provides the operational HTTP endpoints shared by every
// deployment: health and version.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/observability"
)

// HealthChecker reports the health of the service's backends.
type HealthChecker func(ctx context.Context) []observability.Health

// Health returns a handler that reports service health, including the
// availability of the diarization and transcription backends. A degraded
// backend does not fail the probe; only a down component returns 503.
func Health(serviceName, serviceVersion string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		sh := observability.NewServiceHealth(serviceName, serviceVersion)
		if checker != nil {
			for _, h := range checker(c.Request.Context()) {
				sh.AddComponent(h)
			}
		}

		httpStatus := http.StatusOK
		if sh.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     sh.Status,
			"service":    sh.Service,
			"version":    sh.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": sh.Components,
		})
	}
}
