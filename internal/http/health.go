package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const healthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

// Pinger is anything the health endpoint can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one named dependency. A failing critical check makes the
// instance unhealthy, any other failure only degrades it.
type HealthCheck struct {
	Name     string
	Target   Pinger
	Critical bool
}

type HealthController struct {
	checks  []HealthCheck
	version string
}

func NewHealthController(version string, checks ...HealthCheck) *HealthController {
	return &HealthController{checks: checks, version: version}
}

func (h *HealthController) Status(c *gin.Context) {
	results := make(map[string]string, len(h.checks))
	status := "healthy"

	for _, check := range h.checks {
		if check.Target == nil {
			results[check.Name] = "not configured"
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := check.Target.Ping(ctx)
		cancel()
		if err == nil {
			results[check.Name] = "ok"
			continue
		}

		log.Warn().Err(err).Str("check", check.Name).Msg("health check failed")
		results[check.Name] = "error: " + err.Error()
		switch {
		case check.Critical:
			status = "unhealthy"
		case status == "healthy":
			status = "degraded"
		}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  results,
	})
}

// Ping is a liveness probe that never touches a dependency.
func (h *HealthController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
