package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/observability"
	"github.com/jirani-app/app-jirani/internal/utils"
	"go.uber.org/zap"
)

// HealthResponse reports the state of the API and its dependencies
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// PingFunc checks one dependency
type PingFunc func(ctx context.Context) error

// HealthHandlers serves the health endpoint
type HealthHandlers struct {
	checks map[string]PingFunc
}

// NewHealthHandlers creates the health handlers with one check per dependency
func NewHealthHandlers(checks map[string]PingFunc) *HealthHandlers {
	return &HealthHandlers{checks: checks}
}

// HealthCheck godoc
// @Summary Health check
// @Description Checks the API and its dependencies (MongoDB and Redis).
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All services healthy"
// @Failure 503 {object} HealthResponse "One or more services unavailable"
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string, len(h.checks)),
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		checkCtx, span, end := utils.TraceExternalService(ctx, name, "ping")
		if err := h.checks[name](checkCtx); err != nil {
			utils.RecordErrorInSpan(span, err, map[string]interface{}{"service.name": name})
			observability.Logger().Warn("health check failed", zap.String("service", name), zap.Error(err))
			health.Status = "unhealthy"
			health.Services[name] = "unhealthy"
		} else {
			health.Services[name] = "healthy"
		}
		end()
	}

	if health.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
