package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name         string
		checks       map[string]PingFunc
		wantStatus   int
		wantHealth   string
		wantServices map[string]string
	}{
		{
			name:         "all healthy",
			checks:       map[string]PingFunc{"mongodb": ok, "redis": ok},
			wantStatus:   http.StatusOK,
			wantHealth:   "healthy",
			wantServices: map[string]string{"mongodb": "healthy", "redis": "healthy"},
		},
		{
			name:         "redis down",
			checks:       map[string]PingFunc{"mongodb": ok, "redis": down},
			wantStatus:   http.StatusServiceUnavailable,
			wantHealth:   "unhealthy",
			wantServices: map[string]string{"mongodb": "healthy", "redis": "unhealthy"},
		},
		{
			name:         "no dependencies",
			checks:       map[string]PingFunc{},
			wantStatus:   http.StatusOK,
			wantHealth:   "healthy",
			wantServices: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/v1/health", NewHealthHandlers(tt.checks).HealthCheck)

			w := doJSON(router, http.MethodGet, "/v1/health", nil)
			require.Equal(t, tt.wantStatus, w.Code)

			var resp HealthResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.wantHealth, resp.Status)
			assert.Equal(t, tt.wantServices, resp.Services)
			assert.False(t, resp.Timestamp.IsZero())
		})
	}
}
