package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bac-interop/interop-backend/internal/bac/status"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStatus struct{}

func (fakeStatus) Snapshot(context.Context) (map[string]*status.Status, error) {
	return map[string]*status.Status{"users": {System: "users", OK: true, StatusCode: 200}}, nil
}

func setupHealthRouter(h *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h.RegisterRoutes(router)
	h.RegisterAPIRoutes(router.Group("/api/v1"))
	return router
}

func TestHealthCheck(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler("test-service", "1.0.0", nil, fakeStatus{}))

	for _, path := range []string{"/health", "/healthz"} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rr.Code)

		var response HealthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "test-service", response.Service)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "disabled", response.DB)
		assert.Contains(t, response.Metrics, "users")
		assert.Contains(t, response.Metrics, "publications")
		require.Contains(t, response.Upstreams, "users")
		assert.True(t, response.Upstreams["users"].OK)
	}
}

func TestHealthCheckMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.HandleMethodNotAllowed = true
	NewHealthHandler("test-service", "1.0.0", nil, nil).RegisterRoutes(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestPing(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler("test-service", "1.0.0", nil, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message": "pong"}`, rr.Body.String())
}

func TestDBCheck_NoDatabase(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler("test-service", "1.0.0", nil, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/db-check", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
