package http

import (
	"context"
	"net/http"
	"time"

	"github.com/bac-interop/interop-backend/internal/bac/status"
	"github.com/bac-interop/interop-backend/internal/bac/upstream"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type HealthResponse struct {
	Status    string                      `json:"status"`
	Timestamp time.Time                   `json:"timestamp"`
	Service   string                      `json:"service"`
	Version   string                      `json:"version"`
	DB        string                      `json:"db,omitempty"`
	Metrics   map[string]upstream.Metrics `json:"upstream_metrics"`
	Upstreams map[string]*status.Status   `json:"upstreams,omitempty"`
}

// DB is satisfied by *pgxpool.Pool
type DB interface {
	Ping(ctx context.Context) error
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// StatusReader exposes the latest upstream call outcomes
type StatusReader interface {
	Snapshot(ctx context.Context) (map[string]*status.Status, error)
}

type HealthHandler struct {
	serviceName string
	version     string
	db          DB
	upstreams   StatusReader
}

// NewHealthHandler creates the health handler. db and upstreams may be nil.
func NewHealthHandler(serviceName, version string, db DB, upstreams StatusReader) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		upstreams:   upstreams,
	}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        dbStatus,
		Metrics:   upstream.GetMetrics(),
	}

	if h.upstreams != nil {
		snapCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()
		if snap, err := h.upstreams.Snapshot(snapCtx); err == nil {
			resp.Upstreams = snap
		}
	}

	c.JSON(http.StatusOK, resp)
}

// Ping answers without touching any dependency
func (h *HealthHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// DBCheck reads the database clock
func (h *HealthHandler) DBCheck(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": "database not configured"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	var now time.Time
	if err := h.db.QueryRow(ctx, "SELECT NOW()").Scan(&now); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "db_time": now.UTC().Format(time.RFC3339Nano)})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

// RegisterAPIRoutes registers the liveness routes under the API prefix
func (h *HealthHandler) RegisterAPIRoutes(r gin.IRouter) {
	r.GET("/ping", h.Ping)
	r.GET("/db-check", h.DBCheck)
}
