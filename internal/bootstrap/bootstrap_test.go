package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bac-interop/interop-backend/config"
	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalog struct{}

func (stubCatalog) ListUsers(context.Context, domain.Page) (domain.PageResult[domain.UserRecord], error) {
	return domain.PageResult[domain.UserRecord]{Items: []domain.UserRecord{{ID: "u1"}}, Total: 1}, nil
}

func (stubCatalog) GetUser(context.Context, string) (*domain.UserDetail, error) {
	return nil, domain.ErrNotFound
}

func (stubCatalog) ListPublications(context.Context, domain.PublicationFilter, domain.Page) (domain.PageResult[domain.PublicationRecord], error) {
	return domain.PageResult[domain.PublicationRecord]{Items: []domain.PublicationRecord{}}, nil
}

func (stubCatalog) GetPublication(context.Context, string) (*domain.PublicationDetail, error) {
	return nil, domain.ErrNotFound
}

func TestBuildRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := BuildRouter(RouterDeps{ServiceName: "bac-interop", Version: "test", Catalog: stubCatalog{}})

	tests := []struct {
		path string
		code int
	}{
		{"/health", http.StatusOK},
		{"/api/v1/ping", http.StatusOK},
		{"/api/v1/bac/usuarios", http.StatusOK},
		{"/api/v1/bac/usuarios/u1", http.StatusNotFound},
		{"/api/v1/bac/publicaciones", http.StatusOK},
		{"/api/v1/videos", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestBuildRouter_ExposesPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := BuildRouter(RouterDeps{Catalog: stubCatalog{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bac/usuarios", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	exposed := rr.Header().Get("Access-Control-Expose-Headers")
	assert.Contains(t, exposed, pagination.HeaderContentRange)
	assert.Contains(t, exposed, pagination.HeaderTotalPages)
	assert.Equal(t, "items 0-0/1", rr.Header().Get(pagination.HeaderContentRange))
}

func TestBuildCatalog_BadTypeTable(t *testing.T) {
	cfg := &config.Config{
		Catalog: config.CatalogConfig{TypeTablePath: filepath.Join(t.TempDir(), "missing.yaml")},
	}

	_, err := BuildCatalog(cfg, nil)
	assert.ErrorContains(t, err, "load type table")
}
