package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/bac-interop/interop-backend/internal/bac/domain"
	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/bac-interop/interop-backend/internal/pagination"
	"github.com/gin-gonic/gin"
)

const notFoundMessage = "No encontrado"

// Catalog is the service behind the catalog endpoints.
type Catalog interface {
	ListUsers(ctx context.Context, page domain.Page) (domain.PageResult[domain.UserRecord], error)
	GetUser(ctx context.Context, id string) (*domain.UserDetail, error)
	ListPublications(ctx context.Context, f domain.PublicationFilter, page domain.Page) (domain.PageResult[domain.PublicationRecord], error)
	GetPublication(ctx context.Context, id string) (*domain.PublicationDetail, error)
}

// Handler serves the users and publications endpoints
type Handler struct {
	catalog Catalog
}

// New creates a catalog handler
func New(catalog Catalog) *Handler {
	return &Handler{catalog: catalog}
}

type listUsersQuery struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

type listPublicationsQuery struct {
	Region string `form:"region"`
	System string `form:"system"`
	Crop   string `form:"crop"`
	Type   string `form:"type"`
	Limit  int    `form:"limit,default=10" binding:"min=1,max=200"`
	Offset int    `form:"offset,default=0" binding:"min=0"`
}

// ListUsers returns a page of users with range headers
func (h *Handler) ListUsers(c *gin.Context) {
	var q listUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	page := domain.Page{Limit: q.Limit, Offset: q.Offset}
	res, err := h.catalog.ListUsers(c.Request.Context(), page)
	if err != nil {
		h.writeError(c, "list_users", err)
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page.Limit, page.Offset, len(res.Items), res.Total)
	c.JSON(http.StatusOK, res.Items)
}

// GetUser returns the detail of one user
func (h *Handler) GetUser(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user ID is required"})
		return
	}

	user, err := h.catalog.GetUser(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get_user", err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// ListPublications returns a filtered page of publications with range headers
func (h *Handler) ListPublications(c *gin.Context) {
	var q listPublicationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	filter := domain.PublicationFilter{Region: q.Region, System: q.System, Crop: q.Crop, Type: q.Type}
	page := domain.Page{Limit: q.Limit, Offset: q.Offset}
	res, err := h.catalog.ListPublications(c.Request.Context(), filter, page)
	if err != nil {
		h.writeError(c, "list_publications", err)
		return
	}

	pagination.SetHeaders(c.Writer.Header(), page.Limit, page.Offset, len(res.Items), res.Total)
	c.JSON(http.StatusOK, res.Items)
}

// GetPublication returns the detail of one publication
func (h *Handler) GetPublication(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "publication ID is required"})
		return
	}

	pub, err := h.catalog.GetPublication(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "get_publication", err)
		return
	}

	c.JSON(http.StatusOK, pub)
}

func (h *Handler) writeError(c *gin.Context, operation string, err error) {
	logger := logging.New(c.Request.Context())

	var upstreamErr *domain.UpstreamError
	var malformedErr *domain.MalformedError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	case errors.Is(err, domain.ErrInvalidPage):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &malformedErr):
		logger.LogWarnf(operation, "malformed upstream response: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": malformedErr.Error()})
	case errors.As(err, &upstreamErr):
		logger.LogError(operation, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":           "upstream unavailable",
			"system":          upstreamErr.System,
			"upstream_status": upstreamErr.StatusCode,
			"upstream_body":   upstreamErr.Body,
		})
	default:
		logger.LogError(operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
