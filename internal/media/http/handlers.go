package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/bac-interop/interop-backend/internal/logging"
	"github.com/bac-interop/interop-backend/internal/media/domain"
	"github.com/bac-interop/interop-backend/internal/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VideoStore is the read side of the videos table
type VideoStore interface {
	List(ctx context.Context, limit, offset int) ([]domain.Video, int, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Video, error)
}

type Handler struct {
	videos VideoStore
}

func New(videos VideoStore) *Handler {
	return &Handler{videos: videos}
}

// Register registers the video routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/videos", h.ListVideos)
	rg.GET("/videos/:id", h.GetVideo)
}

type listVideosQuery struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListVideos returns a page of videos with range headers
func (h *Handler) ListVideos(c *gin.Context) {
	var q listVideosQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query: " + err.Error()})
		return
	}

	videos, total, err := h.videos.List(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		logging.New(c.Request.Context()).LogError("list_videos", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list videos"})
		return
	}

	pagination.SetHeaders(c.Writer.Header(), q.Limit, q.Offset, len(videos), total)
	c.JSON(http.StatusOK, videos)
}

// GetVideo retrieves a video by ID
func (h *Handler) GetVideo(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid video ID"})
		return
	}

	video, err := h.videos.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		logging.New(c.Request.Context()).LogError("get_video", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get video"})
		return
	}

	c.JSON(http.StatusOK, video)
}
