package bootstrap

import (
	"time"

	httpapi "github.com/bac-interop/interop-backend/internal/api/http"
	"github.com/bac-interop/interop-backend/internal/api/http/middleware"
	bachttp "github.com/bac-interop/interop-backend/internal/bac/http"
	mediahttp "github.com/bac-interop/interop-backend/internal/media/http"
	"github.com/bac-interop/interop-backend/internal/pagination"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	DB          httpapi.DB
	Upstreams   httpapi.StatusReader
	Catalog     bachttp.Catalog
	Videos      mediahttp.VideoStore
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", middleware.HeaderRequestID},
		ExposeHeaders: []string{
			pagination.HeaderContentRange,
			pagination.HeaderTotalCount,
			pagination.HeaderAcceptRanges,
			pagination.HeaderPage,
			pagination.HeaderTotalPages,
			pagination.HeaderHasNext,
			middleware.HeaderRequestID,
		},
		MaxAge: 12 * time.Hour,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Upstreams)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	healthHandler.RegisterAPIRoutes(api)

	bachttp.New(dep.Catalog).Register(api.Group("/bac"))

	if dep.Videos != nil {
		mediahttp.New(dep.Videos).Register(api)
	}

	return r
}
