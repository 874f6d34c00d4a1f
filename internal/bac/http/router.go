package http

import "github.com/gin-gonic/gin"

// Register registers the catalog routes
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/usuarios", h.ListUsers)
	rg.GET("/usuarios/:id", h.GetUser)
	rg.GET("/publicaciones", h.ListPublications)
	rg.GET("/publicaciones/:id", h.GetPublication)
}
