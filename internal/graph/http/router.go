package http

import "github.com/gin-gonic/gin"

// Register attaches recommendation routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/recommendations", h.recommendations)
	rg.GET("/graph/health", h.graphHealth)
}
