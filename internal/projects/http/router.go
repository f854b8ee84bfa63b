package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("/:id", h.get)
	rg.POST("/:id/join", h.requestJoin)
	rg.POST("/:id/join/accept", h.acceptJoin)
}
