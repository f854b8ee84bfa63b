package http

import "github.com/gin-gonic/gin"

// Register attaches user routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/me", h.me)
	rg.PUT("/me", h.saveProfile)
	rg.DELETE("/me", h.deleteMe)
}
