package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) recommendations(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
		return
	}

	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	ctx := c.Request.Context()

	// type=skills ranks on shared skills alone; anything else gets the
	// composite skills + mutual-connections ranking.
	if c.DefaultQuery("type", "all") == "skills" {
		similar, err := h.svc.GetUsersBySimilarSkills(ctx, userID, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Recommendations fetched successfully",
			"data":    similar,
		})
		return
	}

	recs, err := h.svc.GetRecommendations(ctx, userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Recommendations fetched successfully",
		"data":    recs,
	})
}

// graphHealth reports graph store reachability plus node counts. Always
// 200; the success flag in the body carries the verdict.
func (h *Handler) graphHealth(c *gin.Context) {
	status := h.svc.TestConnection(c.Request.Context())
	c.JSON(http.StatusOK, status)
}
