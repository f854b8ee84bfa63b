package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/synkro-platform/synkro-backend/internal/users/domain"
)

func (h *Handler) me(c *gin.Context) {
	userID := c.GetString("user_id")

	u, err := h.svc.Get(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

type profileReq struct {
	Username string   `json:"username"`
	Batch    string   `json:"batch"`
	Mobile   string   `json:"mobile"`
	GitHub   string   `json:"github"`
	LinkedIn string   `json:"linkedin"`
	Skills   []string `json:"skills"`
}

func (h *Handler) saveProfile(c *gin.Context) {
	var req profileReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Username) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := c.GetString("user_id")
	u, err := h.svc.SaveProfile(c.Request.Context(), userID, domain.User{
		Username: strings.TrimSpace(req.Username),
		Batch:    strings.TrimSpace(req.Batch),
		Mobile:   strings.TrimSpace(req.Mobile),
		GitHub:   strings.TrimSpace(req.GitHub),
		LinkedIn: strings.TrimSpace(req.LinkedIn),
		Skills:   req.Skills,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

func (h *Handler) deleteMe(c *gin.Context) {
	userID := c.GetString("user_id")

	ok, err := h.svc.Delete(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
