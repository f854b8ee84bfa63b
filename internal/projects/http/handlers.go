package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/synkro-platform/synkro-backend/internal/projects/domain"
)

type createReq struct {
	Title             string   `json:"title"`
	Description       string   `json:"description"`
	TechStack         []string `json:"techStack"`
	RepoLink          string   `json:"repoLink"`
	LiveLink          string   `json:"liveLink"`
	TeamMembers       []string `json:"teamMembers"`
	LookingForMembers bool     `json:"lookingForMembers"`
	Status            string   `json:"status"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Status != "" && req.Status != "active" && req.Status != "completed" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid status"})
		return
	}

	creator, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "error": "unauthorized"})
		return
	}

	members := make([]primitive.ObjectID, 0, len(req.TeamMembers))
	for _, id := range req.TeamMembers {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid team member id"})
			return
		}
		members = append(members, oid)
	}

	p, err := h.svc.Create(c.Request.Context(), &domain.Project{
		Title:             strings.TrimSpace(req.Title),
		Description:       strings.TrimSpace(req.Description),
		TechStack:         req.TechStack,
		RepoLink:          strings.TrimSpace(req.RepoLink),
		LiveLink:          strings.TrimSpace(req.LiveLink),
		CreatedBy:         creator,
		TeamMembers:       members,
		LookingForMembers: req.LookingForMembers,
		Status:            req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMembersNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) requestJoin(c *gin.Context) {
	jr, err := h.svc.RequestJoin(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, domain.ErrAlreadyRequested):
			c.JSON(http.StatusConflict, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "joinRequest": jr})
}

type acceptJoinReq struct {
	JoinRequestID string `json:"joinRequestId"`
}

func (h *Handler) acceptJoin(c *gin.Context) {
	var req acceptJoinReq
	if err := c.ShouldBindJSON(&req); err != nil || req.JoinRequestID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "joinRequestId is required"})
		return
	}

	p, err := h.svc.AcceptJoin(c.Request.Context(), c.GetString("user_id"), c.Param("id"), req.JoinRequestID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrJoinNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, domain.ErrJoinNotPending), errors.Is(err, domain.ErrWrongProject):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
