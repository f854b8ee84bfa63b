package http

import "github.com/synkro-platform/synkro-backend/internal/users/service"

// Handler bundles the dependencies for user HTTP endpoints.
type Handler struct {
	svc *service.UserService
}

func New(svc *service.UserService) *Handler {
	return &Handler{svc: svc}
}
