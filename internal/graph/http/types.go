package http

import (
	"context"

	"github.com/synkro-platform/synkro-backend/internal/graph/domain"
)

// RecommendationService is the read-side slice of the graph service the
// HTTP layer consumes.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error)
	GetUsersBySimilarSkills(ctx context.Context, userID string, limit int) ([]domain.SimilarUser, error)
	TestConnection(ctx context.Context) domain.HealthStatus
}

// Handler bundles the dependencies for recommendation HTTP endpoints.
type Handler struct {
	svc RecommendationService
}

func New(svc RecommendationService) *Handler {
	return &Handler{svc: svc}
}
