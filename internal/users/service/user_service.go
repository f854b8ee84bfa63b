package service

import (
	"context"
	"log"

	"github.com/synkro-platform/synkro-backend/internal/graph"
	"github.com/synkro-platform/synkro-backend/internal/users/domain"
)

// ProfileRepository is the slice of the user repository this service needs.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	SaveProfile(ctx context.Context, id string, update domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// GraphSyncer mirrors authoritative user changes into the derived graph.
type GraphSyncer interface {
	SyncUserFromMongo(ctx context.Context, rec graph.UserRecord) error
	DeleteUser(ctx context.Context, userID string) error
}

// UserService handles user profile business logic and keeps the graph in
// step with profile writes.
type UserService struct {
	repo  ProfileRepository
	graph GraphSyncer
}

func NewUserService(repo ProfileRepository, graph GraphSyncer) *UserService {
	return &UserService{repo: repo, graph: graph}
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// SaveProfile persists the profile then mirrors {id, username, skills}
// into the graph. The graph write is best effort: the profile save already
// succeeded, and the nightly replay repairs any missed sync.
func (s *UserService) SaveProfile(ctx context.Context, id string, update domain.User) (*domain.User, error) {
	u, err := s.repo.SaveProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}

	if err := s.graph.SyncUserFromMongo(ctx, graph.UserRecord{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Skills:   u.Skills,
	}); err != nil {
		log.Printf("[error] operation=users.saveProfile user=%s error=graph sync failed: %v", id, err)
	}

	return u, nil
}

// Delete removes the authoritative record, then the user's graph subtree.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	if err := s.graph.DeleteUser(ctx, id); err != nil {
		log.Printf("[error] operation=users.delete user=%s error=graph delete failed: %v", id, err)
	}
	return true, nil
}
