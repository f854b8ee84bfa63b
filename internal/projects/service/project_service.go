package service

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	graphdomain "github.com/synkro-platform/synkro-backend/internal/graph/domain"
	"github.com/synkro-platform/synkro-backend/internal/projects/domain"
)

// ProjectStore is the slice of the project repository this service needs.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	AddTeamMember(ctx context.Context, projectID string, userID primitive.ObjectID) (*domain.Project, error)
}

// JoinRequestStore persists join requests.
type JoinRequestStore interface {
	Create(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.JoinRequest, error)
	FindByID(ctx context.Context, id string) (*domain.JoinRequest, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status domain.JoinRequestStatus) error
}

// MemberChecker verifies that referenced users exist in the authoritative
// store before a team is formed around them.
type MemberChecker interface {
	ExistAll(ctx context.Context, ids []string) (bool, error)
}

// ConnectionSyncer mirrors team composition into the derived graph.
type ConnectionSyncer interface {
	SyncProjectConnections(ctx context.Context, teamMembers []string) error
	CreateConnection(ctx context.Context, userIDA, userIDB string, connType graphdomain.ConnectionType) error
}

// ProjectService handles project business logic and keeps the graph's
// TEAMMATE edges in step with authoritative team changes.
type ProjectService struct {
	repo  ProjectStore
	joins JoinRequestStore
	users MemberChecker
	graph ConnectionSyncer
}

func NewProjectService(repo ProjectStore, joins JoinRequestStore, users MemberChecker, graph ConnectionSyncer) *ProjectService {
	return &ProjectService{repo: repo, joins: joins, users: users, graph: graph}
}

// Create persists the project and then mirrors the full pairwise TEAMMATE
// structure into the graph. The graph write comes strictly after the
// authoritative write and is best effort; a failure is logged, not
// surfaced, because the project itself was created.
func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	ok, err := s.users.ExistAll(ctx, memberHex(p.TeamMembers))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMembersNotFound
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	if err := s.graph.SyncProjectConnections(ctx, created.MemberIDs()); err != nil {
		log.Printf("[error] operation=projects.create project=%s error=graph sync failed: %v", created.ID.Hex(), err)
	}

	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repo.FindByID(ctx, id)
}

// RequestJoin records a pending join request against a project.
func (s *ProjectService) RequestJoin(ctx context.Context, userID, projectID string) (*domain.JoinRequest, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrJoinNotFound
	}

	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.joins.Create(ctx, uid, p.ID)
}

// AcceptJoin lets the project owner accept a pending join request. After
// the authoritative team list is updated, the new member is connected to
// every existing member directly; waiting for the next full replay would
// leave the recommendation graph behind until the nightly reconcile.
func (s *ProjectService) AcceptJoin(ctx context.Context, ownerID, projectID, joinRequestID string) (*domain.Project, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.CreatedBy.Hex() != ownerID {
		return nil, domain.ErrNotOwner
	}

	jr, err := s.joins.FindByID(ctx, joinRequestID)
	if err != nil {
		return nil, err
	}
	if jr.Project != p.ID {
		return nil, domain.ErrWrongProject
	}
	if jr.Status != domain.JoinPending {
		return nil, domain.ErrJoinNotPending
	}

	if err := s.joins.SetStatus(ctx, jr.ID, domain.JoinAccepted); err != nil {
		return nil, err
	}

	existing := p.MemberIDs()
	updated, err := s.repo.AddTeamMember(ctx, projectID, jr.User)
	if err != nil {
		return nil, err
	}

	newMember := jr.User.Hex()
	for _, member := range existing {
		if member == newMember {
			continue
		}
		if err := s.graph.CreateConnection(ctx, newMember, member, graphdomain.ConnectionTeammate); err != nil {
			log.Printf("[error] operation=projects.acceptJoin pair=%s-%s error=%v", newMember, member, err)
		}
	}

	return updated, nil
}

func memberHex(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
