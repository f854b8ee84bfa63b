package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/synkro-platform/synkro-backend/internal/graph"
	"github.com/synkro-platform/synkro-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection("projects")}
}

// Create inserts a new project. The creator is folded into TeamMembers and
// duplicates are dropped, so the stored member list is the full team.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Title == "" {
		return nil, fmt.Errorf("title required")
	}
	if p.CreatedBy.IsZero() {
		return nil, fmt.Errorf("creator required")
	}

	p.TeamMembers = dedupeMembers(append([]primitive.ObjectID{p.CreatedBy}, p.TeamMembers...))
	if p.Status == "" {
		p.Status = "active"
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	p.CreatedAt = time.Now().UTC()

	result, err := r.col.InsertOne(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid project id %q: %w", id, err)
	}

	var p domain.Project
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// AddTeamMember appends a member to the authoritative team list ($addToSet,
// so re-adding is a no-op) and returns the updated project.
func (r *ProjectRepository) AddTeamMember(ctx context.Context, projectID string, userID primitive.ObjectID) (*domain.Project, error) {
	oid, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return nil, fmt.Errorf("invalid project id %q: %w", projectID, err)
	}

	var p domain.Project
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$addToSet": bson.M{"team_members": userID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ProjectsForSync returns every project's team composition for graph
// replay, creator included.
func (r *ProjectRepository) ProjectsForSync(ctx context.Context) ([]graph.ProjectRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"created_by": 1, "team_members": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []graph.ProjectRecord
	for cursor.Next(ctx) {
		var p domain.Project
		if err := cursor.Decode(&p); err != nil {
			return nil, err
		}
		members := dedupeMembers(append([]primitive.ObjectID{p.CreatedBy}, p.TeamMembers...))
		hex := make([]string, 0, len(members))
		for _, m := range members {
			hex = append(hex, m.Hex())
		}
		out = append(out, graph.ProjectRecord{TeamMembers: hex})
	}
	return out, cursor.Err()
}

func dedupeMembers(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
