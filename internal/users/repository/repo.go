package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/synkro-platform/synkro-backend/internal/graph"
	"github.com/synkro-platform/synkro-backend/internal/users/domain"
)

// UserRepository provides persistence operations for users.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	var u domain.User
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByFirebaseUID resolves the platform user behind an auth token.
func (r *UserRepository) FindByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	var u domain.User
	err := r.col.FindOne(ctx, bson.M{"firebase_uid": uid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveProfile updates the profile fields a user can edit and returns the
// updated document.
func (r *UserRepository) SaveProfile(ctx context.Context, id string, update domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	skills := update.Skills
	if skills == nil {
		skills = []string{}
	}

	set := bson.M{
		"username":         update.Username,
		"batch":            update.Batch,
		"mobile":           update.Mobile,
		"github":           update.GitHub,
		"linkedin":         update.LinkedIn,
		"skills":           skills,
		"profile_complete": true,
	}

	var u domain.User
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistAll reports whether every given id resolves to a user document.
func (r *UserRepository) ExistAll(ctx context.Context, ids []string) (bool, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return false, nil
		}
		oids = append(oids, oid)
	}

	count, err := r.col.CountDocuments(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return false, err
	}
	return count == int64(len(oids)), nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, fmt.Errorf("invalid user id %q: %w", id, err)
	}

	result, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return result.DeletedCount > 0, nil
}

// UsersForSync streams the {_id, username, skills} projection of every
// user, in the shape the graph sync takes.
func (r *UserRepository) UsersForSync(ctx context.Context) ([]graph.UserRecord, error) {
	cursor, err := r.col.Find(ctx, bson.M{},
		options.Find().SetProjection(bson.M{"_id": 1, "username": 1, "skills": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []graph.UserRecord
	for cursor.Next(ctx) {
		var u domain.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		out = append(out, graph.UserRecord{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Skills:   u.Skills,
		})
	}
	return out, cursor.Err()
}
