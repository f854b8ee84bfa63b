package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/synkro-platform/synkro-backend/internal/projects/domain"
)

// JoinRequestRepository provides persistence operations for join requests.
type JoinRequestRepository struct {
	col *mongo.Collection
}

func NewJoinRequestRepository(db *mongo.Database) *JoinRequestRepository {
	return &JoinRequestRepository{col: db.Collection("join_requests")}
}

// Create records a pending join request, rejecting duplicates for the same
// user/project pair that are still pending.
func (r *JoinRequestRepository) Create(ctx context.Context, userID, projectID primitive.ObjectID) (*domain.JoinRequest, error) {
	count, err := r.col.CountDocuments(ctx, bson.M{
		"user":    userID,
		"project": projectID,
		"status":  domain.JoinPending,
	})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyRequested
	}

	jr := &domain.JoinRequest{
		User:      userID,
		Project:   projectID,
		Status:    domain.JoinPending,
		CreatedAt: time.Now().UTC(),
	}
	result, err := r.col.InsertOne(ctx, jr)
	if err != nil {
		return nil, err
	}
	jr.ID = result.InsertedID.(primitive.ObjectID)
	return jr, nil
}

func (r *JoinRequestRepository) FindByID(ctx context.Context, id string) (*domain.JoinRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid join request id %q: %w", id, err)
	}

	var jr domain.JoinRequest
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&jr)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrJoinNotFound
	}
	if err != nil {
		return nil, err
	}
	return &jr, nil
}

// SetStatus transitions a join request out of pending.
func (r *JoinRequestRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status domain.JoinRequestStatus) error {
	result, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return domain.ErrJoinNotFound
	}
	return nil
}
