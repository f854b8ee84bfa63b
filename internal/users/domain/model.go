package domain

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("user not found")

// User is the authoritative user document. The document store owns these
// records; the graph only ever sees the {_id, username, skills} projection.
type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirebaseUID     string             `bson:"firebase_uid" json:"-"`
	Username        string             `bson:"username" json:"username"`
	Email           string             `bson:"email" json:"email"`
	PRN             string             `bson:"prn" json:"prn"`
	Batch           string             `bson:"batch" json:"batch"`
	Mobile          string             `bson:"mobile" json:"mobile"`
	GitHub          string             `bson:"github" json:"github"`
	LinkedIn        string             `bson:"linkedin" json:"linkedin"`
	Skills          []string           `bson:"skills" json:"skills"`
	ProfileComplete bool               `bson:"profile_complete" json:"profileComplete"`
	Role            string             `bson:"role" json:"role"`
	Points          int                `bson:"points" json:"points"`
}
