package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrJoinNotFound     = errors.New("join request not found")
	ErrNotOwner         = errors.New("only the project owner can do this")
	ErrJoinNotPending   = errors.New("join request is not pending")
	ErrWrongProject     = errors.New("join request does not belong to this project")
	ErrMembersNotFound  = errors.New("one or more team members not found")
	ErrAlreadyRequested = errors.New("join request already pending")
)

// Project is the authoritative project document. TeamMembers always
// includes the creator; the graph sync derives TEAMMATE edges from it.
type Project struct {
	ID                primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title             string               `bson:"title" json:"title"`
	Description       string               `bson:"description" json:"description"`
	TechStack         []string             `bson:"tech_stack" json:"techStack"`
	RepoLink          string               `bson:"repo_link" json:"repoLink"`
	LiveLink          string               `bson:"live_link" json:"liveLink"`
	CreatedBy         primitive.ObjectID   `bson:"created_by" json:"createdBy"`
	TeamMembers       []primitive.ObjectID `bson:"team_members" json:"teamMembers"`
	LookingForMembers bool                 `bson:"looking_for_members" json:"lookingForMembers"`
	Status            string               `bson:"status" json:"status"`
	CreatedAt         time.Time            `bson:"created_at" json:"createdAt"`
}

// MemberIDs returns the team member ids in hex form, the shape the graph
// sync operations take.
func (p *Project) MemberIDs() []string {
	out := make([]string, 0, len(p.TeamMembers))
	for _, m := range p.TeamMembers {
		out = append(out, m.Hex())
	}
	return out
}

// HasMember reports whether the given user is already on the team.
func (p *Project) HasMember(id primitive.ObjectID) bool {
	for _, m := range p.TeamMembers {
		if m == id {
			return true
		}
	}
	return false
}

type JoinRequestStatus string

const (
	JoinPending  JoinRequestStatus = "pending"
	JoinAccepted JoinRequestStatus = "accepted"
	JoinRejected JoinRequestStatus = "rejected"
)

// JoinRequest records a user asking to join a project.
type JoinRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	User      primitive.ObjectID `bson:"user" json:"user"`
	Project   primitive.ObjectID `bson:"project" json:"project"`
	Status    JoinRequestStatus  `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
