package domain

import "errors"

// ConnectionType is the label of a user-to-user edge in the graph store.
type ConnectionType string

const (
	// ConnectionTeammate is created when two users end up on the same
	// project team. This is the default connection type.
	ConnectionTeammate ConnectionType = "TEAMMATE"

	// ConnectionCollaborated is a weaker relationship kept for future
	// triggers; no current write path produces it.
	ConnectionCollaborated ConnectionType = "COLLABORATED"
)

// Valid reports whether the connection type is one of the allowed edge
// labels. Connection types are spliced into Cypher as relationship labels,
// so anything outside the allowlist is rejected.
func (t ConnectionType) Valid() bool {
	return t == ConnectionTeammate || t == ConnectionCollaborated
}

var ErrInvalidConnectionType = errors.New("invalid connection type")

// Recommendation is one ranked candidate from the composite query.
// Score is always SharedSkills*2 + MutualConnections.
type Recommendation struct {
	UserID            string   `json:"userId"`
	Username          string   `json:"username"`
	SharedSkills      int64    `json:"sharedSkills"`
	MutualConnections int64    `json:"mutualConnections"`
	Skills            []string `json:"skills"`
	Score             int64    `json:"score"`
}

// SimilarUser is one ranked candidate from the skills-only query.
type SimilarUser struct {
	UserID            string   `json:"userId"`
	Username          string   `json:"username"`
	SharedSkillsCount int64    `json:"sharedSkillsCount"`
	Skills            []string `json:"skills"`
}

// GraphStats is a diagnostic node-count summary.
type GraphStats struct {
	Users    int64 `json:"users"`
	Projects int64 `json:"projects"`
	Skills   int64 `json:"skills"`
}

// HealthStatus is the result of a graph store health check. It is a plain
// value, never an error: a failed check is Success=false with the cause in
// Message.
type HealthStatus struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Stats   *GraphStats `json:"stats,omitempty"`
}
