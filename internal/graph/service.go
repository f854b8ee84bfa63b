package graph

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/synkro-platform/synkro-backend/internal/graph/domain"
)

const defaultLimit = 10

// UserRecord is the slice of an authoritative user document the graph
// cares about. ID is the document id in hex form and doubles as the join
// key between the two stores.
type UserRecord struct {
	ID       string
	Username string
	Skills   []string
}

// ProjectRecord carries a project's team composition for connection sync.
// The caller is expected to have folded the creator into TeamMembers.
type ProjectRecord struct {
	TeamMembers []string
}

// Service owns every graph mutation and ranking read. The graph is a
// derived index over the document store: all writes are idempotent merges,
// and the whole thing can be rebuilt from scratch with Migrator.
type Service struct {
	runner Runner
	cache  *Cache
}

func NewService(runner Runner) *Service {
	return &Service{runner: runner}
}

// NewServiceWithCache wires a Redis cache in front of the ranking reads.
func NewServiceWithCache(runner Runner, cache *Cache) *Service {
	return &Service{runner: runner, cache: cache}
}

// UpsertUser merges the User node for userID, refreshes its username and
// updatedAt, and merges a Skill node plus HAS_SKILL edge per skill name.
// Calling it twice with the same arguments is a no-op the second time.
//
// Skills are additive: a skill dropped from the authoritative record keeps
// its edge here until the next full rebuild. The nightly reconcile replay
// bounds that drift.
func (s *Service) UpsertUser(ctx context.Context, userID, username string, skills []string) error {
	if userID == "" {
		return fmt.Errorf("upsert user: user id required")
	}
	if skills == nil {
		skills = []string{}
	}

	const cypher = `
MERGE (u:User {id: $userId})
SET u.username = $username, u.updatedAt = timestamp()
WITH u
UNWIND $skills AS skill
MERGE (s:Skill {name: skill})
MERGE (u)-[:HAS_SKILL]->(s)
`
	_, err := s.runner.Write(ctx, cypher, map[string]any{
		"userId":   userID,
		"username": username,
		"skills":   skills,
	})
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", userID, err)
	}

	s.dropCached(ctx, userID)
	return nil
}

// CreateConnection merges a directed edge of the given type from userIDA to
// userIDB, stamping createdAt only when the edge is first created. Both
// User nodes must already exist; if either is missing the MATCH finds
// nothing and the call completes as a silent no-op. Callers own the
// upsert-before-connect ordering.
func (s *Service) CreateConnection(ctx context.Context, userIDA, userIDB string, connType domain.ConnectionType) error {
	if connType == "" {
		connType = domain.ConnectionTeammate
	}
	if !connType.Valid() {
		return fmt.Errorf("create connection %s->%s: %w: %q", userIDA, userIDB, domain.ErrInvalidConnectionType, connType)
	}

	// Relationship types cannot be parameterized in Cypher; connType is
	// restricted to the allowlist above before being spliced in.
	cypher := fmt.Sprintf(`
MATCH (a:User {id: $userIdA})
MATCH (b:User {id: $userIdB})
MERGE (a)-[r:%s]->(b)
ON CREATE SET r.createdAt = timestamp()
`, connType)

	_, err := s.runner.Write(ctx, cypher, map[string]any{
		"userIdA": userIDA,
		"userIdB": userIDB,
	})
	if err != nil {
		return fmt.Errorf("create connection %s->%s: %w", userIDA, userIDB, err)
	}

	s.dropCached(ctx, userIDA, userIDB)
	return nil
}

// DeleteUser detaches and deletes the User node and every incident edge.
// Skill nodes survive even when orphaned; the skill vocabulary is shared,
// not owned.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	const cypher = `
MATCH (u:User {id: $userId})
DETACH DELETE u
`
	_, err := s.runner.Write(ctx, cypher, map[string]any{"userId": userID})
	if err != nil {
		return fmt.Errorf("delete user %s: %w", userID, err)
	}

	s.dropCached(ctx, userID)
	return nil
}

// SyncUserFromMongo adapts an authoritative user record into an upsert.
func (s *Service) SyncUserFromMongo(ctx context.Context, rec UserRecord) error {
	skills := rec.Skills
	if skills == nil {
		skills = []string{}
	}
	return s.UpsertUser(ctx, rec.ID, rec.Username, skills)
}

// SyncProjectConnections creates a TEAMMATE edge for every unordered pair
// of team members, sequentially, one session per pair. O(N²) round trips;
// fine for the team sizes this platform sees. A failed pair is logged and
// skipped so one bad edge does not block the rest.
func (s *Service) SyncProjectConnections(ctx context.Context, teamMembers []string) error {
	var failed int
	for i := 0; i < len(teamMembers); i++ {
		for j := i + 1; j < len(teamMembers); j++ {
			if err := s.CreateConnection(ctx, teamMembers[i], teamMembers[j], domain.ConnectionTeammate); err != nil {
				log.Printf("[error] operation=graph.syncProjectConnections pair=%s-%s error=%v", teamMembers[i], teamMembers[j], err)
				failed++
			}
		}
	}
	if failed > 0 {
		return fmt.Errorf("sync project connections: %d pair(s) failed", failed)
	}
	return nil
}

// GetRecommendations ranks other users by sharedSkills*2 + mutualConnections.
// Shared skills and mutual connections are counted by separate traversal
// stages of one statement; the requesting user is always excluded. Ties
// break on candidate id so the ordering is stable across runs.
func (s *Service) GetRecommendations(ctx context.Context, userID string, limit int) ([]domain.Recommendation, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.cache != nil {
		var cached []domain.Recommendation
		if ok := s.cache.get(ctx, recommendationKey(userID, "all", limit), &cached); ok {
			return cached, nil
		}
	}

	const cypher = `
MATCH (u:User {id: $userId})-[:HAS_SKILL]->(s:Skill)<-[:HAS_SKILL]-(candidate:User)
WHERE candidate <> u
WITH u, candidate, COUNT(DISTINCT s) AS sharedSkills
OPTIONAL MATCH (u)-[:COLLABORATED|TEAMMATE]-(mutual:User)-[:COLLABORATED|TEAMMATE]-(candidate)
WHERE mutual <> u AND mutual <> candidate
WITH candidate, sharedSkills,
     COUNT(DISTINCT mutual) AS mutualConnections,
     sharedSkills * 2 + COUNT(DISTINCT mutual) AS score
ORDER BY score DESC, candidate.id ASC
LIMIT $limit
MATCH (candidate)-[:HAS_SKILL]->(skill:Skill)
RETURN candidate.id AS userId,
       candidate.username AS username,
       sharedSkills,
       mutualConnections,
       COLLECT(DISTINCT skill.name) AS skills,
       score
`
	records, err := s.runner.Read(ctx, cypher, map[string]any{
		"userId": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("get recommendations for %s: %w", userID, err)
	}

	out := make([]domain.Recommendation, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.Recommendation{
			UserID:            recordString(rec, "userId"),
			Username:          recordString(rec, "username"),
			SharedSkills:      recordInt64(rec, "sharedSkills"),
			MutualConnections: recordInt64(rec, "mutualConnections"),
			Skills:            recordStrings(rec, "skills"),
			Score:             recordInt64(rec, "score"),
		})
	}

	if s.cache != nil {
		s.cache.set(ctx, recommendationKey(userID, "all", limit), userID, out)
	}
	return out, nil
}

// GetUsersBySimilarSkills is the skills-only variant of GetRecommendations:
// candidates are ranked by distinct shared skill count alone.
func (s *Service) GetUsersBySimilarSkills(ctx context.Context, userID string, limit int) ([]domain.SimilarUser, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	if s.cache != nil {
		var cached []domain.SimilarUser
		if ok := s.cache.get(ctx, recommendationKey(userID, "skills", limit), &cached); ok {
			return cached, nil
		}
	}

	const cypher = `
MATCH (u:User {id: $userId})-[:HAS_SKILL]->(s:Skill)<-[:HAS_SKILL]-(similar:User)
WHERE similar <> u
WITH similar, COUNT(DISTINCT s) AS sharedSkillsCount
ORDER BY sharedSkillsCount DESC, similar.id ASC
LIMIT $limit
MATCH (similar)-[:HAS_SKILL]->(skill:Skill)
RETURN similar.id AS userId,
       similar.username AS username,
       sharedSkillsCount,
       COLLECT(DISTINCT skill.name) AS skills
`
	records, err := s.runner.Read(ctx, cypher, map[string]any{
		"userId": userID,
		"limit":  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("get similar users for %s: %w", userID, err)
	}

	out := make([]domain.SimilarUser, 0, len(records))
	for _, rec := range records {
		out = append(out, domain.SimilarUser{
			UserID:            recordString(rec, "userId"),
			Username:          recordString(rec, "username"),
			SharedSkillsCount: recordInt64(rec, "sharedSkillsCount"),
			Skills:            recordStrings(rec, "skills"),
		})
	}

	if s.cache != nil {
		s.cache.set(ctx, recommendationKey(userID, "skills", limit), userID, out)
	}
	return out, nil
}

// TestConnection runs a trivial round trip and, if that works, counts
// User/Project/Skill nodes for a diagnostic summary. It never returns an
// error; failures are reported in the HealthStatus value.
func (s *Service) TestConnection(ctx context.Context) domain.HealthStatus {
	records, err := s.runner.Read(ctx, "RETURN 1 AS test", nil)
	if err != nil {
		return domain.HealthStatus{Success: false, Message: err.Error()}
	}
	if len(records) == 0 || recordInt64(records[0], "test") != 1 {
		return domain.HealthStatus{Success: false, Message: "test query failed"}
	}

	stats := &domain.GraphStats{}
	counts := []struct {
		label string
		dest  *int64
	}{
		{"User", &stats.Users},
		{"Project", &stats.Projects},
		{"Skill", &stats.Skills},
	}
	for _, c := range counts {
		recs, err := s.runner.Read(ctx, fmt.Sprintf("MATCH (n:%s) RETURN count(n) AS count", c.label), nil)
		if err != nil {
			return domain.HealthStatus{Success: false, Message: err.Error()}
		}
		if len(recs) > 0 {
			*c.dest = recordInt64(recs[0], "count")
		}
	}

	return domain.HealthStatus{
		Success: true,
		Message: "neo4j connection successful",
		Stats:   stats,
	}
}

// dropCached is best-effort cache invalidation after a write.
func (s *Service) dropCached(ctx context.Context, userIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range userIDs {
		s.cache.invalidateUser(ctx, id)
	}
}

func recordString(rec *neo4j.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordInt64(rec *neo4j.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok {
		return 0
	}
	n, _ := v.(int64)
	return n
}

func recordStrings(rec *neo4j.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
