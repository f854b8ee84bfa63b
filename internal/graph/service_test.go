package graph

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synkro-platform/synkro-backend/internal/graph/domain"
)

type runnerCall struct {
	mode   string
	cypher string
	params map[string]any
}

// fakeRunner scripts query results: results are consumed in call order,
// errs by call index.
type fakeRunner struct {
	calls   []runnerCall
	results [][]*neo4j.Record
	errs    map[int]error
}

func (f *fakeRunner) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return f.run("read", cypher, params)
}

func (f *fakeRunner) Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return f.run("write", cypher, params)
}

func (f *fakeRunner) run(mode, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	idx := len(f.calls)
	f.calls = append(f.calls, runnerCall{mode: mode, cypher: cypher, params: params})

	if err, ok := f.errs[idx]; ok {
		return nil, err
	}
	if idx < len(f.results) {
		return f.results[idx], nil
	}
	return nil, nil
}

func record(keys []string, values []any) *neo4j.Record {
	return &neo4j.Record{Keys: keys, Values: values}
}

func TestUpsertUser(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	err := svc.UpsertUser(context.Background(), "u1", "alice", []string{"Go", "SQL"})
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "write", call.mode)
	assert.Contains(t, call.cypher, "MERGE (u:User {id: $userId})")
	assert.Contains(t, call.cypher, "MERGE (s:Skill {name: skill})")
	assert.Contains(t, call.cypher, "MERGE (u)-[:HAS_SKILL]->(s)")
	assert.Equal(t, "u1", call.params["userId"])
	assert.Equal(t, "alice", call.params["username"])
	assert.Equal(t, []string{"Go", "SQL"}, call.params["skills"])
}

func TestUpsertUserNilSkills(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.UpsertUser(context.Background(), "u1", "alice", nil))

	// UNWIND over null fails; a nil slice must go out as an empty list.
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{}, runner.calls[0].params["skills"])
}

func TestUpsertUserRequiresID(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	err := svc.UpsertUser(context.Background(), "", "alice", nil)
	require.Error(t, err)
	assert.Empty(t, runner.calls)
}

func TestCreateConnectionDefaultsToTeammate(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.CreateConnection(context.Background(), "a", "b", ""))

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	// MATCH, not MERGE, on the endpoints: a missing user makes the whole
	// statement a no-op instead of conjuring a bare node.
	assert.Contains(t, call.cypher, "MATCH (a:User {id: $userIdA})")
	assert.Contains(t, call.cypher, "MATCH (b:User {id: $userIdB})")
	assert.Contains(t, call.cypher, "MERGE (a)-[r:TEAMMATE]->(b)")
	assert.Contains(t, call.cypher, "ON CREATE SET r.createdAt")
	assert.Equal(t, "a", call.params["userIdA"])
	assert.Equal(t, "b", call.params["userIdB"])
}

func TestCreateConnectionCollaborated(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.CreateConnection(context.Background(), "a", "b", domain.ConnectionCollaborated))
	assert.Contains(t, runner.calls[0].cypher, "MERGE (a)-[r:COLLABORATED]->(b)")
}

func TestCreateConnectionRejectsUnknownType(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	err := svc.CreateConnection(context.Background(), "a", "b", "FRIENDS_WITH; DETACH DELETE n")
	require.ErrorIs(t, err, domain.ErrInvalidConnectionType)
	assert.Empty(t, runner.calls, "invalid type must never reach the store")
}

func TestDeleteUser(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.DeleteUser(context.Background(), "u1"))

	require.Len(t, runner.calls, 1)
	assert.Contains(t, runner.calls[0].cypher, "DETACH DELETE u")
	assert.Equal(t, "u1", runner.calls[0].params["userId"])
}

func TestSyncUserFromMongoDefaultsSkills(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.SyncUserFromMongo(context.Background(), UserRecord{ID: "u1", Username: "alice"}))

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{}, runner.calls[0].params["skills"])
}

func TestSyncProjectConnectionsAllPairs(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	members := []string{"a", "b", "c", "d"}
	require.NoError(t, svc.SyncProjectConnections(context.Background(), members))

	// N=4 members means exactly N*(N-1)/2 = 6 edges, one per unordered pair.
	require.Len(t, runner.calls, 6)

	pairs := make(map[string]bool)
	for _, call := range runner.calls {
		pairs[fmt.Sprintf("%s-%s", call.params["userIdA"], call.params["userIdB"])] = true
	}
	for _, want := range []string{"a-b", "a-c", "a-d", "b-c", "b-d", "c-d"} {
		assert.True(t, pairs[want], "missing pair %s", want)
	}
}

func TestSyncProjectConnectionsContinuesPastFailures(t *testing.T) {
	runner := &fakeRunner{errs: map[int]error{1: fmt.Errorf("store hiccup")}}
	svc := NewService(runner)

	err := svc.SyncProjectConnections(context.Background(), []string{"a", "b", "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 pair(s) failed")

	// The failed pair is skipped, not fatal: all 3 pairs were attempted.
	assert.Len(t, runner.calls, 3)
}

func TestSyncProjectConnectionsSmallTeams(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	require.NoError(t, svc.SyncProjectConnections(context.Background(), []string{"solo"}))
	require.NoError(t, svc.SyncProjectConnections(context.Background(), nil))
	assert.Empty(t, runner.calls)
}

func recommendationRecord(userID, username string, shared, mutual int64, skills []any) *neo4j.Record {
	return record(
		[]string{"userId", "username", "sharedSkills", "mutualConnections", "skills", "score"},
		[]any{userID, username, shared, mutual, skills, shared*2 + mutual},
	)
}

func TestGetRecommendations(t *testing.T) {
	runner := &fakeRunner{results: [][]*neo4j.Record{{
		recommendationRecord("u2", "bob", 2, 1, []any{"Go", "Rust"}),
		recommendationRecord("u3", "carol", 1, 2, []any{"Rust"}),
	}}}
	svc := NewService(runner)

	recs, err := svc.GetRecommendations(context.Background(), "u1", 5)
	require.NoError(t, err)

	require.Len(t, runner.calls, 1)
	call := runner.calls[0]
	assert.Equal(t, "read", call.mode)
	assert.Equal(t, "u1", call.params["userId"])
	assert.Equal(t, 5, call.params["limit"])
	assert.Contains(t, call.cypher, "WHERE candidate <> u")
	assert.Contains(t, call.cypher, "sharedSkills * 2 + COUNT(DISTINCT mutual) AS score")
	assert.Contains(t, call.cypher, "ORDER BY score DESC, candidate.id ASC")
	assert.Contains(t, call.cypher, "LIMIT $limit")

	require.Len(t, recs, 2)
	assert.Equal(t, domain.Recommendation{
		UserID: "u2", Username: "bob",
		SharedSkills: 2, MutualConnections: 1,
		Skills: []string{"Go", "Rust"}, Score: 5,
	}, recs[0])
	assert.Equal(t, int64(4), recs[1].Score)

	// Score monotonicity over the returned order.
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, recs[i-1].Score, recs[i].Score)
	}
}

func TestGetRecommendationsDefaultLimit(t *testing.T) {
	runner := &fakeRunner{}
	svc := NewService(runner)

	_, err := svc.GetRecommendations(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, 10, runner.calls[0].params["limit"])
}

func TestGetRecommendationsPropagatesQueryError(t *testing.T) {
	runner := &fakeRunner{errs: map[int]error{0: fmt.Errorf("connection refused")}}
	svc := NewService(runner)

	_, err := svc.GetRecommendations(context.Background(), "u1", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetUsersBySimilarSkills(t *testing.T) {
	runner := &fakeRunner{results: [][]*neo4j.Record{{
		record(
			[]string{"userId", "username", "sharedSkillsCount", "skills"},
			[]any{"u2", "bob", int64(1), []any{"Go", "Rust"}},
		),
	}}}
	svc := NewService(runner)

	similar, err := svc.GetUsersBySimilarSkills(context.Background(), "u1", 10)
	require.NoError(t, err)

	call := runner.calls[0]
	assert.Equal(t, "read", call.mode)
	assert.Contains(t, call.cypher, "WHERE similar <> u")
	assert.Contains(t, call.cypher, "ORDER BY sharedSkillsCount DESC, similar.id ASC")
	assert.NotContains(t, call.cypher, "COLLABORATED|TEAMMATE", "skills-only ranking must not touch the connection graph")

	require.Len(t, similar, 1)
	assert.Equal(t, "u2", similar[0].UserID)
	assert.Equal(t, int64(1), similar[0].SharedSkillsCount)
	assert.Equal(t, []string{"Go", "Rust"}, similar[0].Skills)
}

func TestTestConnection(t *testing.T) {
	runner := &fakeRunner{results: [][]*neo4j.Record{
		{record([]string{"test"}, []any{int64(1)})},
		{record([]string{"count"}, []any{int64(12)})},
		{record([]string{"count"}, []any{int64(0)})},
		{record([]string{"count"}, []any{int64(7)})},
	}}
	svc := NewService(runner)

	status := svc.TestConnection(context.Background())
	require.True(t, status.Success)
	require.NotNil(t, status.Stats)
	assert.Equal(t, int64(12), status.Stats.Users)
	assert.Equal(t, int64(0), status.Stats.Projects)
	assert.Equal(t, int64(7), status.Stats.Skills)
}

func TestTestConnectionNeverPanicsOnFailure(t *testing.T) {
	runner := &fakeRunner{errs: map[int]error{0: fmt.Errorf("dial tcp: connection refused")}}
	svc := NewService(runner)

	status := svc.TestConnection(context.Background())
	assert.False(t, status.Success)
	assert.True(t, strings.Contains(status.Message, "connection refused"))
	assert.Nil(t, status.Stats)
}
