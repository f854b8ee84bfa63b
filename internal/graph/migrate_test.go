package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserSource struct {
	users []UserRecord
	err   error
}

func (f *fakeUserSource) UsersForSync(ctx context.Context) ([]UserRecord, error) {
	return f.users, f.err
}

type fakeProjectSource struct {
	projects []ProjectRecord
	err      error
}

func (f *fakeProjectSource) ProjectsForSync(ctx context.Context) ([]ProjectRecord, error) {
	return f.projects, f.err
}

type recordingSyncer struct {
	userIDs  []string
	projects [][]string
	failUser string
}

func (r *recordingSyncer) SyncUserFromMongo(ctx context.Context, rec UserRecord) error {
	if rec.ID == r.failUser {
		return fmt.Errorf("bad record")
	}
	r.userIDs = append(r.userIDs, rec.ID)
	return nil
}

func (r *recordingSyncer) SyncProjectConnections(ctx context.Context, teamMembers []string) error {
	r.projects = append(r.projects, teamMembers)
	return nil
}

func TestMigratorReplaysUsersThenProjects(t *testing.T) {
	syncer := &recordingSyncer{}
	m := NewMigrator(
		&fakeUserSource{users: []UserRecord{
			{ID: "u1", Username: "alice", Skills: []string{"Go"}},
			{ID: "u2", Username: "bob"},
		}},
		&fakeProjectSource{projects: []ProjectRecord{
			{TeamMembers: []string{"u1", "u2"}},
		}},
		syncer,
		0,
	)

	report, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"u1", "u2"}, syncer.userIDs)
	assert.Equal(t, [][]string{{"u1", "u2"}}, syncer.projects)
	assert.Equal(t, 2, report.UsersSynced)
	assert.Equal(t, 1, report.ProjectsSynced)
	assert.Zero(t, report.UsersFailed)
	assert.Zero(t, report.ProjectsFailed)
}

func TestMigratorSkipsBadRecords(t *testing.T) {
	syncer := &recordingSyncer{failUser: "u2"}
	m := NewMigrator(
		&fakeUserSource{users: []UserRecord{{ID: "u1"}, {ID: "u2"}, {ID: "u3"}}},
		&fakeProjectSource{},
		syncer,
		0,
	)

	report, err := m.Run(context.Background())
	require.NoError(t, err, "one bad record must not abort the replay")

	assert.Equal(t, []string{"u1", "u3"}, syncer.userIDs)
	assert.Equal(t, 2, report.UsersSynced)
	assert.Equal(t, 1, report.UsersFailed)
}

func TestMigratorAbortsOnSourceFailure(t *testing.T) {
	m := NewMigrator(
		&fakeUserSource{err: fmt.Errorf("cursor dead")},
		&fakeProjectSource{},
		&recordingSyncer{},
		0,
	)

	_, err := m.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load users for sync")
}

func TestMigratorRerunIsSameShape(t *testing.T) {
	syncer := &recordingSyncer{}
	m := NewMigrator(
		&fakeUserSource{users: []UserRecord{{ID: "u1"}}},
		&fakeProjectSource{projects: []ProjectRecord{{TeamMembers: []string{"u1", "u2"}}}},
		syncer,
		0,
	)

	first, err := m.Run(context.Background())
	require.NoError(t, err)
	second, err := m.Run(context.Background())
	require.NoError(t, err)

	// A re-run drives the same idempotent operations and reports the same
	// counts; the graph outcome is unchanged by construction.
	assert.Equal(t, first, second)
}
