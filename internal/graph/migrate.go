package graph

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/time/rate"
)

// UserSource and ProjectSource read sync-relevant slices of the
// authoritative store. They exist so the migrator does not care whether the
// records come from Mongo or from a test fixture.
type UserSource interface {
	UsersForSync(ctx context.Context) ([]UserRecord, error)
}

type ProjectSource interface {
	ProjectsForSync(ctx context.Context) ([]ProjectRecord, error)
}

// Syncer is the slice of Service the migrator drives.
type Syncer interface {
	SyncUserFromMongo(ctx context.Context, rec UserRecord) error
	SyncProjectConnections(ctx context.Context, teamMembers []string) error
}

// MigrationReport summarizes one replay run.
type MigrationReport struct {
	UsersSynced    int
	UsersFailed    int
	ProjectsSynced int
	ProjectsFailed int
}

func (r MigrationReport) String() string {
	return fmt.Sprintf("users synced=%d failed=%d, projects synced=%d failed=%d",
		r.UsersSynced, r.UsersFailed, r.ProjectsSynced, r.ProjectsFailed)
}

// Migrator rebuilds the derived graph by replaying every authoritative
// user and project record through the idempotent sync operations. Safe to
// re-run in full at any time; it is both the one-time backfill and the
// nightly drift backstop.
type Migrator struct {
	users    UserSource
	projects ProjectSource
	graph    Syncer
	limiter  *rate.Limiter
}

// NewMigrator builds a Migrator throttled to opsPerSecond sync operations,
// so a full replay cannot saturate the graph store. opsPerSecond <= 0
// disables throttling.
func NewMigrator(users UserSource, projects ProjectSource, graph Syncer, opsPerSecond int) *Migrator {
	var limiter *rate.Limiter
	if opsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opsPerSecond), opsPerSecond)
	}
	return &Migrator{users: users, projects: projects, graph: graph, limiter: limiter}
}

// Run replays all users, then all project team connections. One bad record
// is logged and skipped; the replay keeps going. The error return is
// reserved for source-level failures that abort the run entirely.
func (m *Migrator) Run(ctx context.Context) (MigrationReport, error) {
	var report MigrationReport

	users, err := m.users.UsersForSync(ctx)
	if err != nil {
		return report, fmt.Errorf("load users for sync: %w", err)
	}

	for _, u := range users {
		if err := m.wait(ctx); err != nil {
			return report, err
		}
		if err := m.graph.SyncUserFromMongo(ctx, u); err != nil {
			log.Printf("[error] operation=migrate.user id=%s error=%v", u.ID, err)
			report.UsersFailed++
			continue
		}
		report.UsersSynced++
	}

	projects, err := m.projects.ProjectsForSync(ctx)
	if err != nil {
		return report, fmt.Errorf("load projects for sync: %w", err)
	}

	for _, p := range projects {
		if err := m.wait(ctx); err != nil {
			return report, err
		}
		if err := m.graph.SyncProjectConnections(ctx, p.TeamMembers); err != nil {
			log.Printf("[error] operation=migrate.project members=%d error=%v", len(p.TeamMembers), err)
			report.ProjectsFailed++
			continue
		}
		report.ProjectsSynced++
	}

	log.Printf("[info] operation=migrate.run message=%s", report)
	return report, nil
}

func (m *Migrator) wait(ctx context.Context) error {
	if m.limiter == nil {
		return nil
	}
	return m.limiter.Wait(ctx)
}
