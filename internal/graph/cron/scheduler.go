package cronjob

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/synkro-platform/synkro-backend/internal/graph"
)

// Scheduler re-runs the full graph replay on a cron schedule. Skill sync is
// additive, so the nightly rebuild is what brings removed skills and any
// missed incremental writes back in line with the authoritative store.
type Scheduler struct {
	migrator *graph.Migrator
	spec     string
	c        *cron.Cron
}

// NewScheduler builds a scheduler; spec is a standard 5-field cron
// expression, defaulting to 3 AM daily when empty.
func NewScheduler(migrator *graph.Migrator, spec string) *Scheduler {
	if spec == "" {
		spec = "0 3 * * *"
	}
	return &Scheduler{migrator: migrator, spec: spec}
}

// Start registers the reconcile job and starts the cron loop.
func (s *Scheduler) Start() {
	c := cron.New()

	_, err := c.AddFunc(s.spec, s.runReconcile)
	if err != nil {
		log.Printf("[error] operation=cron.start error=%v", err)
		return
	}

	s.c = c
	c.Start()
	log.Printf("[info] operation=cron.start message=graph reconcile scheduled spec=%q", s.spec)
}

// Stop halts the cron loop; a reconcile already in flight finishes.
func (s *Scheduler) Stop() {
	if s.c != nil {
		s.c.Stop()
	}
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	log.Printf("[info] operation=cron.reconcile message=nightly graph replay started")

	report, err := s.migrator.Run(ctx)
	if err != nil {
		log.Printf("[error] operation=cron.reconcile error=%v", err)
		return
	}
	log.Printf("[info] operation=cron.reconcile message=replay finished report=%q", report)
}
