// One-shot rebuild of the derived graph from the authoritative store.
// Safe to re-run in full: every sync operation it drives is idempotent.
//
// Usage: migrate [-rate N]
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/synkro-platform/synkro-backend/config"
	"github.com/synkro-platform/synkro-backend/internal/bootstrap"
	"github.com/synkro-platform/synkro-backend/internal/graph"
	projectrepo "github.com/synkro-platform/synkro-backend/internal/projects/repository"
	userrepo "github.com/synkro-platform/synkro-backend/internal/users/repository"
)

func main() {
	rate := flag.Int("rate", 50, "max sync operations per second (0 disables throttling)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := cfg.Neo4j.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()

	mongoClient, err := bootstrap.OpenMongo(ctx, bootstrap.MongoOptions{URI: cfg.Mongo.URI})
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	db := mongoClient.Database(cfg.Mongo.Database)

	graphService := graph.NewService(graph.NewRunner(cfg.Neo4j))
	defer graph.CloseDriver(ctx)

	migrator := graph.NewMigrator(
		userrepo.NewUserRepository(db),
		projectrepo.NewProjectRepository(db),
		graphService,
		*rate,
	)

	report, err := migrator.Run(ctx)
	if err != nil {
		log.Printf("[error] operation=migrate error=%v", err)
		os.Exit(1)
	}

	log.Printf("[info] operation=migrate message=done report=%q", report)
	if report.UsersFailed > 0 || report.ProjectsFailed > 0 {
		os.Exit(1)
	}
}
