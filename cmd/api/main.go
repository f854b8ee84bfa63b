package main

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/synkro-platform/synkro-backend/config"
	"github.com/synkro-platform/synkro-backend/internal/auth"
	"github.com/synkro-platform/synkro-backend/internal/bootstrap"
	"github.com/synkro-platform/synkro-backend/internal/graph"
	cronjob "github.com/synkro-platform/synkro-backend/internal/graph/cron"
	projectrepo "github.com/synkro-platform/synkro-backend/internal/projects/repository"
	userrepo "github.com/synkro-platform/synkro-backend/internal/users/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	mongoClient, err := bootstrap.OpenMongo(ctx, bootstrap.MongoOptions{URI: cfg.Mongo.URI})
	if err != nil {
		log.Fatalf("mongo: %v", err)
	}
	defer mongoClient.Disconnect(ctx)

	db := mongoClient.Database(cfg.Mongo.Database)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	authClient, err := auth.InitializeFirebase(&cfg.Firebase)
	if err != nil {
		log.Fatalf("firebase: %v", err)
	}

	runner := graph.NewRunner(cfg.Neo4j)
	cache := graph.NewCache(redisClient, cfg.Redis.TTL)
	graphService := graph.NewServiceWithCache(runner, cache)
	defer graph.CloseDriver(ctx)

	// Nightly full replay keeps the derived graph honest: additive skill
	// sync and any missed incremental writes converge here.
	migrator := graph.NewMigrator(
		userrepo.NewUserRepository(db),
		projectrepo.NewProjectRepository(db),
		graphService,
		50,
	)
	scheduler := cronjob.NewScheduler(migrator, "")
	scheduler.Start()
	defer scheduler.Stop()

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "synkro-backend",
		Version:     cfg.App.Version,
		Mongo:       mongoClient,
		MongoDB:     db,
		Graph:       graphService,
		Auth:        authClient,
	})

	log.Printf("[info] operation=server.start message=listening port=%s started=%s",
		cfg.Server.Port, time.Now().UTC().Format(time.RFC3339))

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
