package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/synkro-platform/synkro-backend/config"
)

// Runner executes a single Cypher statement and returns the collected
// records. Implementations must scope every call to its own session so
// concurrent operations never share one.
type Runner interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// sessionRunner backs Runner with the shared Neo4j driver. Each call opens
// a fresh session bound to the configured database and closes it on every
// exit path.
type sessionRunner struct {
	cfg config.Neo4jConfig
}

// NewRunner returns a Runner bound to the configured graph database. The
// underlying driver is created lazily on the first query.
func NewRunner(cfg config.Neo4jConfig) Runner {
	if cfg.Database == "" {
		cfg.Database = "neo4j"
	}
	return &sessionRunner{cfg: cfg}
}

func (r *sessionRunner) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return r.run(ctx, neo4j.AccessModeRead, cypher, params)
}

func (r *sessionRunner) Write(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	return r.run(ctx, neo4j.AccessModeWrite, cypher, params)
}

func (r *sessionRunner) run(ctx context.Context, mode neo4j.AccessMode, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	d, err := getDriver(r.cfg)
	if err != nil {
		return nil, err
	}

	session := d.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: r.cfg.Database,
	})
	defer session.Close(ctx)

	result, err := session.Run(ctx, cypher, params)
	if err != nil {
		return nil, fmt.Errorf("run query: %w", err)
	}

	records, err := result.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("collect records: %w", err)
	}
	return records, nil
}
