package graph

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/synkro-platform/synkro-backend/config"
)

// The driver is shared process-wide and created lazily on first use, the
// same way the document store keeps one client. Connectivity is verified in
// the background so a slow or unreachable store delays the first query, not
// startup.
var (
	driverMu sync.Mutex
	driver   neo4j.DriverWithContext
)

func getDriver(cfg config.Neo4jConfig) (neo4j.DriverWithContext, error) {
	driverMu.Lock()
	defer driverMu.Unlock()

	if driver != nil {
		return driver, nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("neo4j config: %w", err)
	}

	d, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	driver = d

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := d.VerifyConnectivity(ctx); err != nil {
			log.Printf("[warn] operation=graph.connect error=%v", err)
			return
		}
		log.Printf("[info] operation=graph.connect message=neo4j driver connected")
	}()

	return driver, nil
}

// CloseDriver releases the shared driver. Intended for process shutdown.
func CloseDriver(ctx context.Context) error {
	driverMu.Lock()
	defer driverMu.Unlock()

	if driver == nil {
		return nil
	}
	err := driver.Close(ctx)
	driver = nil
	return err
}
