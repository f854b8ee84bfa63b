package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "synkro", cfg.Mongo.Database)
	assert.Equal(t, "neo4j", cfg.Neo4j.Database)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEO4J_URI", "neo4j+s://example.databases.neo4j.io")
	t.Setenv("RECOMMENDATION_CACHE_TTL", "5m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "neo4j+s://example.databases.neo4j.io", cfg.Neo4j.URI)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
}

func TestLoadInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("RECOMMENDATION_CACHE_TTL", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.Redis.TTL)
}

func TestNeo4jConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Neo4jConfig
		wantErr string
	}{
		{
			name: "complete",
			cfg:  Neo4jConfig{URI: "neo4j://localhost:7687", Username: "neo4j", Password: "secret"},
		},
		{
			name:    "missing uri",
			cfg:     Neo4jConfig{Username: "neo4j", Password: "secret"},
			wantErr: "NEO4J_URI",
		},
		{
			name:    "missing username",
			cfg:     Neo4jConfig{URI: "neo4j://localhost:7687", Password: "secret"},
			wantErr: "NEO4J_USERNAME",
		},
		{
			name:    "missing password",
			cfg:     Neo4jConfig{URI: "neo4j://localhost:7687", Username: "neo4j"},
			wantErr: "NEO4J_PASSWORD",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
