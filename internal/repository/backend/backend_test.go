package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/memory"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/sqlite"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: config.DriverMemory}}

	repo, err := Open(context.Background(), cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &memory.Repository{}, repo)
}

func TestOpen_SQLite(t *testing.T) {
	cfg := &config.Config{
		Storage: config.Storage{Driver: config.DriverSQLite},
		SQLite:  config.SQLite{Path: filepath.Join(t.TempDir(), "matches.db")},
	}

	repo, err := Open(context.Background(), cfg, zap.NewNop())

	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	assert.IsType(t, &sqlite.Repository{}, repo)
	assert.NoError(t, repo.Ping(context.Background()))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: "cassandra"}}

	repo, err := Open(context.Background(), cfg, zap.NewNop())

	assert.Nil(t, repo)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported storage driver")
}
