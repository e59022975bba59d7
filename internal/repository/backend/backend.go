// Package backend opens the MatchRepository selected by STORAGE_DRIVER.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/clickhouse"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/memory"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/postgres"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository/sqlite"
)

// Open connects the configured storage driver and initializes its schema
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.MatchRepository, error) {
	repo, err := open(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := repo.InitSchema(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("failed to initialize %s schema: %w", cfg.Storage.Driver, err)
	}

	log.Info("Match repository ready", zap.String("driver", cfg.Storage.Driver))
	return repo, nil
}

func open(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.MatchRepository, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return memory.NewRepository(log), nil
	case config.DriverClickHouse:
		client, err := clickhouse.NewClient(ctx, cfg.ClickHouse, log)
		if err != nil {
			return nil, err
		}
		return clickhouse.NewRepository(client, log), nil
	case config.DriverPostgres:
		return postgres.NewRepository(ctx, cfg.Postgres, log)
	case config.DriverSQLite:
		return sqlite.NewRepository(ctx, cfg.SQLite, log)
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
}
