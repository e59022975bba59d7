// Package postgres stores matches in PostgreSQL through a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

const uniqueViolation = "23505"

const schema = `
	CREATE TABLE IF NOT EXISTS matches (
		match_id TEXT PRIMARY KEY,
		event_count INTEGER NOT NULL,
		ingested_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS combat_log_events (
		match_id TEXT NOT NULL REFERENCES matches (match_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		timestamp BIGINT NOT NULL,
		actor TEXT NOT NULL,
		target TEXT,
		ability TEXT,
		ability_level INTEGER,
		item TEXT,
		damage BIGINT,
		PRIMARY KEY (match_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_combat_log_events_actor ON combat_log_events (match_id, actor);
`

const selectEvents = `
	SELECT match_id, seq, kind, timestamp, actor, target, ability, ability_level, item, damage
	FROM combat_log_events
`

var eventColumns = []string{
	"match_id", "seq", "kind", "timestamp", "actor",
	"target", "ability", "ability_level", "item", "damage",
}

// Repository implements MatchRepository for PostgreSQL
type Repository struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

// NewRepository connects a pool to cfg.URL and verifies it
func NewRepository(ctx context.Context, cfg config.Postgres, log *zap.Logger) (*Repository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres url: %w", err)
	}
	poolConfig.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("PostgreSQL connection established",
		zap.String("database", poolConfig.ConnConfig.Database),
		zap.Int32("max_conns", cfg.MaxConns))

	return &Repository{pool: pool, log: log}, nil
}

// InitSchema creates the matches and combat_log_events tables
func (r *Repository) InitSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	r.log.Info("PostgreSQL schema initialized successfully")
	return nil
}

// Save writes the match row and copies its events inside one transaction
func (r *Repository) Save(ctx context.Context, match *domain.Match) (string, error) {
	if match.ID == "" {
		return "", fmt.Errorf("match id is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		"INSERT INTO matches (match_id, event_count, ingested_at) VALUES ($1, $2, $3)",
		match.ID, len(match.Events), match.IngestedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", fmt.Errorf("%w: %s", repository.ErrMatchExists, match.ID)
		}
		return "", fmt.Errorf("failed to insert match: %w", err)
	}

	records := domain.ToRecords(match)
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"combat_log_events"},
		eventColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{
				rec.MatchID, int32(rec.Seq), rec.Kind, rec.Timestamp, rec.Actor,
				rec.Target, rec.Ability, rec.AbilityLevel, rec.Item, rec.Damage,
			}, nil
		}))
	if err != nil {
		return "", fmt.Errorf("failed to copy events: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Debug("Match stored in PostgreSQL",
		zap.String("match_id", match.ID),
		zap.Int64("event_count", copied))

	return match.ID, nil
}

// FindByID loads the match and its events ordered by seq
func (r *Repository) FindByID(ctx context.Context, matchID string) (*domain.Match, error) {
	match := &domain.Match{ID: matchID}

	err := r.pool.QueryRow(ctx,
		"SELECT ingested_at FROM matches WHERE match_id = $1", matchID).Scan(&match.IngestedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}

	match.Events, err = r.queryEvents(ctx, selectEvents+"WHERE match_id = $1 ORDER BY seq", matchID)
	if err != nil {
		return nil, err
	}

	return match, nil
}

// FindEventsByMatchAndActor loads the events of a match performed by actor
func (r *Repository) FindEventsByMatchAndActor(ctx context.Context, matchID, actor string) ([]domain.Event, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM matches WHERE match_id = $1)", matchID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check match: %w", err)
	}
	if !exists {
		return nil, repository.ErrMatchNotFound
	}

	return r.queryEvents(ctx, selectEvents+"WHERE match_id = $1 AND actor = $2 ORDER BY seq", matchID, actor)
}

// Ping checks if the pool can reach the database
func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the connection pool
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

func (r *Repository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Record])
	if err != nil {
		return nil, fmt.Errorf("failed to scan events: %w", err)
	}

	events, err := domain.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}
