// Package sqlite stores matches in a local SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

const schema = `
	CREATE TABLE IF NOT EXISTS matches (
		match_id TEXT PRIMARY KEY,
		event_count INTEGER NOT NULL,
		ingested_at_ms INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS combat_log_events (
		match_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		kind TEXT NOT NULL,
		timestamp INTEGER NOT NULL,
		actor TEXT NOT NULL,
		target TEXT,
		ability TEXT,
		ability_level INTEGER,
		item TEXT,
		damage INTEGER,
		PRIMARY KEY (match_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_combat_log_events_actor ON combat_log_events (match_id, actor);
`

const selectEvents = `
	SELECT match_id, seq, kind, timestamp, actor, target, ability, ability_level, item, damage
	FROM combat_log_events
`

// Repository implements MatchRepository on top of database/sql with the modernc driver
type Repository struct {
	db  *sql.DB
	log *zap.Logger
}

// NewRepository opens the SQLite database at cfg.Path
func NewRepository(ctx context.Context, cfg config.SQLite, log *zap.Logger) (*Repository, error) {
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("SQLite database opened", zap.String("path", cfg.Path))

	return &Repository{db: db, log: log}, nil
}

// InitSchema creates the matches and combat_log_events tables
func (r *Repository) InitSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	r.log.Info("SQLite schema initialized successfully")
	return nil
}

// Save writes the match row and its events in one transaction
func (r *Repository) Save(ctx context.Context, match *domain.Match) (string, error) {
	if match.ID == "" {
		return "", fmt.Errorf("match id is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO matches (match_id, event_count, ingested_at_ms) VALUES (?, ?, ?)",
		match.ID, len(match.Events), match.IngestedAt.UnixMilli())
	if err != nil {
		if isConstraintViolation(err) {
			return "", fmt.Errorf("%w: %s", repository.ErrMatchExists, match.ID)
		}
		return "", fmt.Errorf("failed to insert match: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO combat_log_events
			(match_id, seq, kind, timestamp, actor, target, ability, ability_level, item, damage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare event statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range domain.ToRecords(match) {
		_, err := stmt.ExecContext(ctx,
			rec.MatchID, rec.Seq, rec.Kind, rec.Timestamp, rec.Actor,
			rec.Target, rec.Ability, rec.AbilityLevel, rec.Item, rec.Damage)
		if err != nil {
			return "", fmt.Errorf("failed to insert event %d: %w", rec.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Debug("Match stored in SQLite",
		zap.String("match_id", match.ID),
		zap.Int("event_count", len(match.Events)))

	return match.ID, nil
}

// FindByID loads the match and its events ordered by seq
func (r *Repository) FindByID(ctx context.Context, matchID string) (*domain.Match, error) {
	var ingestedAtMs int64
	err := r.db.QueryRowContext(ctx,
		"SELECT ingested_at_ms FROM matches WHERE match_id = ?", matchID).Scan(&ingestedAtMs)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrMatchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}

	events, err := r.queryEvents(ctx, selectEvents+"WHERE match_id = ? ORDER BY seq", matchID)
	if err != nil {
		return nil, err
	}

	return &domain.Match{
		ID:         matchID,
		Events:     events,
		IngestedAt: time.UnixMilli(ingestedAtMs).UTC(),
	}, nil
}

// FindEventsByMatchAndActor loads the events of a match performed by actor
func (r *Repository) FindEventsByMatchAndActor(ctx context.Context, matchID, actor string) ([]domain.Event, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM matches WHERE match_id = ?", matchID).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to check match: %w", err)
	}
	if count == 0 {
		return nil, repository.ErrMatchNotFound
	}

	return r.queryEvents(ctx, selectEvents+"WHERE match_id = ? AND actor = ? ORDER BY seq", matchID, actor)
}

// Ping checks if the database is reachable
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) queryEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var rec domain.Record
		err := rows.Scan(&rec.MatchID, &rec.Seq, &rec.Kind, &rec.Timestamp, &rec.Actor,
			&rec.Target, &rec.Ability, &rec.AbilityLevel, &rec.Item, &rec.Damage)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	events, err := domain.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// isConstraintViolation reports a duplicate match_id; the driver runs with extended result codes
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	}
	return false
}
