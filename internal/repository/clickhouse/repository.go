package clickhouse

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

const createMatchesTable = `
	CREATE TABLE IF NOT EXISTS matches (
		match_id String,
		event_count UInt32,
		ingested_at DateTime64(3)
	) ENGINE = MergeTree()
	ORDER BY match_id
	`

const createEventsTable = `
	CREATE TABLE IF NOT EXISTS combat_log_events (
		match_id String,
		seq UInt32,
		kind LowCardinality(String),
		timestamp Int64,
		actor LowCardinality(String),
		target Nullable(String),
		ability Nullable(String),
		ability_level Nullable(Int32),
		item Nullable(String),
		damage Nullable(Int64)
	) ENGINE = MergeTree()
	ORDER BY (match_id, seq)
	SETTINGS index_granularity = 8192
	`

const selectEvents = `
	SELECT match_id, seq, kind, timestamp, actor, target, ability, ability_level, item, damage
	FROM combat_log_events
	`

// Repository implements MatchRepository for ClickHouse.
// Events are written before the matches row, so a match is only found once all
// of its events are stored.
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the matches and combat_log_events tables
func (r *Repository) InitSchema(ctx context.Context) error {
	if err := r.client.Conn().Exec(ctx, createMatchesTable); err != nil {
		return fmt.Errorf("failed to create matches table: %w", err)
	}
	if err := r.client.Conn().Exec(ctx, createEventsTable); err != nil {
		return fmt.Errorf("failed to create combat_log_events table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// Save inserts the match's events in one batch followed by its matches row
func (r *Repository) Save(ctx context.Context, match *domain.Match) (string, error) {
	if match.ID == "" {
		return "", fmt.Errorf("match id is required")
	}

	exists, err := r.exists(ctx, match.ID)
	if err != nil {
		return "", err
	}
	if exists {
		return "", fmt.Errorf("%w: %s", repository.ErrMatchExists, match.ID)
	}

	if len(match.Events) > 0 {
		batch, err := r.client.Conn().PrepareBatch(ctx, "INSERT INTO combat_log_events")
		if err != nil {
			return "", fmt.Errorf("failed to prepare events batch: %w", err)
		}

		for _, record := range domain.ToRecords(match) {
			if err := batch.AppendStruct(&record); err != nil {
				_ = batch.Abort()
				return "", fmt.Errorf("failed to append event %d to batch: %w", record.Seq, err)
			}
		}

		if err := batch.Send(); err != nil {
			return "", fmt.Errorf("failed to send events batch: %w", err)
		}
	}

	err = r.client.Conn().Exec(ctx,
		"INSERT INTO matches (match_id, event_count, ingested_at) VALUES (?, ?, ?)",
		match.ID, uint32(len(match.Events)), match.IngestedAt)
	if err != nil {
		return "", fmt.Errorf("failed to insert match: %w", err)
	}

	r.log.Debug("Match stored in ClickHouse",
		zap.String("match_id", match.ID),
		zap.Int("event_count", len(match.Events)))

	return match.ID, nil
}

// FindByID loads the match and its events ordered by seq
func (r *Repository) FindByID(ctx context.Context, matchID string) (*domain.Match, error) {
	var rows []domain.MatchRecord
	err := r.client.Conn().Select(ctx, &rows,
		"SELECT match_id, event_count, ingested_at FROM matches WHERE match_id = ? LIMIT 1", matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query match: %w", err)
	}
	if len(rows) == 0 {
		return nil, repository.ErrMatchNotFound
	}

	events, err := r.selectEvents(ctx, selectEvents+"WHERE match_id = ? ORDER BY seq", matchID)
	if err != nil {
		return nil, err
	}

	return &domain.Match{
		ID:         matchID,
		Events:     events,
		IngestedAt: rows[0].IngestedAt,
	}, nil
}

// FindEventsByMatchAndActor loads the events of a match performed by actor
func (r *Repository) FindEventsByMatchAndActor(ctx context.Context, matchID, actor string) ([]domain.Event, error) {
	exists, err := r.exists(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, repository.ErrMatchNotFound
	}

	return r.selectEvents(ctx, selectEvents+"WHERE match_id = ? AND actor = ? ORDER BY seq", matchID, actor)
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}

func (r *Repository) exists(ctx context.Context, matchID string) (bool, error) {
	var count uint64
	row := r.client.Conn().QueryRow(ctx, "SELECT count() FROM matches WHERE match_id = ?", matchID)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check match: %w", err)
	}
	return count > 0, nil
}

func (r *Repository) selectEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	var records []domain.Record
	if err := r.client.Conn().Select(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	events, err := domain.FromRecords(records)
	if err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}
