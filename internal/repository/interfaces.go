package repository

import (
	"context"
	"errors"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
)

var (
	// ErrMatchNotFound is returned when a match id is unknown to the store
	ErrMatchNotFound = errors.New("match not found")
	// ErrMatchExists is returned by Save when the match id is already stored
	ErrMatchExists = errors.New("match already exists")
)

// MatchRepository defines the interface for match storage operations
type MatchRepository interface {
	// Save stores the match and all of its events, returning the match id.
	// A match is only visible to readers once all of its events are stored.
	Save(ctx context.Context, match *domain.Match) (string, error)

	// FindByID loads a match with its events in source order
	FindByID(ctx context.Context, matchID string) (*domain.Match, error)

	// FindEventsByMatchAndActor loads the events of a match performed by actor
	FindEventsByMatchAndActor(ctx context.Context, matchID, actor string) ([]domain.Event, error)

	// InitSchema initializes the database schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// Ping checks if the database connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
