// Package memory keeps matches in process memory. It backs local runs and tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

// Repository implements MatchRepository with a map guarded by a RWMutex
type Repository struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match
	log     *zap.Logger
}

// NewRepository creates an empty in-memory repository
func NewRepository(log *zap.Logger) *Repository {
	return &Repository{
		matches: make(map[string]*domain.Match),
		log:     log,
	}
}

// Save stores a copy of the match
func (r *Repository) Save(_ context.Context, match *domain.Match) (string, error) {
	if match.ID == "" {
		return "", fmt.Errorf("match id is required")
	}

	stored := &domain.Match{
		ID:         match.ID,
		Events:     append([]domain.Event(nil), match.Events...),
		IngestedAt: match.IngestedAt,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[match.ID]; exists {
		return "", fmt.Errorf("%w: %s", repository.ErrMatchExists, match.ID)
	}
	r.matches[match.ID] = stored

	r.log.Debug("Match stored in memory",
		zap.String("match_id", match.ID),
		zap.Int("event_count", len(stored.Events)))

	return match.ID, nil
}

// FindByID returns a copy of the stored match
func (r *Repository) FindByID(_ context.Context, matchID string) (*domain.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, ok := r.matches[matchID]
	if !ok {
		return nil, repository.ErrMatchNotFound
	}

	return &domain.Match{
		ID:         match.ID,
		Events:     append([]domain.Event(nil), match.Events...),
		IngestedAt: match.IngestedAt,
	}, nil
}

// FindEventsByMatchAndActor returns the match's events performed by actor
func (r *Repository) FindEventsByMatchAndActor(_ context.Context, matchID, actor string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	match, ok := r.matches[matchID]
	if !ok {
		return nil, repository.ErrMatchNotFound
	}

	return match.EventsByActor(actor), nil
}

// InitSchema is a no-op for the in-memory store
func (r *Repository) InitSchema(context.Context) error {
	return nil
}

// Ping always succeeds
func (r *Repository) Ping(context.Context) error {
	return nil
}

// Close drops every stored match
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matches = make(map[string]*domain.Match)
	return nil
}
