package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/aggregate"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/archive"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/dto"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/queue"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

var (
	// ErrEmptyCombatLog is returned when the submitted log is blank
	ErrEmptyCombatLog = errors.New("combat log must not be blank")
	// ErrQueueUnavailable is returned by EnqueueCombatLog when no queue is configured
	ErrQueueUnavailable = errors.New("async ingestion queue is not configured")
)

// MatchService ingests combat logs and answers match queries
type MatchService struct {
	parser     *combatlog.Parser
	repository repository.MatchRepository
	publisher  queue.CombatLogPublisher
	archiver   archive.Archiver
	log        *zap.Logger
	newID      func() string
	now        func() time.Time
}

// Option configures optional collaborators of MatchService
type Option func(*MatchService)

// WithPublisher enables async ingestion through publisher
func WithPublisher(publisher queue.CombatLogPublisher) Option {
	return func(s *MatchService) { s.publisher = publisher }
}

// WithArchiver uploads every ingested log through archiver
func WithArchiver(archiver archive.Archiver) Option {
	return func(s *MatchService) { s.archiver = archiver }
}

// NewMatchService creates a new match service
func NewMatchService(parser *combatlog.Parser, repo repository.MatchRepository, log *zap.Logger, opts ...Option) *MatchService {
	s := &MatchService{
		parser:     parser,
		repository: repo,
		log:        log,
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IngestCombatLog parses and stores a combat log, returning the new match id
func (s *MatchService) IngestCombatLog(ctx context.Context, combatLog string) (string, error) {
	if strings.TrimSpace(combatLog) == "" {
		return "", ErrEmptyCombatLog
	}

	match, stats := s.parser.ParseWithStats(s.newID(), combatLog)
	match.IngestedAt = s.now().UTC()

	matchID, err := s.repository.Save(ctx, match)
	if err != nil {
		return "", fmt.Errorf("failed to save match: %w", err)
	}

	s.log.Info("Combat log ingested",
		zap.String("match_id", matchID),
		zap.Int("lines", stats.Lines),
		zap.Int("events", stats.Events),
		zap.Int("skipped", stats.Skipped))

	s.archive(ctx, matchID, combatLog, match.IngestedAt)

	return matchID, nil
}

// EnqueueCombatLog publishes a combat log for the consumer and returns the id it will be stored under
func (s *MatchService) EnqueueCombatLog(ctx context.Context, combatLog string) (string, error) {
	if strings.TrimSpace(combatLog) == "" {
		return "", ErrEmptyCombatLog
	}
	if s.publisher == nil {
		return "", ErrQueueUnavailable
	}

	matchID := s.newID()
	if err := s.publisher.PublishCombatLog(ctx, matchID, combatLog); err != nil {
		return "", fmt.Errorf("failed to publish combat log to queue: %w", err)
	}

	s.log.Info("Combat log queued",
		zap.String("match_id", matchID),
		zap.Int("bytes", len(combatLog)))

	s.archive(ctx, matchID, combatLog, s.now().UTC())

	return matchID, nil
}

// GetKills returns the kill count of every hero that scored a kill
func (s *MatchService) GetKills(ctx context.Context, matchID string) ([]dto.HeroKills, error) {
	match, err := s.findMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	kills := aggregate.Kills(match.Events)
	response := make([]dto.HeroKills, 0, len(kills))
	for _, k := range kills {
		response = append(response, dto.HeroKills{Hero: k.Hero, Kills: k.Kills})
	}
	return response, nil
}

// GetItems returns every item purchase of hero in log order
func (s *MatchService) GetItems(ctx context.Context, matchID, hero string) ([]dto.HeroItem, error) {
	events, err := s.findActorEvents(ctx, matchID, hero)
	if err != nil {
		return nil, err
	}

	items := aggregate.Items(events, hero)
	response := make([]dto.HeroItem, 0, len(items))
	for _, item := range items {
		response = append(response, dto.HeroItem{Item: item.Item, Timestamp: item.Timestamp})
	}
	return response, nil
}

// GetSpells returns how often hero cast each ability
func (s *MatchService) GetSpells(ctx context.Context, matchID, hero string) ([]dto.HeroSpells, error) {
	events, err := s.findActorEvents(ctx, matchID, hero)
	if err != nil {
		return nil, err
	}

	spells := aggregate.Spells(events, hero)
	response := make([]dto.HeroSpells, 0, len(spells))
	for _, spell := range spells {
		response = append(response, dto.HeroSpells{Spell: spell.Ability, Casts: spell.Casts})
	}
	return response, nil
}

// GetDamage returns the damage each attacker dealt to hero
func (s *MatchService) GetDamage(ctx context.Context, matchID, hero string) ([]dto.HeroDamage, error) {
	// damage on hero is recorded under the attackers, so the whole match is needed
	match, err := s.findMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	damage := aggregate.DamageTaken(match.Events, hero)
	response := make([]dto.HeroDamage, 0, len(damage))
	for _, d := range damage {
		response = append(response, dto.HeroDamage{
			Target:          d.OtherActor,
			DamageInstances: d.Instances,
			TotalDamage:     d.TotalDamage,
		})
	}
	return response, nil
}

// GetSummary returns event counts, heroes and duration of a match
func (s *MatchService) GetSummary(ctx context.Context, matchID string) (*dto.MatchSummary, error) {
	match, err := s.findMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	summary := aggregate.Summarize(match.Events)
	events := make(map[string]int, len(summary.ByKind))
	for kind, count := range summary.ByKind {
		events[string(kind)] = count
	}

	return &dto.MatchSummary{
		MatchID:     match.ID,
		TotalEvents: summary.TotalEvents,
		Events:      events,
		Heroes:      summary.Heroes,
		DurationMs:  summary.DurationMs,
	}, nil
}

// Ping checks the match repository
func (s *MatchService) Ping(ctx context.Context) error {
	return s.repository.Ping(ctx)
}

func (s *MatchService) findMatch(ctx context.Context, matchID string) (*domain.Match, error) {
	match, err := s.repository.FindByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to load match %s: %w", matchID, err)
	}
	return match, nil
}

func (s *MatchService) findActorEvents(ctx context.Context, matchID, actor string) ([]domain.Event, error) {
	events, err := s.repository.FindEventsByMatchAndActor(ctx, matchID, actor)
	if err != nil {
		return nil, fmt.Errorf("failed to load events of %s in match %s: %w", actor, matchID, err)
	}
	return events, nil
}

func (s *MatchService) archive(ctx context.Context, matchID, combatLog string, at time.Time) {
	if s.archiver == nil {
		return
	}
	if err := s.archiver.Archive(ctx, matchID, combatLog, at); err != nil {
		s.log.Warn("Failed to archive combat log",
			zap.String("match_id", matchID),
			zap.Error(err))
	}
}
