package service

import (
	"context"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/dto"
)

// MatchServicer defines the interface for match ingestion and reporting
type MatchServicer interface {
	IngestCombatLog(ctx context.Context, combatLog string) (string, error)
	EnqueueCombatLog(ctx context.Context, combatLog string) (string, error)
	GetKills(ctx context.Context, matchID string) ([]dto.HeroKills, error)
	GetItems(ctx context.Context, matchID, hero string) ([]dto.HeroItem, error)
	GetSpells(ctx context.Context, matchID, hero string) ([]dto.HeroSpells, error)
	GetDamage(ctx context.Context, matchID, hero string) ([]dto.HeroDamage, error)
	GetSummary(ctx context.Context, matchID string) (*dto.MatchSummary, error)
	Ping(ctx context.Context) error
}
