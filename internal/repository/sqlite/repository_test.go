package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/combatlog"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/config"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	ctx := context.Background()
	repo, err := NewRepository(ctx, config.SQLite{Path: filepath.Join(t.TempDir(), "test.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	require.NoError(t, repo.InitSchema(ctx))
	return repo
}

func testMatch(id string) *domain.Match {
	return &domain.Match{
		ID:         id,
		IngestedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Events: []domain.Event{
			domain.ItemPurchased{Header: domain.Header{Timestamp: 1000, Actor: "a"}, Item: "tango"},
			domain.HeroKilled{Header: domain.Header{Timestamp: 2000, Actor: "a"}, Target: "b", Ability: "x", AbilityLevel: 3},
			domain.SpellCast{Header: domain.Header{Timestamp: 2500, Actor: "a"}, Target: "b", Ability: "y", AbilityLevel: 2},
			domain.DamageDone{Header: domain.Header{Timestamp: 3000, Actor: "b"}, Target: "a", Damage: 120},
			domain.DamageDone{Header: domain.Header{Timestamp: 3000, Actor: "b"}, Target: "a", Damage: 120},
		},
	}
}

func TestRepository_SaveAndFindByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)
	assert.Equal(t, "m1", id)

	match, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "m1", match.ID)
	assert.Equal(t, testMatch("m1").Events, match.Events)
	assert.True(t, testMatch("m1").IngestedAt.Equal(match.IngestedAt))
}

func TestRepository_SaveEmptyMatch(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Match{ID: "empty", IngestedAt: time.Now()})
	require.NoError(t, err)

	match, err := repo.FindByID(ctx, "empty")
	require.NoError(t, err)
	assert.Empty(t, match.Events)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	match, err := repo.FindByID(context.Background(), "missing")

	assert.Nil(t, match)
	assert.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestRepository_FindEventsByMatchAndActor(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	_, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)

	events, err := repo.FindEventsByMatchAndActor(ctx, "m1", "a")
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, domain.KindItemPurchased, events[0].Kind())
	assert.Equal(t, domain.KindSpellCast, events[2].Kind())

	events, err = repo.FindEventsByMatchAndActor(ctx, "m1", "nobody")
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = repo.FindEventsByMatchAndActor(ctx, "missing", "a")
	assert.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestRepository_Save_RejectsDuplicateID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, testMatch("m1"))
	assert.ErrorIs(t, err, repository.ErrMatchExists)

	match, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Len(t, match.Events, 5)
}

func TestRepository_Save_RejectsEmptyID(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Save(context.Background(), testMatch(""))

	assert.Error(t, err)
}

func TestRepository_Ping(t *testing.T) {
	repo := newTestRepository(t)

	assert.NoError(t, repo.Ping(context.Background()))
}

func TestRepository_AbilityLevelRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	log := `[00:00:01.000] npc_dota_hero_a kills npc_dota_hero_b with x Level 2147483647
[00:00:02.000] npc_dota_hero_a casts ability y (lvl 4294967299) on npc_dota_hero_b
[00:00:03.000] npc_dota_hero_a casts ability y (lvl 7) on npc_dota_hero_b`

	match := combatlog.NewParser(zap.NewNop()).ParseWithID("levels", log)
	match.IngestedAt = time.Now()
	require.Len(t, match.Events, 2, "a level above int32 is not a recognized line")

	_, err := repo.Save(ctx, match)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, "levels")
	require.NoError(t, err)
	assert.Equal(t, match.Events, found.Events)
	assert.Equal(t, 2147483647, found.Events[0].(domain.HeroKilled).AbilityLevel)
	assert.Equal(t, 7, found.Events[1].(domain.SpellCast).AbilityLevel)
}
