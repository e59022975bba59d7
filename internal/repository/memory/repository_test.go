package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BarkinBalci/combat-log-analytics-service/internal/domain"
	"github.com/BarkinBalci/combat-log-analytics-service/internal/repository"
)

func testMatch(id string) *domain.Match {
	return &domain.Match{
		ID: id,
		Events: []domain.Event{
			domain.ItemPurchased{Header: domain.Header{Timestamp: 1, Actor: "a"}, Item: "tango"},
			domain.HeroKilled{Header: domain.Header{Timestamp: 2, Actor: "a"}, Target: "b", Ability: "x", AbilityLevel: 1},
			domain.DamageDone{Header: domain.Header{Timestamp: 3, Actor: "b"}, Target: "a", Damage: 10},
		},
	}
}

func TestRepository_SaveAndFindByID(t *testing.T) {
	repo := NewRepository(zap.NewNop())
	ctx := context.Background()

	id, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)
	assert.Equal(t, "m1", id)

	match, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, testMatch("m1").Events, match.Events)
}

func TestRepository_FindByID_NotFound(t *testing.T) {
	repo := NewRepository(zap.NewNop())

	match, err := repo.FindByID(context.Background(), "missing")

	assert.Nil(t, match)
	assert.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestRepository_FindEventsByMatchAndActor(t *testing.T) {
	repo := NewRepository(zap.NewNop())
	ctx := context.Background()
	_, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)

	events, err := repo.FindEventsByMatchAndActor(ctx, "m1", "a")
	require.NoError(t, err)
	assert.Len(t, events, 2)

	events, err = repo.FindEventsByMatchAndActor(ctx, "m1", "nobody")
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = repo.FindEventsByMatchAndActor(ctx, "missing", "a")
	assert.ErrorIs(t, err, repository.ErrMatchNotFound)
}

func TestRepository_Save_RejectsDuplicateAndEmptyID(t *testing.T) {
	repo := NewRepository(zap.NewNop())
	ctx := context.Background()

	_, err := repo.Save(ctx, testMatch("m1"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, testMatch("m1"))
	assert.ErrorIs(t, err, repository.ErrMatchExists)

	_, err = repo.Save(ctx, testMatch(""))
	assert.Error(t, err)
}

func TestRepository_StoredMatchIsIsolatedFromCaller(t *testing.T) {
	repo := NewRepository(zap.NewNop())
	ctx := context.Background()

	match := testMatch("m1")
	_, err := repo.Save(ctx, match)
	require.NoError(t, err)

	match.Events[0] = domain.ItemPurchased{Header: domain.Header{Actor: "z"}, Item: "rapier"}

	stored, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.Equal(t, "a", stored.Events[0].EventHeader().Actor)
}

func TestRepository_ConcurrentAccess(t *testing.T) {
	repo := NewRepository(zap.NewNop())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("m%d", i)
			_, err := repo.Save(ctx, testMatch(id))
			assert.NoError(t, err)
			_, err = repo.FindByID(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		_, err := repo.FindByID(ctx, fmt.Sprintf("m%d", i))
		assert.NoError(t, err)
	}
}
