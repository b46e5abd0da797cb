package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/repository"
)

func snapshot(id string, gold int64) domain.CharacterSnapshot {
	return domain.CharacterSnapshot{ID: id, Name: id, Level: 1, Gold: gold}
}

func TestCachedRepository_LoadReadsThroughOnce(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	inner.On("Load", ctx, "a").Return(snapshot("a", 10), nil).Once()
	c := NewCachedRepository(inner, 10, time.Minute)

	first, err := c.Load(ctx, "a")
	require.NoError(t, err)
	second, err := c.Load(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	inner.AssertNumberOfCalls(t, "Load", 1)
}

func TestCachedRepository_LoadErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	inner.On("Load", ctx, "ghost").Return(domain.CharacterSnapshot{}, domain.ErrCharacterNotFound).Twice()
	c := NewCachedRepository(inner, 10, time.Minute)

	for range 2 {
		_, err := c.Load(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrCharacterNotFound)
	}
	assert.Zero(t, c.Len())
	inner.AssertExpectations(t)
}

func TestCachedRepository_SaveRefreshesCache(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	inner.On("Save", ctx, snapshot("a", 50)).Return(nil)
	c := NewCachedRepository(inner, 10, time.Minute)

	require.NoError(t, c.Save(ctx, snapshot("a", 50)))

	got, err := c.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.Gold)
	inner.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestCachedRepository_FailedSaveManyEvicts(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	batch := []domain.CharacterSnapshot{snapshot("a", 1), snapshot("b", 2)}
	inner.On("SaveMany", ctx, batch).Return(nil).Once()
	inner.On("SaveMany", ctx, batch).Return(errors.New("connection reset")).Once()
	c := NewCachedRepository(inner, 10, time.Minute)

	require.NoError(t, c.SaveMany(ctx, batch))
	assert.Equal(t, 2, c.Len())

	require.Error(t, c.SaveMany(ctx, batch))
	assert.Zero(t, c.Len())
}

func TestCachedRepository_InvalidateAndVersion(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	inner.On("Load", ctx, "a").Return(snapshot("a", 7), nil)
	c := NewCachedRepository(inner, 10, time.Minute)

	_, err := c.Load(ctx, "a")
	require.NoError(t, err)
	c.Invalidate("a")
	_, err = c.Load(ctx, "a")
	require.NoError(t, err)
	inner.AssertNumberOfCalls(t, "Load", 2)

	c.lru.Add("a", &cachedSnapshot{Version: "0", Snapshot: snapshot("a", 999)})
	got, err := c.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Gold, "stale schema versions are reloaded")
	inner.AssertNumberOfCalls(t, "Load", 3)
}

func TestCachedRepository_Expires(t *testing.T) {
	ctx := context.Background()
	inner := new(repository.MockCharacter)
	inner.On("Load", ctx, "a").Return(snapshot("a", 1), nil)
	c := NewCachedRepository(inner, 10, 20*time.Millisecond)

	_, err := c.Load(ctx, "a")
	require.NoError(t, err)
	assert.Eventually(t, func() bool { return c.Len() == 0 }, time.Second, 10*time.Millisecond)
}
