package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(EntityDied, func(ctx context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	e := New(EntityDied, "p1", at, domain.EntityDiedPayload{EntityID: "p1", ExpLost: 3})
	require.NoError(t, bus.Publish(context.Background(), e))
	require.NoError(t, bus.Publish(context.Background(), New(LevelUp, "p1", at, nil)))

	require.Len(t, got, 1)
	assert.Equal(t, EventSchemaVersion, got[0].Version)
	assert.Equal(t, "p1", got[0].EntityID)
	assert.Equal(t, at, got[0].Timestamp)
	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, domain.EntityDiedPayload{EntityID: "p1", ExpLost: 3}, got[0].Payload)
}

func TestMemoryBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewMemoryBus()
	count := 0
	handler := func(ctx context.Context, e Event) error {
		count++
		return nil
	}
	bus.Subscribe(TradeCompleted, handler)
	bus.Subscribe(TradeCompleted, handler)

	require.NoError(t, bus.Publish(context.Background(), Event{Type: TradeCompleted}))
	assert.Equal(t, 2, count)
}

func TestMemoryBus_PublishError(t *testing.T) {
	bus := NewMemoryBus()
	called := false
	bus.Subscribe(ItemCrafted, func(ctx context.Context, e Event) error {
		return errors.New("handler error")
	})
	bus.Subscribe(ItemCrafted, func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), Event{Type: ItemCrafted})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "encountered 1 errors")
	assert.True(t, called, "a failing handler does not stop the others")
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a := New(QuestCompleted, "p", time.Time{}, nil)
	b := New(QuestCompleted, "p", time.Time{}, nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(RetryInitialDelay, 1))
	assert.Equal(t, 8*time.Second, CalculateRetryDelay(RetryInitialDelay, 3))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(RetryInitialDelay, 5))
}
