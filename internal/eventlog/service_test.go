package eventlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/metrics"
	"github.com/Holmiboii/ummorpg/internal/testing/leaktest"
)

func capture(repo *MockRepository) chan []event.Event {
	written := make(chan []event.Event, 16)
	repo.On("LogEvents", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		written <- args.Get(1).([]event.Event)
	}).Return(nil)
	return written
}

func receive(t *testing.T, ch chan []event.Event) []event.Event {
	t.Helper()
	select {
	case batch := <-ch:
		return batch
	case <-time.After(2 * time.Second):
		t.Fatal("no batch written")
		return nil
	}
}

func TestService_Subscribe(t *testing.T) {
	repo := new(MockRepository)
	written := capture(repo)
	clock := clockwork.NewFakeClock()
	svc := NewService(repo, clock, Config{BatchSize: 2})
	bus := event.NewMemoryBus()
	svc.Subscribe(bus)
	svc.Start(context.Background())
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.New(event.EquipmentChanged, "p", clock.Now(), nil)))
	require.NoError(t, bus.Publish(ctx, event.New(event.LevelUp, "p", clock.Now(), nil)))
	require.NoError(t, bus.Publish(ctx, event.New(event.EntityDied, "m", clock.Now(), nil)))

	batch := receive(t, written)
	require.Len(t, batch, 2, "full batch flushes without waiting for the ticker")
	assert.Equal(t, event.LevelUp, batch[0].Type)
	assert.Equal(t, event.EntityDied, batch[1].Type)
}

func TestService_FlushOnInterval(t *testing.T) {
	repo := new(MockRepository)
	written := capture(repo)
	clock := clockwork.NewFakeClock()
	svc := NewService(repo, clock, Config{BatchSize: 10, FlushInterval: time.Second})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	svc.Start(ctx)
	t.Cleanup(func() { _ = svc.Shutdown(context.Background()) })
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	hooks := svc.(*service)
	require.NoError(t, hooks.handleEvent(ctx, event.New(event.QuestCompleted, "p", clock.Now(), nil)))
	require.Eventually(t, func() bool { return len(hooks.queue) == 0 }, time.Second, 5*time.Millisecond)

	clock.Advance(time.Second)
	batch := receive(t, written)
	assert.Len(t, batch, 1)
}

func TestService_ShutdownDrains(t *testing.T) {
	repo := new(MockRepository)
	written := capture(repo)
	checker := leaktest.NewGoroutineChecker(t)
	svc := NewService(repo, clockwork.NewFakeClock(), Config{BatchSize: 100})
	svc.Start(context.Background())

	ctx := context.Background()
	s := svc.(*service)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.handleEvent(ctx, event.New(event.TradeCompleted, "p", time.Now(), nil)))
	}
	require.NoError(t, svc.Shutdown(ctx))
	require.NoError(t, svc.Shutdown(ctx), "second shutdown is a no-op")
	checker.Check(0)

	var total int
	for len(written) > 0 {
		total += len(<-written)
	}
	assert.Equal(t, 3, total)
}

func TestService_DropsWhenBufferFull(t *testing.T) {
	repo := new(MockRepository)
	svc := NewService(repo, clockwork.NewFakeClock(), Config{BufferSize: 1}).(*service)

	dropped := metrics.EventLogDropped.WithLabelValues(string(event.LevelUp))
	before := testutil.ToFloat64(dropped)

	ctx := context.Background()
	require.NoError(t, svc.handleEvent(ctx, event.New(event.LevelUp, "p", time.Now(), nil)))
	require.NoError(t, svc.handleEvent(ctx, event.New(event.LevelUp, "p", time.Now(), nil)), "dropping is not an error")
	assert.Len(t, svc.queue, 1)
	assert.Equal(t, before+1, testutil.ToFloat64(dropped))
}

func TestService_WriteFailureKeepsRunning(t *testing.T) {
	repo := new(MockRepository)
	calls := make(chan struct{}, 4)
	repo.On("LogEvents", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		calls <- struct{}{}
	}).Return(errors.New("db down"))
	svc := NewService(repo, clockwork.NewFakeClock(), Config{BatchSize: 1})
	svc.Start(context.Background())

	ctx := context.Background()
	s := svc.(*service)
	require.NoError(t, s.handleEvent(ctx, event.New(event.LevelUp, "p", time.Now(), nil)))
	require.NoError(t, s.handleEvent(ctx, event.New(event.LevelUp, "p", time.Now(), nil)))
	require.NoError(t, svc.Shutdown(ctx))
	assert.Len(t, calls, 2)
}

func TestService_Events(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default", 0, DefaultQueryLimit},
		{"explicit", 7, 7},
		{"clamped", 10_000, MaxQueryLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			repo.On("GetEvents", mock.Anything, Filter{EntityID: "p", Limit: tt.want}).Return([]Record{{ID: 1}}, nil)
			svc := NewService(repo, clockwork.NewFakeClock(), Config{})

			records, err := svc.Events(context.Background(), Filter{EntityID: "p", Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, records, 1)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_CleanupOldEvents(t *testing.T) {
	repo := new(MockRepository)
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	svc := NewService(repo, clock, Config{Retention: 24 * time.Hour})
	repo.On("CleanupOldEvents", mock.Anything, time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)).Return(int64(5), nil)

	count, err := svc.CleanupOldEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	repo.AssertExpectations(t)
}
