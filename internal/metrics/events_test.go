package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	completed := testutil.ToFloat64(Trades.WithLabelValues(ResultCompleted))
	crafted := testutil.ToFloat64(Crafts.WithLabelValues("sword"))
	violations := testutil.ToFloat64(InvariantViolations.WithLabelValues("trade"))
	died := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.EntityDied)))

	publish := func(typ event.Type, id string, payload any) {
		require.NoError(t, bus.Publish(ctx, event.New(typ, id, now, payload)))
	}
	publish(event.TradeCompleted, "a", domain.TradePayload{EntityID: "a", OtherID: "b"})
	publish(event.TradeCompleted, "b", domain.TradePayload{EntityID: "b", OtherID: "a"})
	publish(event.ItemCrafted, "a", domain.ItemCraftedPayload{EntityID: "a", Result: "sword"})
	publish(event.InvariantViolation, "a", domain.InvariantViolationPayload{Component: "trade", Detail: "x"})
	publish(event.EntityDied, "a", domain.EntityDiedPayload{EntityID: "a"})

	assert.Equal(t, completed+1, testutil.ToFloat64(Trades.WithLabelValues(ResultCompleted)), "one session, two events")
	assert.Equal(t, crafted+1, testutil.ToFloat64(Crafts.WithLabelValues("sword")))
	assert.Equal(t, violations+1, testutil.ToFloat64(InvariantViolations.WithLabelValues("trade")))
	assert.Equal(t, died+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.EntityDied))))
}
