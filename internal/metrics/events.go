package metrics

import (
	"context"

	"github.com/Holmiboii/ummorpg/internal/domain"
	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all event types the simulation publishes
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.AllTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch p := evt.Payload.(type) {
	case domain.TradePayload:
		// Both parties publish; count the session once.
		if p.EntityID > p.OtherID {
			break
		}
		if evt.Type == event.TradeCompleted {
			Trades.WithLabelValues(ResultCompleted).Inc()
		} else {
			Trades.WithLabelValues(ResultAborted).Inc()
		}
	case domain.ItemCraftedPayload:
		Crafts.WithLabelValues(p.Result).Inc()
	case domain.QuestCompletedPayload:
		QuestsCompleted.WithLabelValues(p.Quest).Inc()
	case domain.InvariantViolationPayload:
		InvariantViolations.WithLabelValues(p.Component).Inc()
	case domain.EntityDiedPayload, domain.EntityRespawnedPayload, domain.LevelUpPayload, domain.EquipmentChangedPayload:
	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
