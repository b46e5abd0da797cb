package sse

import (
	"context"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe forwards every simulation event type to the hub
func (s *Subscriber) Subscribe(ctx context.Context) {
	for _, t := range event.AllTypes {
		s.bus.Subscribe(t, s.forward)
	}
	logger.FromContext(ctx).Info(LogMsgSubscribed, "types", event.AllTypes)
}

func (s *Subscriber) forward(ctx context.Context, evt event.Event) error {
	if !s.hub.Broadcast(evt) {
		logger.FromContext(ctx).Warn(LogMsgBroadcastDropped, "type", evt.Type, "entity_id", evt.EntityID)
	}
	return nil
}
