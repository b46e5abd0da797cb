package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Holmiboii/ummorpg/internal/domain"
)

// Type represents the type of an event
type Type string

// Event types published by the simulation
const (
	EntityDied         Type = domain.EventTypeEntityDied
	EntityRespawned    Type = domain.EventTypeEntityRespawned
	LevelUp            Type = domain.EventTypeLevelUp
	TradeCompleted     Type = domain.EventTypeTradeCompleted
	TradeAborted       Type = domain.EventTypeTradeAborted
	ItemCrafted        Type = domain.EventTypeItemCrafted
	QuestCompleted     Type = domain.EventTypeQuestCompleted
	EquipmentChanged   Type = domain.EventTypeEquipmentChanged
	InvariantViolation Type = domain.EventTypeInvariantViolation
)

// AllTypes lists every event type the simulation publishes.
var AllTypes = []Type{
	EntityDied, EntityRespawned, LevelUp, TradeCompleted, TradeAborted,
	ItemCrafted, QuestCompleted, EquipmentChanged, InvariantViolation,
}

// Event represents a generic event in the system
type Event struct {
	ID        string    `json:"id"`
	Version   string    `json:"version"`
	Type      Type      `json:"type"`
	EntityID  string    `json:"entity_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// New creates an event about entityID at the given instant.
func New(eventType Type, entityID string, at time.Time, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Version:   EventSchemaVersion,
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: at,
		Payload:   payload,
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber of the event type synchronously and joins
// their errors.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrFmtHandlerErrors, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
