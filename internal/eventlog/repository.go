package eventlog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Holmiboii/ummorpg/internal/event"
)

// Record is one stored event
type Record struct {
	ID         int64           `json:"id"`
	EventID    string          `json:"event_id"`
	Type       string          `json:"type"`
	EntityID   string          `json:"entity_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// Filter selects records, newest first. Zero fields match everything.
type Filter struct {
	EntityID string
	Type     event.Type
	Since    time.Time
	Limit    int
}

// Repository defines the interface for event logging storage
type Repository interface {
	// LogEvents stores a batch of events
	LogEvents(ctx context.Context, events []event.Event) error

	// GetEvents retrieves events based on filter criteria
	GetEvents(ctx context.Context, filter Filter) ([]Record, error)

	// CleanupOldEvents removes events that occurred before the cutoff
	CleanupOldEvents(ctx context.Context, before time.Time) (int64, error)
}
