package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
)

var eventLogColumns = []string{"event_id", "event_type", "entity_id", "payload", "occurred_at"}

// EventLogRepository implements eventlog.Repository for PostgreSQL
type EventLogRepository struct {
	db *pgxpool.Pool
}

// NewEventLogRepository creates a new PostgreSQL event log repository
func NewEventLogRepository(db *pgxpool.Pool) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// LogEvents bulk-inserts the batch with COPY.
func (r *EventLogRepository) LogEvents(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(events))
	for _, evt := range events {
		var payload []byte
		if evt.Payload != nil {
			raw, err := json.Marshal(evt.Payload)
			if err != nil {
				return fmt.Errorf("%s %s: %w", ErrMsgFailedToEncodeEvent, evt.ID, err)
			}
			payload = raw
		}
		rows = append(rows, []any{evt.ID, string(evt.Type), evt.EntityID, payload, evt.Timestamp})
	}

	if _, err := r.db.CopyFrom(ctx, pgx.Identifier{"event_log"}, eventLogColumns, pgx.CopyFromRows(rows)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLogEvents, err)
	}
	return nil
}

// GetEvents retrieves events based on filter criteria, newest first
func (r *EventLogRepository) GetEvents(ctx context.Context, filter eventlog.Filter) ([]eventlog.Record, error) {
	var query strings.Builder
	query.WriteString(`
		SELECT id, event_id, event_type, entity_id, payload, occurred_at
		FROM event_log
		WHERE 1=1`)

	var args []any
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		fmt.Fprintf(&query, " AND entity_id = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, string(filter.Type))
		fmt.Fprintf(&query, " AND event_type = $%d", len(args))
	}
	if !filter.Since.IsZero() {
		args = append(args, filter.Since)
		fmt.Fprintf(&query, " AND occurred_at >= $%d", len(args))
	}
	query.WriteString(" ORDER BY occurred_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (eventlog.Record, error) {
		var rec eventlog.Record
		var payload []byte
		err := row.Scan(&rec.ID, &rec.EventID, &rec.Type, &rec.EntityID, &payload, &rec.OccurredAt)
		rec.Payload = payload
		return rec, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryEvents, err)
	}
	return records, nil
}

// CleanupOldEvents removes events that occurred before the cutoff
func (r *EventLogRepository) CleanupOldEvents(ctx context.Context, before time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM event_log WHERE occurred_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToCleanupEvents, err)
	}
	return tag.RowsAffected(), nil
}
