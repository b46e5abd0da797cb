package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/eventlog"
	"github.com/Holmiboii/ummorpg/internal/metrics"
	"github.com/Holmiboii/ummorpg/internal/sse"
)

// InitializeEventSystem creates the in-memory bus and the resilient publisher
// the world publishes through. Failed deliveries are retried with backoff and
// end up in the dead-letter file.
func InitializeEventSystem(clock clockwork.Clock, deadLetterPath string) (*event.ResilientPublisher, error) {
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}
	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	switch pending, err := event.ReadDeadLetters(deadLetterPath); {
	case err != nil:
		slog.Warn(LogMsgDeadLetterUnreadable, "path", deadLetterPath, "error", err)
	case len(pending) > 0:
		slog.Warn(LogMsgDeadLettersPending, "count", len(pending), "path", deadLetterPath)
	}

	publisher, err := event.NewResilientPublisher(event.NewMemoryBus(), event.ResilientConfig{
		MaxRetries:     EventDefaultMaxRetries,
		RetryDelay:     EventDefaultRetryDelay,
		DeadLetterPath: deadLetterPath,
	}, clock)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventDefaultMaxRetries,
		"retry_delay", EventDefaultRetryDelay,
		"deadletter_path", deadLetterPath)
	return publisher, nil
}

// RegisterEventHandlers subscribes the metrics collector, the event stream
// hub and the event log to the bus.
func RegisterEventHandlers(ctx context.Context, bus event.Bus, hub *sse.Hub, log eventlog.Service) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, bus).Subscribe(ctx)
	slog.Info(LogMsgEventStreamInitialized)

	log.Subscribe(bus)
	slog.Info(LogMsgEventLoggerInitialized, "types", eventlog.LoggedTypes)
}
