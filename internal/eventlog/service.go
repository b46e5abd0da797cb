// Package eventlog keeps an audit trail of simulation events in the database.
// Events are buffered and written in batches off the step path.
package eventlog

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/event"
	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/metrics"
)

// LoggedTypes are the event types kept in the audit trail. Equipment changes
// are streamed to clients but not stored.
var LoggedTypes = []event.Type{
	event.EntityDied,
	event.EntityRespawned,
	event.LevelUp,
	event.TradeCompleted,
	event.TradeAborted,
	event.ItemCrafted,
	event.QuestCompleted,
	event.InvariantViolation,
}

// Service handles event logging business logic
type Service interface {
	// Subscribe registers the event logger on the bus
	Subscribe(bus event.Bus)

	// Start runs the background writer
	Start(ctx context.Context)

	// Events queries stored events
	Events(ctx context.Context, filter Filter) ([]Record, error)

	// CleanupOldEvents removes events older than the retention period
	CleanupOldEvents(ctx context.Context) (int64, error)

	// Shutdown flushes buffered events and stops the writer
	Shutdown(ctx context.Context) error
}

// Config tunes retention and the buffered writer
type Config struct {
	Retention     time.Duration
	BufferSize    int
	BatchSize     int
	FlushInterval time.Duration
}

type service struct {
	repo      Repository
	clock     clockwork.Clock
	cfg       Config
	queue     chan event.Event
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewService creates a new event logging service
func NewService(repo Repository, clock clockwork.Clock, cfg Config) Service {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultBufferSize
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	return &service{
		repo:  repo,
		clock: clock,
		cfg:   cfg,
		queue: make(chan event.Event, cfg.BufferSize),
		done:  make(chan struct{}),
	}
}

func (s *service) Subscribe(bus event.Bus) {
	for _, t := range LoggedTypes {
		bus.Subscribe(t, s.handleEvent)
	}
}

// handleEvent buffers the event. It never fails, so a slow database cannot
// make the publisher retry.
func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	select {
	case s.queue <- evt:
	default:
		metrics.EventLogDropped.WithLabelValues(string(evt.Type)).Inc()
		logger.FromContext(ctx).Warn(LogMsgEventDropped, "type", evt.Type, "entity_id", evt.EntityID)
	}
	return nil
}

func (s *service) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.run(context.WithoutCancel(ctx))
}

func (s *service) run(ctx context.Context) {
	defer s.wg.Done()
	ticker := s.clock.NewTicker(s.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]event.Event, 0, s.cfg.BatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		log := logger.FromContext(ctx)
		if err := s.repo.LogEvents(ctx, batch); err != nil {
			log.Error(LogMsgFailedToLogEvent, "count", len(batch), "error", err)
		} else {
			log.Debug(LogMsgEventsLogged, "count", len(batch))
		}
		batch = make([]event.Event, 0, s.cfg.BatchSize)
	}

	for {
		select {
		case evt := <-s.queue:
			batch = append(batch, evt)
			if len(batch) >= s.cfg.BatchSize {
				flush()
			}
		case <-ticker.Chan():
			flush()
		case <-s.done:
			for {
				select {
				case evt := <-s.queue:
					batch = append(batch, evt)
				default:
					flush()
					return
				}
			}
		}
	}
}

func (s *service) Events(ctx context.Context, filter Filter) ([]Record, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultQueryLimit
	}
	if filter.Limit > MaxQueryLimit {
		filter.Limit = MaxQueryLimit
	}
	return s.repo.GetEvents(ctx, filter)
}

func (s *service) CleanupOldEvents(ctx context.Context) (int64, error) {
	return s.repo.CleanupOldEvents(ctx, s.clock.Now().Add(-s.cfg.Retention))
}

func (s *service) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		logger.FromContext(ctx).Warn(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
