// Package scheduler enqueues jobs on the worker pool at fixed intervals.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Holmiboii/ummorpg/internal/logger"
	"github.com/Holmiboii/ummorpg/internal/worker"
)

// LogMsgJobSkipped is logged when a tick finds the worker queue full
const LogMsgJobSkipped = "Worker queue full, skipping scheduled run"

// Scheduler manages scheduled jobs
type Scheduler struct {
	workerPool *worker.Pool
	clock      clockwork.Clock
	quit       chan struct{}
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(pool *worker.Pool, clock clockwork.Clock) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		clock:      clock,
		quit:       make(chan struct{}),
	}
}

// Schedule enqueues job every interval until Stop. A tick that finds the
// queue full is skipped rather than blocking, so a slow job is never run
// twice back to back to catch up.
func (s *Scheduler) Schedule(ctx context.Context, interval time.Duration, job worker.Job) {
	ticker := s.clock.NewTicker(interval)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ticker.Chan():
				if !s.workerPool.TryEnqueue(job) {
					logger.FromContext(ctx).Warn(LogMsgJobSkipped, "job", job.Name())
				}
			case <-s.quit:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
