package eventlog

import (
	"context"
	"time"

	"github.com/Holmiboii/ummorpg/internal/logger"
)

// CleanupJob deletes events past the retention period
type CleanupJob struct {
	Service Service
}

func (j CleanupJob) Name() string { return JobNameCleanup }

// Process executes the cleanup job
func (j CleanupJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCleanupJobStarting)

	start := time.Now()
	count, err := j.Service.CleanupOldEvents(ctx)
	duration := time.Since(start)

	if err != nil {
		log.Error(LogMsgCleanupJobFailed, "error", err, "duration", duration)
		return err
	}

	log.Info(LogMsgCleanupJobCompleted, "deleted", count, "duration", duration)
	return nil
}
