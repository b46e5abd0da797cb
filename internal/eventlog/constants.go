package eventlog

import "time"

// Defaults for the buffered writer
const (
	DefaultBufferSize    = 1024
	DefaultBatchSize     = 128
	DefaultFlushInterval = time.Second
	DefaultQueryLimit    = 50
	MaxQueryLimit        = 500
)

// JobNameCleanup names the retention job in worker logs
const JobNameCleanup = "eventlog_cleanup"

// Log messages - service events
const (
	LogMsgEventDropped     = "Event log buffer full, dropping event"
	LogMsgFailedToLogEvent = "Failed to write events to the event log"
	LogMsgEventsLogged     = "Events written to the event log"
	LogMsgShutdownTimeout  = "Event log shutdown timed out, buffered events lost"
)

// Log messages - cleanup job
const (
	LogMsgCleanupJobStarting  = "Starting event log cleanup job"
	LogMsgCleanupJobFailed    = "Event log cleanup failed"
	LogMsgCleanupJobCompleted = "Event log cleanup completed"
)
