package postgres

// CacheSchemaVersion tags cached snapshots. Bump it when the snapshot shape
// changes so stale entries are dropped on read.
const CacheSchemaVersion = "1"

// Error messages
const (
	ErrMsgFailedToLoadCharacter  = "failed to load character"
	ErrMsgFailedToSaveCharacter  = "failed to save character"
	ErrMsgFailedToEncodeSnapshot = "failed to encode snapshot"
	ErrMsgFailedToDecodeSnapshot = "failed to decode snapshot"
	ErrMsgFailedToBeginTx        = "failed to begin transaction"
	ErrMsgFailedToCommitTx       = "failed to commit transaction"
	ErrMsgFailedToEncodeEvent    = "failed to encode event payload"
	ErrMsgFailedToLogEvents      = "failed to write event log"
	ErrMsgFailedToQueryEvents    = "failed to query event log"
	ErrMsgFailedToCleanupEvents  = "failed to clean up event log"
)

// Log messages
const (
	LogMsgFailedToRollback = "Failed to rollback transaction"
	LogMsgSnapshotsSaved   = "Saved character snapshots"
)
