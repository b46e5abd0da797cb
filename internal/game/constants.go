package game

// Log messages
const (
	LogMsgLogin            = "Character logged in"
	LogMsgNewCharacter     = "Created new character"
	LogMsgLogout           = "Character logged out"
	LogMsgSnapshotRepaired = "Snapshot repaired on load, dropped items"
	LogMsgLogoutSaveFailed = "Failed to save character on logout, restoring it"
	LogMsgAutosave         = "Autosave completed"
	LogMsgAutosaveFailed   = "Autosave failed"
	LogMsgShuttingDown     = "Game service shutting down, saving characters"
)

// Error messages
const (
	ErrMsgLoadFailed     = "failed to load character"
	ErrMsgSaveFailed     = "failed to save character"
	ErrMsgAutosaveFailed = "autosave failed"
)
