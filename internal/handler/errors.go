package handler

// Client-facing error messages. They never carry internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidCharacterID    = "Invalid character id"
	ErrMsgUnknownCommand        = "Unknown command kind"
	ErrMsgCharacterNotFound     = "Character not found"
	ErrMsgAlreadyOnline         = "Character is already online"
	ErrMsgNotOnline             = "Character is not online"
	ErrMsgServerBusy            = "Server is busy. Please try again."
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgInvalidLimit          = "limit must be a positive integer"
	ErrMsgUnknownEventType      = "Unknown event type"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgServiceError     = "Service call failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgCommandSubmitted = "Command queued"
)
