package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Character errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgAlreadyOnline     = "character already online"
	ErrMsgNotOnline         = "character not online"

	// Template errors
	ErrMsgTemplateNotFound = "template not found"

	// Command errors
	ErrMsgUnknownCommand = "unknown command"
	ErrMsgInvalidInput   = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrAlreadyOnline     = errors.New(ErrMsgAlreadyOnline)
	ErrNotOnline         = errors.New(ErrMsgNotOnline)

	ErrTemplateNotFound = errors.New(ErrMsgTemplateNotFound)

	ErrUnknownCommand = errors.New(ErrMsgUnknownCommand)
	ErrInvalidInput   = errors.New(ErrMsgInvalidInput)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
