package validation

import "errors"

// ErrSchemaValidation wraps every document that does not satisfy its schema.
var ErrSchemaValidation = errors.New("schema validation failed")

// Error messages
const (
	ErrMsgLoadSchemaFailed    = "failed to load schema %s: %w"
	ErrMsgReadSchemaFailed    = "failed to read schema: %w"
	ErrMsgParseSchemaFailed   = "failed to parse schema JSON: %w"
	ErrMsgAddResourceFailed   = "failed to add schema resource: %w"
	ErrMsgCompileSchemaFailed = "failed to compile schema: %w"
	ErrMsgParseDataFailed     = "failed to parse JSON data: %w"
)
