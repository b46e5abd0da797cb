package logger

// Context Keys
const (
	ContextKeyRequestID   = "request_id"
	ContextKeyCharacterID = "character_id"
)

// Log Level String Values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log Format String Values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Service Configuration Values
const (
	DefaultVersion = "dev"
)

// RedactedValue replaces the value of any attribute in secretAttrKeys
const RedactedValue = "[REDACTED]"

var secretAttrKeys = map[string]struct{}{
	"api_key":       {},
	"password":      {},
	"db_password":   {},
	"token":         {},
	"authorization": {},
}

// Environment String Values
const (
	EnvironmentDev  = "dev"
	EnvironmentTest = "test"
)

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyCharacterID = "character_id"
)
