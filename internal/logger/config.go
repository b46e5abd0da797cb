package logger

import (
	"log/slog"
	"strings"
)

// Config describes how the process logs. Every line carries the service,
// version and environment attributes.
type Config struct {
	Level       string
	Format      string
	ServiceName string
	Version     string
	Environment string
	AddSource   bool
}

// NewConfig creates a config from the application settings
func NewConfig(level, format, serviceName, version, environment string, addSource bool) Config {
	return Config{
		Level:       level,
		Format:      format,
		ServiceName: serviceName,
		Version:     version,
		Environment: environment,
		AddSource:   addSource,
	}
}

// LogLevel parses Level. "warning" is accepted for warn and anything
// unparseable logs at info.
func (c Config) LogLevel() slog.Level {
	level := strings.ToLower(strings.TrimSpace(c.Level))
	if level == LogLevelWarning {
		level = LogLevelWarn
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsJSON reports whether lines are written as JSON rather than text
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, LogFormatJSON)
}

// BaseAttributes are attached to every line. A blank version logs as
// DefaultVersion.
func (c Config) BaseAttributes() []slog.Attr {
	version := c.Version
	if version == "" {
		version = DefaultVersion
	}
	return []slog.Attr{
		slog.String(AttrKeyService, c.ServiceName),
		slog.String(AttrKeyVersion, version),
		slog.String(AttrKeyEnvironment, c.Environment),
	}
}

// HandlerOptions builds the slog handler options: level, source and the
// redaction of secret-bearing attributes.
func (c Config) HandlerOptions() *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level:       c.LogLevel(),
		AddSource:   c.AddSource,
		ReplaceAttr: redactSecrets,
	}
}

func redactSecrets(_ []string, a slog.Attr) slog.Attr {
	if _, ok := secretAttrKeys[strings.ToLower(a.Key)]; ok {
		return slog.String(a.Key, RedactedValue)
	}
	return a
}
