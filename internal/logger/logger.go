// Package logger configures the process-wide slog logger and carries the
// request and character ids through contexts.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey   ctxKey = ContextKeyRequestID
	characterIDKey ctxKey = ContextKeyCharacterID
)

// Init installs the default logger writing to stdout.
func Init(cfg Config) *slog.Logger {
	return InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter installs the default logger writing to w.
func InitWithWriter(cfg Config, w io.Writer) *slog.Logger {
	opts := cfg.HandlerOptions()

	var h slog.Handler
	if cfg.IsJSON() {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	attrs := cfg.BaseAttributes()
	args := make([]any, 0, len(attrs))
	for _, a := range attrs {
		args = append(args, a)
	}

	l := slog.New(h).With(args...)
	slog.SetDefault(l)
	return l
}

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// WithCharacterID tags the context with the character a request acts on.
func WithCharacterID(ctx context.Context, characterID string) context.Context {
	return context.WithValue(ctx, characterIDKey, characterID)
}

// CharacterIDFromContext extracts the character ID from the context, if present.
func CharacterIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(characterIDKey).(string)
	return id, ok
}

// FromContext returns the default logger with the request_id and
// character_id attributes present in ctx.
func FromContext(ctx context.Context) *slog.Logger {
	l := slog.Default()
	if id, ok := RequestIDFromContext(ctx); ok {
		l = l.With(AttrKeyRequestID, id)
	}
	if id, ok := CharacterIDFromContext(ctx); ok {
		l = l.With(AttrKeyCharacterID, id)
	}
	return l
}

// Debug logs at debug level on the default logger.
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger.
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger.
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger.
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }
