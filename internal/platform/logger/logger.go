package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LoggerConfig holds the settings needed to build the application logger.
type LoggerConfig struct {
	// Level is one of debug, info, warn, error (case-insensitive).
	Level string
	// Output receives the JSON log lines. Defaults to os.Stdout.
	Output io.Writer
}

type contextKey struct{}

// ParseLevel converts a textual level into a slog.Level.
// The second return value is false for unrecognized input, in which case
// slog.LevelInfo is returned.
func ParseLevel(level string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Setup creates a structured JSON logger at the configured level and sets it
// as the process default. An invalid level falls back to info with a warning.
func Setup(cfg LoggerConfig) (*slog.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	level, ok := ParseLevel(cfg.Level)

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level})
	l := slog.New(handler)

	if !ok {
		l.Warn("invalid log level configured, using default level",
			"configured_level", cfg.Level,
			"default_level", "info")
	}

	slog.SetDefault(l)
	return l, nil
}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the logger stored in ctx, or slog.Default() if none.
func FromContext(ctx context.Context) *slog.Logger {
	return FromContextOrDefault(ctx, slog.Default())
}

// FromContextOrDefault returns the logger stored in ctx, or fallback if none.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	if fallback == nil {
		return slog.Default()
	}
	return fallback
}
