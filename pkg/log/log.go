// Package log configures the process wide slog logger.
package log

import (
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a level name to a slog level, info when unknown.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func Setup(logLevel string) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(logLevel),
	})))
}

func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
