// Package app holds process-level wiring: configuration loaded from the
// environment and the shared logger.
package app

import (
	"log/slog"
	"os"
)

// NewLogger returns the process logger: JSON at INFO for prod, text at DEBUG
// everywhere else.
func NewLogger(env string) *slog.Logger {
	var handler slog.Handler
	if env == "prod" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return slog.New(handler).With("service", "chat-backend")
}
