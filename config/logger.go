package config

import (
	"io"
	"log/slog"
)

// NewLogger returns a JSON logger in prod and a debug-level text logger
// everywhere else.
func NewLogger(env string, w io.Writer) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
