// Package logging wires the process-wide slog pipeline: JSON to stdout,
// fanned out to the system_logs table once the database is up.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the global JSON logger before the database is available.
// main swaps in the fanout handler once the Postgres sink exists.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

// NewStdoutHandler returns the JSON stdout handler. The level comes from
// LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: levelFromEnv(),
	})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
