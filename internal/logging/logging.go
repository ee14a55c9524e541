/*
NAME
  logging.go

DESCRIPTION
  logging.go builds the structured logger used by cmd/aprsd and
  cmd/aprsctl. Core codec packages (codec/ax25, codec/afsk, codec/aprs)
  never log; only the command-layer glue does, mirroring the teacher's
  separation of pure codec code from its Logger-threaded pipeline code.

LICENSE
  Released under the MIT License as part of the aprsafsk project.
*/

// Package logging configures the process-wide structured logger.
package logging

import (
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// New builds a *slog.Logger with a tint handler for colourised,
// human-readable console output at the given level; use
// LevelFromString to turn a level name into a slog.Level.
func New(level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
	}))
}

// LevelFromString parses a case-insensitive log level name ("debug",
// "info", "warn", "error"), defaulting to slog.LevelInfo for anything
// else.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
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
