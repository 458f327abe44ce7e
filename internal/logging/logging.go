// Package logging configures the process-wide slog logger.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	console "github.com/phsym/console-slog"
)

const (
	// LevelTrace sits below debug and is used for per-window decisions that
	// are too noisy for normal debugging.
	LevelTrace = slog.LevelDebug - 4
	// LevelOff is above every level the program logs at.
	LevelOff = slog.LevelError + 100
)

var levelNames = map[string]slog.Level{
	"off":   LevelOff,
	"error": slog.LevelError,
	"warn":  slog.LevelWarn,
	"info":  slog.LevelInfo,
	"debug": slog.LevelDebug,
	"trace": LevelTrace,
}

// ParseLevel converts a level name into an slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "warning" {
		name = "warn"
	}
	if lvl, ok := levelNames[name]; ok {
		return lvl, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (valid: off, error, warn, info, debug, trace)", s)
}

// New returns a console logger writing to w.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(console.NewHandler(w, &console.HandlerOptions{
		Level:   level,
		NoColor: !color,
	}))
}

// Trace logs at LevelTrace.
func Trace(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelTrace, msg, args...)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
