// Package log provides the application's slog setup. Components receive a
// *slog.Logger via their constructors rather than using a package global.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Config controls handler construction.
type Config struct {
	Level slog.Level
}

// New returns a text logger writing to stderr.
func New(cfg Config) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter returns a logger writing to w. Useful in tests to capture
// output.
func NewWithWriter(w io.Writer, cfg Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Level}))
}

// NewNop returns a logger that discards everything.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps a config string to a slog level. Unknown values are an
// error so bad configuration fails at startup.
func ParseLevel(s string) (slog.Level, bool) {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug, true
	case "info", "INFO", "":
		return slog.LevelInfo, true
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, true
	case "error", "ERROR":
		return slog.LevelError, true
	}
	return slog.LevelInfo, false
}
