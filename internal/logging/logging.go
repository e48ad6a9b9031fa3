// Package logging builds the slog loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// DefaultLevel is used when a level string is not recognised.
var DefaultLevel = slog.LevelInfo

// LevelFromString converts a level name to a slog.Level.
func LevelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

// New returns a tint logger writing to w. Colour is enabled only when w is a
// terminal.
func New(w io.Writer, level slog.Level) *slog.Logger {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		NoColor:    noColor,
		TimeFormat: time.Kitchen,
		Level:      level,
	}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenFile returns a logger appending to path, creating parent directories
// as needed. The caller closes the returned file.
func OpenFile(path string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return New(f, level), f, nil
}
