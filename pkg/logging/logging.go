// Package logging writes quest logs to <data dir>/logs/quest.log.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the log file inside the logs directory.
const FileName = "quest.log"

// ParseLevel parses a level name, defaulting to info.
func ParseLevel(s string) slog.Level {
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

// New opens the log file under dataDir and returns a logger writing to it.
// The caller closes the returned io.Closer.
func New(dataDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	logsDir := filepath.Join(dataDir, "logs")
	if err := os.MkdirAll(logsDir, 0o750); err != nil {
		return nil, nil, fmt.Errorf("create logs directory: %w", err)
	}

	path := filepath.Join(logsDir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // log file readable by owner and group
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter returns a text logger writing to w.
func NewWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return NewWriter(io.Discard, slog.LevelError)
}
