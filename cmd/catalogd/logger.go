package main

import (
	"log/slog"
	"os"
	"sync"
)

// logOutput owns the daemon's log destination and supports reopening it
// after external rotation. All state is guarded by mu so a SIGHUP during
// startup cannot race the initial open.
type logOutput struct {
	mu   sync.Mutex
	path string
	file *os.File
}

// Open returns a JSON logger writing to the configured file, falling back
// to stderr when no path is set or the file cannot be opened.
func (lo *logOutput) Open(level slog.Leveler) *slog.Logger {
	lo.mu.Lock()
	defer lo.mu.Unlock()
	return lo.openLocked(level)
}

// Reopen closes the current file and opens the same path again, picking up
// external rotation. A stderr-only output reports false and is left alone.
func (lo *logOutput) Reopen(level slog.Leveler) (*slog.Logger, bool) {
	lo.mu.Lock()
	defer lo.mu.Unlock()
	if lo.file == nil {
		return nil, false
	}
	_ = lo.file.Close()
	lo.file = nil
	return lo.openLocked(level), true
}

// Close releases the log file if one is open.
func (lo *logOutput) Close() {
	lo.mu.Lock()
	defer lo.mu.Unlock()
	if lo.file != nil {
		_ = lo.file.Close()
		lo.file = nil
	}
}

func (lo *logOutput) openLocked(level slog.Leveler) *slog.Logger {
	if lo.path == "" {
		return stderrLogger(level)
	}
	f, err := os.OpenFile(lo.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return stderrLogger(level)
	}
	lo.file = f
	h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("app", "catalogd"))
}

func stderrLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With(slog.String("app", "catalogd"))
}

func parseLevel(s string, def slog.Level) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return def
	}
}
