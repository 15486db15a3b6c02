package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestLogOutputFollowsRotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalogd.log")
	logs := &logOutput{path: path}
	defer logs.Close()

	logger := logs.Open(slog.LevelInfo)
	logger.Info("before rotation")

	rotated := filepath.Join(dir, "catalogd.log.1")
	if err := os.Rename(path, rotated); err != nil {
		t.Fatalf("failed to rotate log file: %v", err)
	}

	logger, ok := logs.Reopen(slog.LevelInfo)
	if !ok {
		t.Fatalf("expected reopen to act on a file-backed output")
	}
	logger.Info("after rotation")

	fresh, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected new log file after reopen: %v", err)
	}
	if !strings.Contains(string(fresh), "after rotation") {
		t.Fatalf("new file missing post-rotation record: %s", fresh)
	}
	if strings.Contains(string(fresh), "before rotation") {
		t.Fatalf("new file contains pre-rotation record: %s", fresh)
	}

	old, err := os.ReadFile(rotated)
	if err != nil {
		t.Fatalf("failed to read rotated file: %v", err)
	}
	if !strings.Contains(string(old), "before rotation") {
		t.Fatalf("rotated file missing pre-rotation record: %s", old)
	}
}

func TestLogOutputStderrFallbackSkipsReopen(t *testing.T) {
	logs := &logOutput{}
	defer logs.Close()

	if logger := logs.Open(slog.LevelInfo); logger == nil {
		t.Fatalf("expected stderr logger")
	}
	if _, ok := logs.Reopen(slog.LevelInfo); ok {
		t.Fatalf("expected reopen to be a no-op without a log file")
	}
}

func TestLogOutputReopenDuringLoggingIsSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogd.log")
	logs := &logOutput{path: path}
	defer logs.Close()

	logs.Open(slog.LevelInfo)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if logger, ok := logs.Reopen(slog.LevelInfo); ok {
					logger.Info("record after reopen")
				}
			}
		}()
	}
	wg.Wait()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist after concurrent reopens: %v", err)
	}
}
