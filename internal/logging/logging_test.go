package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewWritesJSONLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := New(Config{Level: "debug", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Debug("lesson selected", zap.String("lesson", "lesson-intro"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	line := strings.TrimSpace(string(data))
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("log line is not JSON: %q", line)
	}
	if entry["msg"] != "lesson selected" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["lesson"] != "lesson-intro" {
		t.Errorf("lesson = %v", entry["lesson"])
	}
	if entry["level"] != "debug" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	logger, err := New(Config{Level: "warn", Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") {
		t.Error("info line written at warn level")
	}
	if !strings.Contains(string(data), "shown") {
		t.Error("warn line missing")
	}
}

func TestNewBadLevel(t *testing.T) {
	if _, err := New(Config{Level: "loud", Path: filepath.Join(t.TempDir(), "x.log")}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNewDisabled(t *testing.T) {
	logger, err := New(Config{Disabled: true, Path: "/nonexistent/dir/x.log"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("disabled logger should not be enabled")
	}
}

func TestDefaultLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)
	got, err := DefaultLogPath()
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "mathflow", "mathflow.log")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}
