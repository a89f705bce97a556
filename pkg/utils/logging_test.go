package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l := NewLogger(LogOptions{File: path, Level: "debug"})
	l.Debug("tree fitted")
	_ = l.Sync()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"msg":"tree fitted"`) {
		t.Fatalf("log file missing entry: %s", b)
	}
}

func TestNewLoggerLevelFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewLogger(LogOptions{File: path, Level: "warn", MaxSizeMB: 1, MaxBackups: 2})
	l.Info("hidden")
	l.Warn("shown")
	_ = l.Sync()
	b, _ := os.ReadFile(path)
	if strings.Contains(string(b), "hidden") || !strings.Contains(string(b), "shown") {
		t.Fatalf("level filter not applied: %s", b)
	}
}

func TestNewLoggerStdoutOnly(t *testing.T) {
	l := NewLogger(LogOptions{Level: "not-a-level"})
	if !l.Core().Enabled(zapcore.InfoLevel) || l.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("unknown level should fall back to info")
	}
}
