package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func fileLogger(t *testing.T, lvl string) string {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "meshlab.log")
	cfg := FileConfig{
		Path:       logFile,
		MaxSizeMB:  10,
		MaxBackups: 1,
		MaxAgeDays: 1,
	}
	if err := InitWithFileConfig(lvl, cfg, false); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return logFile
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	Sync()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(content)
}

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{
			level:    "error",
			expected: []string{"ERROR"},
			excluded: []string{"WARN", "INFO", "DEBUG"},
		},
		{
			level:    "warn",
			expected: []string{"ERROR", "WARN"},
			excluded: []string{"INFO", "DEBUG"},
		},
		{
			level:    "info",
			expected: []string{"ERROR", "WARN", "INFO"},
			excluded: []string{"DEBUG"},
		},
		{
			level:    "debug",
			expected: []string{"ERROR", "WARN", "INFO", "DEBUG"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := fileLogger(t, tt.level)

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")

			logContent := readLog(t, logFile)
			for _, exp := range tt.expected {
				if !strings.Contains(logContent, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(logContent, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	logFile := fileLogger(t, "error")

	Info("before")
	SetLevel("debug")
	if Level() != zapcore.DebugLevel {
		t.Errorf("Level() = %v, want debug", Level())
	}
	Debug("after")

	logContent := readLog(t, logFile)
	if strings.Contains(logContent, "before") {
		t.Error("info message logged while level was error")
	}
	if !strings.Contains(logContent, "after") {
		t.Error("debug message missing after SetLevel(debug)")
	}
}

func TestNamed(t *testing.T) {
	logFile := fileLogger(t, "info")

	Named("paper").Info("force applied", zap.Int("col", 3))

	logContent := readLog(t, logFile)
	for _, want := range []string{"paper", "force applied", "col"} {
		if !strings.Contains(logContent, want) {
			t.Errorf("expected %q in %q", want, logContent)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/meshlab.log")

	if cfg.Path != "/tmp/meshlab.log" {
		t.Errorf("expected path /tmp/meshlab.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 20 {
		t.Errorf("expected MaxSizeMB 20, got %d", cfg.MaxSizeMB)
	}
	if cfg.MaxBackups != 3 {
		t.Errorf("expected MaxBackups 3, got %d", cfg.MaxBackups)
	}
	if !cfg.Compress {
		t.Error("expected Compress to be true")
	}
}
