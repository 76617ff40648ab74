package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T, level string, format OutputFormat, fn func()) string {
	t.Helper()
	buf := &bytes.Buffer{}
	SetTestOutput(buf)
	defer UnsetTestOutput()

	logger = nil
	InitLogger(level, format)
	t.Cleanup(func() { logger = nil })

	fn()

	return buf.String()
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logFn    func()
		contains []string
		excludes []string
	}{
		{
			name:     "info log",
			level:    "info",
			logFn:    func() { Info("launched command") },
			contains: []string{"launched command"},
		},
		{
			name:     "debug log with debug level",
			level:    "debug",
			logFn:    func() { Debug("manifest read") },
			contains: []string{"manifest read", "level=DEBUG"},
		},
		{
			name:     "debug log with info level",
			level:    "info",
			logFn:    func() { Debug("manifest read") },
			excludes: []string{"manifest read"},
		},
		{
			name:     "error log",
			level:    "error",
			logFn:    func() { Error("launch failed") },
			contains: []string{"launch failed", "level=ERROR"},
		},
		{
			name:     "warn log with fields",
			level:    "warn",
			logFn:    func() { Warn("registry retry", Fields{"package": "test-package", "attempt": 2}) },
			contains: []string{"registry retry", "level=WARN", "package=test-package", "attempt=2"},
		},
		{
			name:     "success log",
			level:    "info",
			logFn:    func() { Success("operation completed") },
			contains: []string{"operation completed", "status=success"},
		},
		{
			name:     "formatted info log",
			level:    "info",
			logFn:    func() { Infof("listening on %s", ":3000") },
			contains: []string{"listening on :3000"},
		},
		{
			name:     "formatted debug with fields",
			level:    "debug",
			logFn:    func() { DebugfWithFields(Fields{"mode": "install"}, "poll %d", 1) },
			contains: []string{"poll 1", "mode=install"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureOutput(t, tt.level, FormatText, tt.logFn)
			for _, want := range tt.contains {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.excludes {
				assert.NotContains(t, output, notWant)
			}
		})
	}
}

func TestLogger_JSONFormat(t *testing.T) {
	output := captureOutput(t, "info", FormatJSON, func() {
		Info("status poll", Fields{"status": "processing"})
	})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(output)), &entry))
	assert.Equal(t, "status poll", entry["msg"])
	assert.Equal(t, "processing", entry["status"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
