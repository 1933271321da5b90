package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureDefault(t *testing.T, format string) *bytes.Buffer {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var buf bytes.Buffer
	Setup(&buf, "debug", format)
	return &buf
}

func TestErr_WrapsAndLogs(t *testing.T) {
	buf := captureDefault(t, "text")
	sentinel := errors.New("boom")

	err := New("engine").Function("Build").Err("failed to build", sentinel, "department", "Crisis Line")

	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, "failed to build: boom", err.Error())
	assert.Contains(t, buf.String(), "package=engine")
	assert.Contains(t, buf.String(), "function=Build")
	assert.Contains(t, buf.String(), `department="Crisis Line"`)
}

func TestLoggerCreatedBeforeSetup(t *testing.T) {
	log := New("early").File("early_file")
	buf := captureDefault(t, "json")

	log.Info("hello", "count", 2)

	assert.Contains(t, buf.String(), `"package":"early"`)
	assert.Contains(t, buf.String(), `"file":"early_file"`)
	assert.Contains(t, buf.String(), `"count":2`)
}

func TestErrorAndErrMsg(t *testing.T) {
	captureDefault(t, "text")

	assert.EqualError(t, New("x").Error("bad input", "field", "day"), "bad input")
	assert.EqualError(t, New("x").ErrMsg("nil check failed"), "nil check failed")
	assert.EqualError(t, New("x").Err("no cause", nil), "no cause")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}
