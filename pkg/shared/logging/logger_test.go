package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LevelFatal, "FATAL"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.String())
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelFatal},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestSimpleLogger_FiltersAndFormats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("cli", LevelInfo, false, &buf)

	logger.Debug("hidden")
	logger.Info("signed in", "email", "a@example.com")
	logger.Warn("odd args", "dangling")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[cli] INFO: signed in email=a@example.com")
	assert.Contains(t, out, "[cli] WARN: odd args")
}

func TestSimpleLogger_WithModuleSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	root := NewSimpleLoggerWithWriter("cli", LevelWarn, false, &buf)
	child := root.WithModule("session")

	child.Info("before")
	root.SetLevel(LevelDebug)
	child.Debug("after")

	out := buf.String()
	assert.NotContains(t, out, "before")
	assert.Contains(t, out, "[cli/session] DEBUG: after")
}

func TestSimpleLogger_Colors(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSimpleLoggerWithWriter("gateway", LevelDebug, true, &buf)

	logger.Error("boom")

	assert.Contains(t, buf.String(), colorRed+"ERROR"+colorReset)
	assert.Contains(t, buf.String(), colorCyan+"[gateway]"+colorReset)
}

func TestNewLoggerWithFile(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		logger, err := NewLoggerWithFile("test", LevelInfo, false, nil)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("empty path", func(t *testing.T) {
		logger, err := NewLoggerWithFile("test", LevelInfo, false, &FileRotationConfig{})
		require.NoError(t, err)
		assert.NotNil(t, logger)
	})

	t.Run("writes file without colors", func(t *testing.T) {
		logPath := filepath.Join(t.TempDir(), "client.log")

		logger, err := NewLoggerWithFile("test", LevelInfo, true, &FileRotationConfig{
			Path:      logPath,
			MaxSizeMB: 1,
		})
		require.NoError(t, err)

		logger.Info("token refreshed", "user", "42")

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "[test] INFO: token refreshed user=42")
		assert.False(t, strings.Contains(string(data), "\033["), "file output must not contain ANSI codes")
	})
}

func TestTestLogger_WithModule(t *testing.T) {
	logger := NewTestLogger().WithModule("session").WithModule("guard")
	tl, ok := logger.(*TestLogger)
	require.True(t, ok)
	assert.Equal(t, "test/session/guard", tl.module)

	// Silent loggers must not panic without a testing.T
	tl.Info("ignored")
	tl.Fatal("ignored")
}
