package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{" WaRn ", slog.LevelWarn},
		{"invalid", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, LevelFromString(tc.input))
		})
	}
}

func TestNew_RespectsLevelAndDisablesColour(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, slog.LevelWarn)

	logger.Info("hidden")
	logger.Warn("submission failed", "kind", "status")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "submission failed")
	assert.Contains(t, out, "kind=status")
	assert.NotContains(t, out, "\x1b[")
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "skillx.log")

	logger, closer, err := OpenFile(path, slog.LevelDebug)
	require.NoError(t, err)
	logger.Debug("hello", "seq", 1)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
}

func TestOpenFile_EmptyPathDiscards(t *testing.T) {
	logger, closer, err := OpenFile("", slog.LevelDebug)
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Error("nobody hears this")
	assert.NoError(t, closer.Close())
}
