package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/f3rmion/skillx/internal/match"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, match.DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, match.DefaultTimeout, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.HealthURL)
	assert.Equal(t, filepath.Join(dir, "skillx.log"), cfg.LogFile)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "endpoint: http://matcher.internal:9000/api/match\n" +
		"timeout: 3s\n" +
		"log_level: DEBUG\n" +
		"log_file: /tmp/skillx-test.log\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o600))

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://matcher.internal:9000/api/match", cfg.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/skillx-test.log", cfg.LogFile)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("endpoint: http://from-file/api/match\n"), 0o600))
	t.Setenv("SKILLX_ENDPOINT", "http://from-env:8000/api/match")
	t.Setenv("SKILLX_TIMEOUT", "750ms")

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:8000/api/match", cfg.Endpoint)
	assert.Equal(t, 750*time.Millisecond, cfg.Timeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SKILLX_HEALTH_URL=http://from-dotenv/health\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("SKILLX_HEALTH_URL") })

	cfg, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "http://from-dotenv/health", cfg.HealthURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad endpoint", "endpoint: not a url\n"},
		{"empty endpoint", "endpoint: \"\"\n"},
		{"zero timeout", "timeout: 0s\n"},
		{"bad level", "log_level: loud\n"},
		{"broken yaml", "endpoint: [\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tc.content), 0o600))

			_, err := Load(viper.New(), dir)
			assert.Error(t, err)
		})
	}
}

func TestSave_RoundTripsThroughLoad(t *testing.T) {
	dir := t.TempDir()
	want := Config{
		Endpoint:  "https://skills.example.com/api/match",
		HealthURL: "https://skills.example.com/health",
		Timeout:   15 * time.Second,
		LogLevel:  "warn",
		LogFile:   filepath.Join(dir, "custom.log"),
	}
	require.NoError(t, Save(filepath.Join(dir, FileName), want))

	got, err := Load(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}
