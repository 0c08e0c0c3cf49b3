package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DETECTIVE_DB", "DETECTIVE_LOG", "DETECTIVE_LOG_LEVEL", "DETECTIVE_SEED", "DETECTIVE_AUTO_ADVANCE", "DETECTIVE_NO_HISTORY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Empty(t, cfg.DBPath)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 1500*time.Millisecond, cfg.AutoAdvance)
	assert.Zero(t, cfg.Seed)
	assert.False(t, cfg.NoHistory)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DETECTIVE_DB", "/tmp/h.db")
	t.Setenv("DETECTIVE_LOG_LEVEL", "debug")
	t.Setenv("DETECTIVE_SEED", "42")
	t.Setenv("DETECTIVE_AUTO_ADVANCE", "0s")
	t.Setenv("DETECTIVE_NO_HISTORY", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Zero(t, cfg.AutoAdvance)
	assert.True(t, cfg.NoHistory)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DETECTIVE_LOG=/tmp/d.log\nDETECTIVE_SEED=7\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DETECTIVE_LOG")
		os.Unsetenv("DETECTIVE_SEED")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/d.log", cfg.LogPath)
	assert.Equal(t, uint64(7), cfg.Seed)
}

func TestLoad_EnvironmentWinsOverDotEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DETECTIVE_SEED", "1")
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DETECTIVE_SEED=9\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), cfg.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DETECTIVE_SEED", "not-a-number"},
		{"DETECTIVE_AUTO_ADVANCE", "-1s"},
		{"DETECTIVE_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			assert.Error(t, err)
		})
	}
}

func TestResolveLogPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got, err := Config{}.ResolveLogPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "detective", "detective.log"), got)

	got, err = Config{LogPath: "/x/y.log"}.ResolveLogPath()
	require.NoError(t, err)
	assert.Equal(t, "/x/y.log", got)
}
