package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sitedesk.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "state"), cfg.StateDir)
	assert.Equal(t, filepath.Join(dir, "sitedesk.log"), cfg.LogFile)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	yaml := "db_path: " + filepath.Join(dir, "other.db") + "\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "other.db"), cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log_level: debug\n"), 0o644))
	t.Setenv("SITEDESK_LOG_LEVEL", "warn")
	t.Setenv("SITEDESK_DB_PATH", ":memory:")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, ":memory:", cfg.DBPath)
}

func TestLoad_ExpandsHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SITEDESK_STATE_DIR", "~/sitedesk-state")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.NotContains(t, cfg.StateDir, "~")
	assert.True(t, filepath.IsAbs(cfg.StateDir))
}

func TestLoad_InvalidLevel(t *testing.T) {
	t.Setenv("SITEDESK_LOG_LEVEL", "chatty")
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, `invalid log_level "chatty"`)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("db_path: [\n"), 0o644))
	_, err := Load(dir)
	assert.ErrorContains(t, err, "reading config")
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{
		DBPath:   filepath.Join(dir, "db", "sitedesk.db"),
		StateDir: filepath.Join(dir, "state"),
		LogFile:  filepath.Join(dir, "logs", "sitedesk.log"),
	}
	require.NoError(t, cfg.EnsureDirs())
	for _, sub := range []string{"db", "state", "logs"} {
		info, err := os.Stat(filepath.Join(dir, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}
