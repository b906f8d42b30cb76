package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("GRIND_HOME", "/tmp/grind-home")
	cfg := DefaultConfig()

	assert.Equal(t, filepath.Join("/tmp/grind-home", "grind.db"), cfg.Database.Path)
	assert.Equal(t, 30, cfg.History.BackfillDays)
	assert.Equal(t, 7, cfg.History.RecentDays)
	assert.Equal(t, "127.0.0.1:7878", cfg.Addr())
	assert.True(t, cfg.Metrics.Enabled)
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("GRIND_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileThenEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv("GRIND_HOME", home)
	content := `
[calendar]
timezone = "Asia/Kolkata"

[history]
backfill_days = 14

[api]
port = 9000
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.toml"), []byte(content), 0600))
	t.Setenv("GRIND_API_PORT", "9100")
	t.Setenv("GRIND_METRICS", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", cfg.Calendar.Timezone)
	assert.Equal(t, 14, cfg.History.BackfillDays)
	assert.Equal(t, 7, cfg.History.RecentDays, "unset keys keep defaults")
	assert.Equal(t, 9100, cfg.API.Port, "env wins over file")
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_InvalidOverridesIgnored(t *testing.T) {
	t.Setenv("GRIND_HOME", t.TempDir())
	t.Setenv("GRIND_BACKFILL_DAYS", "-3")
	t.Setenv("GRIND_API_PORT", "not-a-port")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.History.BackfillDays)
	assert.Equal(t, 7878, cfg.API.Port)
}

func TestLoad_BadTimezone(t *testing.T) {
	t.Setenv("GRIND_HOME", t.TempDir())
	t.Setenv("GRIND_TIMEZONE", "Mars/Olympus_Mons")

	_, err := Load()
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "debug"
	lvl, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	cfg.Logging.Level = "chatty"
	_, err = cfg.LogLevel()
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("GRIND_HOME", t.TempDir())
	cfg := DefaultConfig()
	cfg.History.RecentDays = 14
	cfg.Logging.File = "grind.log"
	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
