package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, k := range []string{"MOVIEREC_SERVER_URL", "MOVIEREC_TIMEOUT", "MOVIEREC_DEBOUNCE", "MOVIEREC_LOG_LEVEL", "MOVIEREC_HISTORY", "MOVIEREC_DATA_DIR"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(filepath.Join(dir, "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.Autocomplete.Debounce)
	assert.Equal(t, 2, cfg.Autocomplete.MinQueryLen)
	assert.True(t, cfg.UI.Mouse)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  base_url: http://recs.internal:8080
  timeout: 3s
  rate_per_second: 5
autocomplete:
  debounce: 150ms
  min_query_len: 3
ui:
  mouse: false
history:
  enabled: false
  path: /tmp/h.db
data_dir: /tmp/movierec
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://recs.internal:8080", cfg.Server.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Server.Timeout)
	assert.InDelta(t, 5.0, cfg.Server.RatePerSecond, 1e-9)
	assert.Equal(t, 150*time.Millisecond, cfg.Autocomplete.Debounce)
	assert.Equal(t, 3, cfg.Autocomplete.MinQueryLen)
	assert.False(t, cfg.UI.Mouse)
	assert.True(t, cfg.UI.AltScreen, "unset fields keep their defaults")
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "/tmp/h.db", cfg.HistoryPath())
	assert.Equal(t, filepath.Join("/tmp/movierec", "logs"), cfg.LogDir())
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  base_url: http://from-file\n"), 0644))

	t.Setenv("MOVIEREC_SERVER_URL", "http://from-env")
	t.Setenv("MOVIEREC_DEBOUNCE", "50ms")
	t.Setenv("MOVIEREC_HISTORY", "0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env", cfg.Server.BaseURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Autocomplete.Debounce)
	assert.False(t, cfg.History.Enabled)
}

func TestDotEnvFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.Unsetenv("MOVIEREC_LOG_LEVEL"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MOVIEREC_LOG_LEVEL=debug\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("MOVIEREC_LOG_LEVEL") })

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestBadEnvDuration(t *testing.T) {
	dir := isolate(t)
	t.Setenv("MOVIEREC_TIMEOUT", "soon")

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "MOVIEREC_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty url", func(c *Config) { c.Server.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.Server.Timeout = 0 }},
		{"negative rate", func(c *Config) { c.Server.RatePerSecond = -1 }},
		{"zero debounce", func(c *Config) { c.Autocomplete.Debounce = 0 }},
		{"zero min length", func(c *Config) { c.Autocomplete.MinQueryLen = 0 }},
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}
