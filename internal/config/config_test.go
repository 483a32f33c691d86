package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(path string, env map[string]string) *configService {
	return &configService{
		filePath: path,
		lookup:   func() map[string]string { return env },
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cs := newTestService(filepath.Join(t.TempDir(), "config.toml"), map[string]string{})

	cfg, err := cs.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.UI.Debounce.Duration)
	assert.Equal(t, 20, cfg.PageSize)
}

func TestSaveThenLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cs := newTestService(path, map[string]string{})

	cfg := DefaultConfig()
	cfg.PageSize = 40
	cfg.UI.Debounce = Duration{500 * time.Millisecond}
	require.NoError(t, cs.Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "500ms")

	loaded, err := cs.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = 10\n\n[ui]\nscroll_threshold = 8\n"), 0o644))

	cfg, err := newTestService(path, map[string]string{}).Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 8, cfg.UI.ScrollThreshold)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.HTTP.Timeout.Duration)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url = 'https://file.example/api'\n"), 0o644))

	cfg, err := newTestService(path, map[string]string{
		"HUNTERPRICE_API_BASE_URL":     "http://127.0.0.1:9999/api",
		"HUNTERPRICE_UI_DEBOUNCE":      "150ms",
		"HUNTERPRICE_HTTP_MAX_RETRIES": "0",
		"HUNTERPRICE_LOCATION_LAT":     "20.6597",
		"HUNTERPRICE_LOCATION_LNG":     "-103.3496",
	}).Load()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/api", cfg.APIBaseURL)
	assert.Equal(t, 150*time.Millisecond, cfg.UI.Debounce.Duration)
	assert.Equal(t, 0, cfg.HTTP.MaxRetries)
	assert.True(t, cfg.Location.Set())
	assert.InDelta(t, -103.3496, cfg.Location.Lng, 1e-9)
	assert.False(t, DefaultConfig().Location.Set())
}

func TestInvalidConfigIsRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.APIBaseURL = "" }},
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"zero debounce", func(c *Config) { c.UI.Debounce = Duration{} }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
		{"negative threshold", func(c *Config) { c.UI.ScrollThreshold = -1 }},
		{"latitude out of range", func(c *Config) { c.Location.Lat = 91 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("page_size = = 3"), 0o644))

	_, err := newTestService(path, map[string]string{}).Load()
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLogFilePath(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, filepath.Join(Dir(), "hunterprice.log"), cfg.LogFilePath())

	cfg.LogFile = "/tmp/custom.log"
	assert.Equal(t, "/tmp/custom.log", cfg.LogFilePath())
}
