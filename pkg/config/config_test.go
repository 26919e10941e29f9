package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points every XDG directory and override variable at a temp
// dir so the host's configuration never leaks into a test.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{"WEATHERDAY_API_KEY", "WEATHERDAY_BASE_URL", "WEATHERDAY_THEME", "WEATHERDAY_LOCATION_PROVIDER"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestDefaultConfig(t *testing.T) {
	dir := isolateEnv(t)
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.General.LogLevel)
	assert.Equal(t, filepath.Join(dir, "state", "weatherday", "weatherday.log"), cfg.General.LogFile)
	assert.Equal(t, filepath.Join(dir, "cache", "weatherday"), cfg.General.CacheDir)
	assert.Equal(t, "http://api.weatherapi.com", cfg.Weather.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Weather.Timeout.Duration)
	assert.Empty(t, cfg.Weather.APIKey, "the API key must never have a built-in value")
	assert.True(t, cfg.Location.Enabled)
	assert.Equal(t, ProviderIP, cfg.Location.Provider)
	assert.Equal(t, filepath.Join(dir, "config", "weatherday", "location.toml"), cfg.Location.PermissionFile)
	assert.Equal(t, 10*time.Minute, cfg.Location.CacheTTL.Duration)
	assert.Equal(t, "default", cfg.UI.Theme)
	assert.True(t, cfg.UI.Mouse)
}

func TestLoadFromReaderTOML(t *testing.T) {
	isolateEnv(t)
	in := `
[weather]
api_key = "abc123"
timeout = "3s"

[location]
provider = "static"
latitude = 48.85
longitude = 2.35
cache_ttl = "0s"

[ui]
theme = "midnight"
mouse = false
`
	cfg, err := LoadFromReader(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.Weather.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Weather.Timeout.Duration)
	assert.Equal(t, "http://api.weatherapi.com", cfg.Weather.BaseURL, "unset keys keep defaults")
	assert.Equal(t, ProviderStatic, cfg.Location.Provider)
	assert.Equal(t, 48.85, cfg.Location.Latitude)
	assert.Zero(t, cfg.Location.CacheTTL.Duration)
	assert.True(t, cfg.Location.Enabled)
	assert.Equal(t, "midnight", cfg.UI.Theme)
	assert.False(t, cfg.UI.Mouse)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileYAML(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "config.yaml")
	in := `
weather:
  api_key: yaml-key
  timeout: 20s
location:
  enabled: false
general:
  log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(in), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "yaml-key", cfg.Weather.APIKey)
	assert.Equal(t, 20*time.Second, cfg.Weather.Timeout.Duration)
	assert.False(t, cfg.Location.Enabled)
	assert.Equal(t, "debug", cfg.General.LogLevel)
}

func TestLoadFromFileMissingReturnsDefaults(t *testing.T) {
	dir := isolateEnv(t)
	cfg, err := LoadFromFile(filepath.Join(dir, "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadSearchesXDG(t *testing.T) {
	dir := isolateEnv(t)
	p := filepath.Join(dir, "config", "weatherday", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte("[weather]\napi_key = \"from-xdg\"\n"), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "from-xdg", cfg.Weather.APIKey)
}

func TestEnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("WEATHERDAY_API_KEY", "env-key")
	t.Setenv("WEATHERDAY_BASE_URL", "https://example.test")
	t.Setenv("WEATHERDAY_THEME", "midnight")
	t.Setenv("WEATHERDAY_LOCATION_PROVIDER", "static")

	cfg, err := LoadFromReader(strings.NewReader("[weather]\napi_key = \"file-key\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Weather.APIKey)
	assert.Equal(t, "https://example.test", cfg.Weather.BaseURL)
	assert.Equal(t, "midnight", cfg.UI.Theme)
	assert.Equal(t, ProviderStatic, cfg.Location.Provider)
}

func TestInvalidDuration(t *testing.T) {
	isolateEnv(t)
	_, err := LoadFromReader(strings.NewReader("[weather]\ntimeout = \"soon\"\n"))
	assert.Error(t, err)

	_, err = LoadFromReader(strings.NewReader("[weather]\ntimeout = \"-1s\"\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolateEnv(t)
	valid := func() *Config {
		cfg := DefaultConfig()
		cfg.Weather.APIKey = "k"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"missing key", func(c *Config) { c.Weather.APIKey = " " }, "weather.api_key"},
		{"bad base url", func(c *Config) { c.Weather.BaseURL = "ftp://x" }, "weather.base_url"},
		{"bad level", func(c *Config) { c.General.LogLevel = "loud" }, "general.log_level"},
		{"bad provider", func(c *Config) { c.Location.Provider = "gps" }, "location.provider"},
		{"bad lookup url", func(c *Config) { c.Location.IPLookupURL = "nohost" }, "location.ip_lookup_url"},
		{"bad latitude", func(c *Config) {
			c.Location.Provider = ProviderStatic
			c.Location.Latitude = 91
		}, "location.latitude"},
		{"bad longitude", func(c *Config) {
			c.Location.Provider = ProviderStatic
			c.Location.Longitude = -181
		}, "location.longitude"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	isolateEnv(t)
	cfg := DefaultConfig()
	cfg.General.LogLevel = "loud"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "weather.api_key")
	assert.Contains(t, err.Error(), "general.log_level")
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"15s", 15 * time.Second, false},
		{" 10m ", 10 * time.Minute, false},
		{"30", 30 * time.Second, false},
		{"1.5", 1500 * time.Millisecond, false},
		{"off", 0, false},
		{"OFF", 0, false},
		{"", 0, false},
		{"soon", 0, true},
		{"-1s", 0, true},
		{"-5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDuration(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadDuration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCacheTTLOff(t *testing.T) {
	isolateEnv(t)
	cfg, err := LoadFromReader(strings.NewReader("[location]\ncache_ttl = \"off\"\n"))
	require.NoError(t, err)
	assert.Zero(t, cfg.Location.CacheTTL.Duration)
}

func TestDurationMarshalText(t *testing.T) {
	b, err := Duration{90 * time.Second}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(b))

	b, err = Duration{}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "off", string(b))
}
