package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gitlab.com/tinyland/lab/weatherday/pkg/location"
	"gitlab.com/tinyland/lab/weatherday/pkg/weather"
)

const appName = "weatherday"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/weatherday/config.toml
//  2. $XDG_CONFIG_HOME/weatherday/config.yaml
//  3. the same two files under ~/.config when XDG_CONFIG_HOME is set
//
// If no file exists, returns DefaultConfig() with env overrides applied.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile reads configuration from path. Files ending in .yaml or
// .yml are decoded as YAML, everything else as TOML. A missing file yields
// the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadFromYAMLReader(f)
	default:
		return LoadFromReader(f)
	}
}

// LoadFromReader reads TOML configuration from r.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode toml config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromYAMLReader reads YAML configuration from r.
func LoadFromYAMLReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.NewDecoder(r).Decode(cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode yaml config: %w", err)
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// DefaultConfig returns the default configuration. The API key is left
// empty; it must come from a file or the environment.
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()

	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			LogFile:  filepath.Join(xdgStateHome(home), appName, appName+".log"),
			CacheDir: filepath.Join(xdgCacheHome(home), appName),
		},
		Weather: WeatherConfig{
			BaseURL: weather.DefaultBaseURL,
			Timeout: Duration{15 * time.Second},
		},
		Location: LocationConfig{
			Enabled:        true,
			Provider:       ProviderIP,
			IPLookupURL:    location.DefaultIPLookupURL,
			PermissionFile: filepath.Join(xdgConfigHome(home), appName, "location.toml"),
			GrantOnRequest: true,
			CacheTTL:       Duration{10 * time.Minute},
		},
		UI: UIConfig{
			Theme: "default",
			Mouse: true,
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEATHERDAY_API_KEY"); v != "" {
		cfg.Weather.APIKey = v
	}
	if v := os.Getenv("WEATHERDAY_BASE_URL"); v != "" {
		cfg.Weather.BaseURL = v
	}
	if v := os.Getenv("WEATHERDAY_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("WEATHERDAY_LOCATION_PROVIDER"); v != "" {
		cfg.Location.Provider = v
	}
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths,
		filepath.Join(xdg, appName, "config.toml"),
		filepath.Join(xdg, appName, "config.yaml"),
	)

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths,
			filepath.Join(defaultXDG, appName, "config.toml"),
			filepath.Join(defaultXDG, appName, "config.yaml"),
		)
	}

	return paths
}

func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

func xdgCacheHome(home string) string {
	if v := os.Getenv("XDG_CACHE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".cache")
}

func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}
