// Package config provides TOML-based configuration for weatherday.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
)

// Config is the root configuration.
type Config struct {
	General  GeneralConfig  `toml:"general" yaml:"general"`
	Weather  WeatherConfig  `toml:"weather" yaml:"weather"`
	Location LocationConfig `toml:"location" yaml:"location"`
	UI       UIConfig       `toml:"ui" yaml:"ui"`
}

// GeneralConfig holds logging and storage settings.
type GeneralConfig struct {
	LogLevel string `toml:"log_level" yaml:"log_level"`
	LogFile  string `toml:"log_file" yaml:"log_file"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`
}

// WeatherConfig configures the weather provider.
type WeatherConfig struct {
	APIKey  string   `toml:"api_key" yaml:"api_key"`
	BaseURL string   `toml:"base_url" yaml:"base_url"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// LocationConfig configures permission handling and position lookup.
type LocationConfig struct {
	Enabled        bool     `toml:"enabled" yaml:"enabled"`
	Provider       string   `toml:"provider" yaml:"provider"` // "ip" or "static"
	IPLookupURL    string   `toml:"ip_lookup_url" yaml:"ip_lookup_url"`
	Latitude       float64  `toml:"latitude" yaml:"latitude"`
	Longitude      float64  `toml:"longitude" yaml:"longitude"`
	PermissionFile string   `toml:"permission_file" yaml:"permission_file"`
	GrantOnRequest bool     `toml:"grant_on_request" yaml:"grant_on_request"`
	CacheTTL       Duration `toml:"cache_ttl" yaml:"cache_ttl"`
}

// UIConfig configures the terminal screen.
type UIConfig struct {
	Theme     string `toml:"theme" yaml:"theme"`
	ThemeFile string `toml:"theme_file" yaml:"theme_file"`
	Mouse     bool   `toml:"mouse" yaml:"mouse"`
}

// Location providers.
const (
	ProviderIP     = "ip"
	ProviderStatic = "static"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Weather.APIKey) == "" {
		errs = append(errs, errors.New("weather.api_key is required (or set WEATHERDAY_API_KEY)"))
	}
	if err := validateURL(c.Weather.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("weather.base_url: %w", err))
	}
	if _, err := c.General.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	switch c.Location.Provider {
	case ProviderIP:
		if err := validateURL(c.Location.IPLookupURL); err != nil {
			errs = append(errs, fmt.Errorf("location.ip_lookup_url: %w", err))
		}
	case ProviderStatic:
		if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
			errs = append(errs, fmt.Errorf("location.latitude %v out of range", c.Location.Latitude))
		}
		if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
			errs = append(errs, fmt.Errorf("location.longitude %v out of range", c.Location.Longitude))
		}
	default:
		errs = append(errs, fmt.Errorf("location.provider %q: want %q or %q",
			c.Location.Provider, ProviderIP, ProviderStatic))
	}

	return errors.Join(errs...)
}

// SlogLevel parses LogLevel.
func (g GeneralConfig) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(g.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("general.log_level %q: %w", g.LogLevel, err)
	}
	return lvl, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	return nil
}
