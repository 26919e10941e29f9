package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadDuration is wrapped by every duration parse failure.
var ErrBadDuration = errors.New("bad duration")

// Duration is a config duration. It accepts Go duration strings ("15s",
// "10m"), a bare number of seconds ("30"), and "off" for zero, which turns
// the position cache off.
type Duration struct {
	time.Duration
}

// ParseDuration parses one config duration value.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "off", "0":
		return 0, nil
	}

	var d time.Duration
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		d = time.Duration(secs * float64(time.Second))
	} else {
		d, err = time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w %q: want e.g. \"15s\", \"10m\" or \"off\"", ErrBadDuration, s)
		}
	}
	if d < 0 {
		return 0, fmt.Errorf("%w %q: must not be negative", ErrBadDuration, s)
	}
	return d, nil
}

// UnmarshalText decodes TOML and YAML string values.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText writes zero as "off".
func (d Duration) MarshalText() ([]byte, error) {
	if d.Duration == 0 {
		return []byte("off"), nil
	}
	return []byte(d.Duration.String()), nil
}
