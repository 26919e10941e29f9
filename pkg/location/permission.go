// Package location negotiates location permission and resolves the
// device's current position.
package location

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// Status is the outcome of a permission check or request.
type Status int

const (
	StatusUndetermined Status = iota
	StatusGranted
	StatusDenied
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusGranted:
		return "granted"
	case StatusDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// ParseStatus parses "granted", "denied" or "undetermined" (or empty).
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "granted":
		return StatusGranted, nil
	case "denied":
		return StatusDenied, nil
	case "", "undetermined":
		return StatusUndetermined, nil
	default:
		return StatusUndetermined, fmt.Errorf("unknown permission status %q", s)
	}
}

// Permissions is the foreground location permission API. Check only reads
// the current status; Request may record a new decision.
type Permissions interface {
	Check(ctx context.Context) (Status, error)
	Request(ctx context.Context) (Status, error)
}

// SettingsConfig controls SettingsPermissions.
type SettingsConfig struct {
	// Path is the TOML settings file holding the decision.
	Path string

	// Enabled false makes every check and request report undetermined.
	Enabled bool

	// GrantOnRequest is the decision Request records when none exists.
	GrantOnRequest bool

	Logger *slog.Logger
}

// settingsFile is the on-disk shape of the permission settings.
type settingsFile struct {
	Permission string    `toml:"permission"`
	UpdatedAt  time.Time `toml:"updated_at"`
}

// SettingsPermissions keeps the permission decision in a settings file the
// user can edit, or change with the CLI, outside the running screen. The
// file is re-read on every call.
type SettingsPermissions struct {
	path    string
	enabled bool
	grant   bool
	logger  *slog.Logger

	mu sync.Mutex
}

// NewSettingsPermissions returns a SettingsPermissions for cfg.
func NewSettingsPermissions(cfg SettingsConfig) *SettingsPermissions {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SettingsPermissions{
		path:    cfg.Path,
		enabled: cfg.Enabled,
		grant:   cfg.GrantOnRequest,
		logger:  logger.With("component", "permissions"),
	}
}

// Check implements Permissions.
func (p *SettingsPermissions) Check(_ context.Context) (Status, error) {
	if !p.enabled {
		return StatusUndetermined, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.readLocked()
}

// Request implements Permissions. A recorded decision is returned as is;
// otherwise the configured default is recorded and returned.
func (p *SettingsPermissions) Request(_ context.Context) (Status, error) {
	if !p.enabled {
		return StatusUndetermined, nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	st, err := p.readLocked()
	if err != nil || st != StatusUndetermined {
		return st, err
	}

	decision := StatusDenied
	if p.grant {
		decision = StatusGranted
	}
	if err := p.writeLocked(decision); err != nil {
		return StatusUndetermined, err
	}
	p.logger.Info("recorded location permission", "status", decision.String(), "path", p.path)
	return decision, nil
}

// Set records status as the decision. StatusUndetermined is equivalent to
// Reset.
func (p *SettingsPermissions) Set(status Status) error {
	if status == StatusUndetermined {
		return p.Reset()
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writeLocked(status)
}

// Reset forgets the recorded decision.
func (p *SettingsPermissions) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reset permission settings: %w", err)
	}
	return nil
}

// Path returns the settings file location.
func (p *SettingsPermissions) Path() string {
	return p.path
}

func (p *SettingsPermissions) readLocked() (Status, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return StatusUndetermined, nil
	}
	if err != nil {
		return StatusUndetermined, fmt.Errorf("read permission settings: %w", err)
	}
	var f settingsFile
	if _, err := toml.Decode(string(data), &f); err != nil {
		return StatusUndetermined, fmt.Errorf("parse permission settings %s: %w", p.path, err)
	}
	return ParseStatus(f.Permission)
}

func (p *SettingsPermissions) writeLocked(status Status) error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("create permission settings dir: %w", err)
	}
	var buf bytes.Buffer
	f := settingsFile{Permission: status.String(), UpdatedAt: time.Now().UTC().Truncate(time.Second)}
	if err := toml.NewEncoder(&buf).Encode(f); err != nil {
		return fmt.Errorf("encode permission settings: %w", err)
	}
	if err := os.WriteFile(p.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write permission settings: %w", err)
	}
	return nil
}
