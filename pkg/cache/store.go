// Package cache provides a small disk-backed key-value store with per-entry
// expiry. Each entry lives in its own file named after a hash of its key, so
// keys may contain any characters. Writes are atomic via temp-file-then-rename.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// StoreConfig holds configuration for a Store.
type StoreConfig struct {
	// Dir is where entry files are written. Created if missing.
	Dir string

	// DefaultTTL applies to Put. Zero means entries never expire.
	DefaultTTL time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// entry is the on-disk envelope for one cached value.
type entry struct {
	Key      string          `json:"key"`
	StoredAt int64           `json:"stored_at"` // UnixNano
	TTLNS    int64           `json:"ttl_ns"`    // 0 = no expiry
	Value    json.RawMessage `json:"value"`
}

// Store is a disk-backed cache. It is safe for concurrent use within one
// process.
type Store struct {
	dir string
	ttl time.Duration
	now func() time.Time

	mu sync.Mutex
}

// NewStore creates the cache directory if needed and returns a Store.
func NewStore(cfg StoreConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, errors.New("cache: empty directory")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create directory %s: %w", cfg.Dir, err)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	ttl := cfg.DefaultTTL
	if ttl < 0 {
		ttl = 0
	}
	return &Store{dir: cfg.Dir, ttl: ttl, now: now}, nil
}

// Get returns the raw JSON stored under key. Missing, unreadable and
// expired entries report false; expired and corrupt files are removed.
func (s *Store) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(key)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil || e.Key != key {
		_ = os.Remove(path)
		return nil, false
	}
	if s.expired(e) {
		_ = os.Remove(path)
		return nil, false
	}
	return e.Value, true
}

// Put stores value, which must be valid JSON, with the default TTL.
func (s *Store) Put(key string, value []byte) error {
	return s.PutWithTTL(key, value, s.ttl)
}

// PutWithTTL stores value with a custom TTL. A TTL of 0 never expires.
func (s *Store) PutWithTTL(key string, value []byte, ttl time.Duration) error {
	if !json.Valid(value) {
		return fmt.Errorf("cache: value for %q is not valid JSON", key)
	}
	data, err := json.Marshal(entry{
		Key:      key,
		StoredAt: s.now().UnixNano(),
		TTLNS:    int64(ttl),
		Value:    value,
	})
	if err != nil {
		return fmt.Errorf("cache: marshal entry %q: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := atomicWrite(s.path(key), data, s.dir); err != nil {
		return fmt.Errorf("cache: write entry %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("cache: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) expired(e entry) bool {
	if e.TTLNS <= 0 {
		return false
	}
	return s.now().Sub(time.Unix(0, e.StoredAt)) > time.Duration(e.TTLNS)
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, hashKey(key)+".json")
}

// hashKey returns the first 16 hex characters of the SHA-256 of key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:8])
}

// atomicWrite writes data to path via a temporary file and rename.
func atomicWrite(path string, data []byte, tmpDir string) error {
	tmp, err := os.CreateTemp(tmpDir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	success = true
	return nil
}
