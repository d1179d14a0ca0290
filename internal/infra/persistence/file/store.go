// Package file persists the application state as a single JSON document on
// the local filesystem, the durable-local-storage analog for a single-user
// client. Writes are atomic: payloads stream to a temp file that replaces
// the document on success.
package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"dentsync/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Persister = (*Store)(nil)

const defaultPath = "dentsync.json"

// Store reads and writes the state document at a fixed path.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore constructs a file-backed persister, creating parent directories
// as needed. An empty path falls back to ./dentsync.json.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Path returns the configured document path.
func (s *Store) Path() string { return s.path }

// Load reads and decodes the stored record. A missing file reports
// found=false; a malformed payload reports the decode error so the caller
// can degrade to defaults.
func (s *Store) Load() (domain.PersistedState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.PersistedState{}, false, nil
	}
	if err != nil {
		return domain.PersistedState{}, false, fmt.Errorf("read state: %w", err)
	}
	var ps domain.PersistedState
	if err := json.Unmarshal(data, &ps); err != nil {
		return domain.PersistedState{}, false, fmt.Errorf("decode state: %w", err)
	}
	return ps, true, nil
}

// Save writes the full record atomically.
func (s *Store) Save(ps domain.PersistedState) error {
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tmp-state-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

// Close is a no-op; the document is never held open.
func (s *Store) Close() error { return nil }
