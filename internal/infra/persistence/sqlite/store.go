// Package sqlite persists the application state in an embedded SQLite file.
// The whole record lives as one JSON payload in a single-row table keyed by
// the fixed storage key, keeping parity with the file driver's contract.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"dentsync/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Persister = (*Store)(nil)

const defaultPath = "dentsync.db"

// Store snapshots the serialized state into SQLite on every save.
type Store struct {
	mu   sync.Mutex
	db   *sql.DB
	path string
}

// NewStore opens (creating if needed) the sqlite file and ensures the state
// table exists. An empty path falls back to ./dentsync.db.
func NewStore(path string) (*Store, error) {
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS state (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Load reads the record stored under the fixed key. An empty table reports
// found=false; a malformed payload reports the decode error so the caller
// can degrade to defaults.
func (s *Store) Load() (domain.PersistedState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var payload []byte
	err := s.db.QueryRow(`SELECT payload FROM state WHERE key = ?`, domain.StorageKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PersistedState{}, false, nil
	}
	if err != nil {
		return domain.PersistedState{}, false, fmt.Errorf("select state: %w", err)
	}
	var ps domain.PersistedState
	if err := json.Unmarshal(payload, &ps); err != nil {
		return domain.PersistedState{}, false, fmt.Errorf("decode state: %w", err)
	}
	return ps, true, nil
}

// Save upserts the full record under the fixed key.
func (s *Store) Save(ps domain.PersistedState) error {
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`INSERT INTO state(key, payload) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`,
		domain.StorageKey, data,
	); err != nil {
		return fmt.Errorf("upsert state: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the configured database path.
func (s *Store) Path() string { return s.path }
