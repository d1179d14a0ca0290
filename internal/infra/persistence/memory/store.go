// Package memory provides an in-memory persister used for tests and
// ephemeral runs.
package memory

import (
	"encoding/json"
	"sync"

	"dentsync/pkg/domain"
)

// Compile-time contract assertion.
var _ domain.Persister = (*Store)(nil)

// Store keeps the serialized record in memory. Payloads round-trip through
// JSON so saved state never aliases live state.
type Store struct {
	mu      sync.Mutex
	payload []byte
}

// NewStore constructs an empty in-memory persister.
func NewStore() *Store {
	return &Store{}
}

// Load returns the last saved record, if any.
func (s *Store) Load() (domain.PersistedState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return domain.PersistedState{}, false, nil
	}
	var ps domain.PersistedState
	if err := json.Unmarshal(s.payload, &ps); err != nil {
		return domain.PersistedState{}, false, err
	}
	return ps, true, nil
}

// Save serializes and retains the record.
func (s *Store) Save(ps domain.PersistedState) error {
	data, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = data
	s.mu.Unlock()
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// SetRaw seeds the store with a raw payload, bypassing the typed Save path.
// Tests use it to simulate stored blobs written by earlier schema versions.
func (s *Store) SetRaw(payload []byte) {
	s.mu.Lock()
	s.payload = append([]byte(nil), payload...)
	s.mu.Unlock()
}
