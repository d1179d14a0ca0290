package domain

// StorageKey is the fixed key the serialized state record is stored under in
// every persistence driver.
const StorageKey = "dentSyncData"

// Persister is the minimal abstraction over durable local storage. Load
// reports found=false when no payload exists yet; malformed payloads are the
// caller's concern (degrade to defaults, never fail startup). Save writes the
// full record best-effort.
type Persister interface {
	Load() (PersistedState, bool, error)
	Save(PersistedState) error
	Close() error
}
