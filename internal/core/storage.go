package core

import (
	"fmt"
	"os"

	"dentsync/internal/infra/persistence/file"
	"dentsync/internal/infra/persistence/memory"
	"dentsync/internal/infra/persistence/sqlite"
	"dentsync/pkg/domain"
)

// StorageDriver identifies a concrete persistence implementation.
type StorageDriver string

const (
	StorageMemory StorageDriver = "memory" // in-memory only (tests / ephemeral)
	StorageFile   StorageDriver = "file"   // single JSON document on disk
	StorageSQLite StorageDriver = "sqlite" // embedded sqlite file
)

// OpenPersister selects a persistence backend using environment variables.
// Defaults to the JSON file driver when unset.
//
//	DENTSYNC_STORAGE_DRIVER: file|sqlite|memory (default file)
//	DENTSYNC_FILE_PATH: path to the JSON document (default ./dentsync.json)
//	DENTSYNC_SQLITE_PATH: path to the sqlite file (default ./dentsync.db)
func OpenPersister() (domain.Persister, error) {
	driver := os.Getenv("DENTSYNC_STORAGE_DRIVER")
	if driver == "" {
		driver = string(StorageFile)
	}
	switch StorageDriver(driver) {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageFile:
		return file.NewStore(os.Getenv("DENTSYNC_FILE_PATH"))
	case StorageSQLite:
		return sqlite.NewStore(os.Getenv("DENTSYNC_SQLITE_PATH"))
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}
