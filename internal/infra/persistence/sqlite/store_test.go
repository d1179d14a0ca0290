package sqlite

import (
	"path/filepath"
	"testing"

	"dentsync/pkg/domain"
)

func TestSqliteStoreRoundTripAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dentsync.db")
	store, err := NewStore(path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("fresh database must report not found, got found=%v err=%v", found, err)
	}

	if err := store.Save(domain.PersistedState{ClinicName: "Verma Dental", Patients: []domain.Patient{{ID: "p1"}}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(domain.PersistedState{ClinicName: "Verma Dental", Patients: []domain.Patient{{ID: "p1"}, {ID: "p2"}}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reloaded, err := NewStore(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	t.Cleanup(func() { _ = reloaded.Close() })

	ps, found, err := reloaded.Load()
	if err != nil || !found {
		t.Fatalf("load after reload: found=%v err=%v", found, err)
	}
	if ps.ClinicName != "Verma Dental" || len(ps.Patients) != 2 {
		t.Fatalf("latest upsert must win, got %+v", ps)
	}
}

func TestSqliteStoreKeepsSingleRow(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "dentsync.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	for i := 0; i < 3; i++ {
		if err := store.Save(domain.PersistedState{ClinicName: "x"}); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	var rows int
	if err := store.DB().QueryRow(`SELECT COUNT(*) FROM state`).Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single state row, got %d", rows)
	}
}

func TestSqliteStoreMalformedPayloadSurfacesError(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "dentsync.db"))
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.DB().Exec(`INSERT INTO state(key, payload) VALUES(?, ?)`, domain.StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("seed malformed payload: %v", err)
	}
	if _, _, err := store.Load(); err == nil {
		t.Fatalf("malformed payload must surface a decode error")
	}
}
