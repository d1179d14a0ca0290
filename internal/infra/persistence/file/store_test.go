package file

import (
	"os"
	"path/filepath"
	"testing"

	"dentsync/pkg/domain"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clinic", "dentsync.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("fresh store must report not found, got found=%v err=%v", found, err)
	}

	saved := domain.PersistedState{
		ClinicName: "Verma Dental",
		Patients:   []domain.Patient{{ID: "p1", FirstName: "Asha"}},
		Shortcuts:  []domain.Shortcut{{ID: "s1", Value: domain.DoctorShortcutValue("Dr. Rao")}},
	}
	if err := store.Save(saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("load after save: found=%v err=%v", found, err)
	}
	if loaded.ClinicName != "Verma Dental" || len(loaded.Patients) != 1 {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
	if loaded.Shortcuts[0].Category() != domain.ShortcutDoctors {
		t.Fatalf("shortcut union lost through persistence: %+v", loaded.Shortcuts[0])
	}
}

func TestFileStoreMalformedPayloadSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dentsync.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed malformed file: %v", err)
	}
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, _, err := store.Load(); err == nil {
		t.Fatalf("malformed payload must surface a decode error")
	}
}

func TestFileStoreSaveOverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dentsync.json")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Save(domain.PersistedState{ClinicName: "first"}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := store.Save(domain.PersistedState{ClinicName: "second"}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	loaded, _, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ClinicName != "second" {
		t.Fatalf("latest save must win, got %q", loaded.ClinicName)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("temp files must not linger, dir has %d entries", len(entries))
	}
}
