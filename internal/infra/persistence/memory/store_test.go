package memory

import (
	"testing"

	"dentsync/pkg/domain"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewStore()
	if _, found, err := store.Load(); err != nil || found {
		t.Fatalf("empty store must report not found, got found=%v err=%v", found, err)
	}
	if err := store.Save(domain.PersistedState{ClinicName: "Verma Dental"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	ps, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if ps.ClinicName != "Verma Dental" {
		t.Fatalf("round trip mismatch: %+v", ps)
	}
}

func TestMemoryStoreSeededLegacyPayload(t *testing.T) {
	store := NewStore()
	store.SetRaw([]byte(`{"clinicName":"Old Clinic","patients":[{"id":"p1"}]}`))

	ps, found, err := store.Load()
	if err != nil || !found {
		t.Fatalf("load seeded payload: found=%v err=%v", found, err)
	}
	if ps.ClinicName != "Old Clinic" || len(ps.Patients) != 1 {
		t.Fatalf("seeded payload not decoded: %+v", ps)
	}
	// The payload predates sub-collections; normalization is the loader's job.
	if ps.Patients[0].Billing != nil {
		t.Fatalf("raw decode must not back-fill, got %+v", ps.Patients[0])
	}
}

func TestMemoryStoreSeededMalformedPayload(t *testing.T) {
	store := NewStore()
	store.SetRaw([]byte("{not json"))
	if _, _, err := store.Load(); err == nil {
		t.Fatalf("malformed payload must surface a decode error")
	}
}
