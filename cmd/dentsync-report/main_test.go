package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"dentsync/pkg/domain"
)

func seedStateFile(t *testing.T) {
	t.Helper()
	ps := domain.PersistedState{
		ClinicName: "Verma Dental",
		Patients:   []domain.Patient{{ID: "p1", FirstName: "Asha", LastName: "Verma"}},
		Transactions: []domain.FinancialTransaction{
			{ID: "t1", Date: "2025-03-01", Type: domain.TransactionIncome, Category: "Patient Payment", Description: "Consult", Amount: 500},
		},
	}
	data, err := json.Marshal(ps)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "dentsync.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("seed state file: %v", err)
	}
	t.Setenv("DENTSYNC_STORAGE_DRIVER", "file")
	t.Setenv("DENTSYNC_FILE_PATH", path)
}

func TestRunFinancialsCSV(t *testing.T) {
	seedStateFile(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-kind", "financials"}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	out := stdout.String()
	if !strings.HasPrefix(out, "Date,Type,Category,Description,Amount (INR)") {
		t.Fatalf("missing csv header:\n%s", out)
	}
	if !strings.Contains(out, "Consult,500.00") {
		t.Fatalf("missing ledger row:\n%s", out)
	}
}

func TestRunPatientReport(t *testing.T) {
	seedStateFile(t)
	var stdout, stderr bytes.Buffer
	code := run([]string{"-kind", "patient", "-patient", "p1", "-doctor", "Dr. Rao", "-visit-date", "2025-03-14"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Asha Verma") {
		t.Fatalf("report missing patient name:\n%s", stdout.String())
	}
}

func TestRunUnknownPatientFails(t *testing.T) {
	seedStateFile(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-kind", "patient", "-patient", "ghost"}, &stdout, &stderr); code == 0 {
		t.Fatalf("expected non-zero exit for unknown patient")
	}
	if !strings.Contains(stderr.String(), "not found") {
		t.Fatalf("missing error message: %s", stderr.String())
	}
}

func TestRunUnknownKindFails(t *testing.T) {
	seedStateFile(t)
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-kind", "sticker-chart"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected usage exit code, got %d", code)
	}
}
