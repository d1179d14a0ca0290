package core

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

func TestExpvarMetricsRecorderAggregates(t *testing.T) {
	rec := NewExpvarMetricsRecorder("")
	rec.Observe("add_patient", true, 2*time.Millisecond)
	rec.Observe("add_patient", true, 3*time.Millisecond)
	rec.Observe("update_billing", false, time.Millisecond)
	rec.Observe("", true, time.Millisecond) // ignored

	snap := rec.Snapshot()
	if got := snap.DurationsMS["add_patient"]; got != 5 {
		t.Fatalf("expected 5ms total for add_patient, got %v", got)
	}
	if got := snap.Results["add_patient"]["success"]; got != 2 {
		t.Fatalf("expected 2 successes, got %d", got)
	}
	if got := snap.Results["update_billing"]["error"]; got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if _, ok := snap.Results[""]; ok {
		t.Fatalf("empty action must be ignored")
	}
}

func TestPrometheusMetricsRecorderRegistersAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusMetricsRecorder(reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	rec.Observe("add_patient", true, 2*time.Millisecond)
	rec.Observe("add_patient", false, time.Millisecond)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := make(map[string]bool, len(families))
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	if !names["dentsync_dispatch_total"] || !names["dentsync_dispatch_duration_seconds"] {
		t.Fatalf("expected dispatch collectors, got %v", names)
	}

	// Double registration must surface the conflict.
	if _, err := NewPrometheusMetricsRecorder(reg); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
}

func TestZerologLoggerEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf))

	logger.Error("persist state failed", "error", "disk full", 42, "ignored")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output not json: %v (%q)", err, buf.String())
	}
	if entry["message"] != "persist state failed" {
		t.Fatalf("unexpected message: %v", entry["message"])
	}
	if entry["error"] != "disk full" {
		t.Fatalf("field not emitted: %v", entry)
	}
	if entry["level"] != "error" {
		t.Fatalf("unexpected level: %v", entry["level"])
	}
}
