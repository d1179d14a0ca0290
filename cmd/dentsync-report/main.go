// Command dentsync-report renders reports out of the persistent clinic store.
// It opens the configured persistence driver read-only, loads the state and
// writes the requested report to stdout or a file.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"dentsync/internal/adapters/reports"
	"dentsync/internal/core"
	"dentsync/pkg/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dentsync-report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		kind      = fs.String("kind", "financials", "report kind: financials|patient")
		patientID = fs.String("patient", "", "patient id (kind=patient)")
		doctor    = fs.String("doctor", "", "doctor name substituted into patient reports")
		visitDate = fs.String("visit-date", "", "visit date substituted into patient reports")
		out       = fs.String("o", "", "output file (default stdout)")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	persister, err := core.OpenPersister()
	if err != nil {
		fmt.Fprintf(stderr, "open storage: %v\n", err)
		return 1
	}
	defer func() { _ = persister.Close() }()

	ps, found, err := persister.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load state: %v\n", err)
		return 1
	}
	state := domain.DefaultState()
	if found {
		state = domain.StateFromPersisted(ps)
	}

	var payload []byte
	switch *kind {
	case "financials":
		payload, err = reports.FinancialsCSV(state.Transactions)
		if err != nil {
			fmt.Fprintf(stderr, "render csv: %v\n", err)
			return 1
		}
	case "patient":
		patient, ok := findPatient(state.Patients, *patientID)
		if !ok {
			fmt.Fprintf(stderr, "patient %q not found\n", *patientID)
			return 1
		}
		msg := reports.PatientReportMessage(patient, state.Settings, reports.AllSections(),
			reports.VisitOptions{DoctorName: *doctor, VisitDate: *visitDate},
			state.WhatsAppTemplates.PatientReport)
		payload = []byte(msg + "\n")
	default:
		fmt.Fprintf(stderr, "unknown report kind %q\n", *kind)
		return 2
	}

	if *out == "" {
		if _, err := stdout.Write(payload); err != nil {
			fmt.Fprintf(stderr, "write report: %v\n", err)
			return 1
		}
		return 0
	}
	if err := os.WriteFile(*out, payload, 0o644); err != nil {
		fmt.Fprintf(stderr, "write %s: %v\n", *out, err)
		return 1
	}
	return 0
}

func findPatient(patients []domain.Patient, id string) (domain.Patient, bool) {
	for _, p := range patients {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Patient{}, false
}
