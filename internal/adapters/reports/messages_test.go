package reports

import (
	"strings"
	"testing"

	"dentsync/pkg/domain"
)

func reportPatient() domain.Patient {
	return domain.Patient{
		ID:        "p1",
		FirstName: "Asha",
		LastName:  "Verma",
		DentalChart: domain.DentalChart{
			"16": {Condition: domain.ToothCaries, Notes: "mesial caries"},
			"21": {Condition: domain.ToothHealthy},
			"11": {Condition: domain.ToothCrown},
		},
		TreatmentPlan: []domain.TreatmentPlanItem{
			{ID: "tp1", Procedure: "Root Canal", Tooth: "16", Status: domain.TreatmentInProgress, Cost: 4500},
			{ID: "tp2", Procedure: "Scaling", Status: domain.TreatmentPlanned, Cost: 800},
		},
		Prescriptions: []domain.Prescription{
			{ID: "rx1", Medication: "Amoxicillin", Dosage: "500mg", Status: domain.PrescriptionActive},
		},
		CaseNotes: []domain.CaseNote{
			{ID: "n1", Date: "2025-03-01", Note: "first sitting"},
			{ID: "n2", Date: "2025-03-08", Note: "second sitting"},
			{ID: "n3", Date: "2025-03-14", Note: "obturation done"},
		},
		Billing: []domain.BillingEntry{
			{ID: "b1", Amount: 2000, Status: domain.BillingPaid},
			{ID: "b2", Amount: 2500, Status: domain.BillingPending},
			{ID: "b3", Amount: 800, Status: domain.BillingPending},
		},
	}
}

func TestRenderTemplateReplacesAllOccurrences(t *testing.T) {
	out := RenderTemplate("Hi {{name}}, yes {{name}}. {{unknown}} stays.", map[string]string{"name": "Asha"})
	if out != "Hi Asha, yes Asha. {{unknown}} stays." {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestPatientReportSummarySections(t *testing.T) {
	p := reportPatient()
	summary := PatientReportSummary(p, AllSections())

	if !strings.Contains(summary, "*Dental Summary*:") {
		t.Fatalf("missing dental section:\n%s", summary)
	}
	// Healthy teeth are skipped; listed ids sort ascending.
	if strings.Contains(summary, "Tooth 21") {
		t.Fatalf("healthy tooth must be skipped:\n%s", summary)
	}
	if strings.Index(summary, "Tooth 11") > strings.Index(summary, "Tooth 16") {
		t.Fatalf("teeth must list in ascending id order:\n%s", summary)
	}
	if !strings.Contains(summary, "- Tooth 16: Caries (mesial caries)") {
		t.Fatalf("tooth notes must render in parentheses:\n%s", summary)
	}
	if !strings.Contains(summary, "- Root Canal (Tooth: 16), Cost: ₹4500.00, Status: In Progress") {
		t.Fatalf("treatment line mismatch:\n%s", summary)
	}
	if !strings.Contains(summary, "(Tooth: N/A)") {
		t.Fatalf("empty tooth must fall back to N/A:\n%s", summary)
	}
	if !strings.Contains(summary, "- Amoxicillin 500mg (Active)") {
		t.Fatalf("prescription line mismatch:\n%s", summary)
	}
	// Only the two most recent case notes appear.
	if strings.Contains(summary, "first sitting") {
		t.Fatalf("only the last two case notes may appear:\n%s", summary)
	}
	if !strings.Contains(summary, "- (2025-03-14) obturation done") {
		t.Fatalf("recent note missing:\n%s", summary)
	}
	if !strings.Contains(summary, "- Total Outstanding: *₹3300.00*") {
		t.Fatalf("outstanding total mismatch:\n%s", summary)
	}
}

func TestPatientReportSummaryEmptySelection(t *testing.T) {
	summary := PatientReportSummary(domain.Patient{}, AllSections())
	if summary != "No information to report for the selected sections." {
		t.Fatalf("unexpected empty summary: %q", summary)
	}
}

func TestPatientReportMessageSubstitutesTokens(t *testing.T) {
	p := reportPatient()
	settings := domain.ClinicSettings{Name: "Verma Dental", ContactNumber: "98765", Address: "12 MG Road"}
	tpl := domain.DefaultWhatsAppTemplates().PatientReport

	msg := PatientReportMessage(p, settings, AllSections(), VisitOptions{DoctorName: "Dr. Rao", VisitDate: "2025-03-14"}, tpl)

	for _, want := range []string{"Asha Verma", "Verma Dental", "Dr. Rao", "2025-03-14", "*Billing Summary*:"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message missing %q:\n%s", want, msg)
		}
	}
	if strings.Contains(msg, "{{") {
		t.Fatalf("unsubstituted tokens remain:\n%s", msg)
	}
}

func TestClinicContactFallbacks(t *testing.T) {
	p := reportPatient()
	msg := PatientReportMessage(p, domain.ClinicSettings{Name: "Verma Dental"}, Sections{}, VisitOptions{}, "{{clinic_contact}} / {{clinic_address}}")
	if msg != "[Clinic Phone Number] / [Clinic Address]" {
		t.Fatalf("fallback placeholders missing: %q", msg)
	}
}

func TestAppointmentMessagesFormatLongDates(t *testing.T) {
	appt := domain.Appointment{ID: "a1", PatientID: "p1", Doctor: "Dr. Rao", Procedure: "Scaling", Date: "2025-03-21", Time: "10:30"}
	p := reportPatient()
	settings := domain.ClinicSettings{Name: "Verma Dental", ContactNumber: "98765", Address: "12 MG Road"}

	msg := AppointmentConfirmationMessage(appt, p, settings, domain.DefaultWhatsAppTemplates().AppointmentConfirmation)
	if !strings.Contains(msg, "Friday, March 21st, 2025") {
		t.Fatalf("long date missing:\n%s", msg)
	}
	if !strings.Contains(msg, "10:30") || !strings.Contains(msg, "Scaling") {
		t.Fatalf("appointment fields missing:\n%s", msg)
	}

	reminder := AppointmentReminderMessage(appt, p, settings, domain.DefaultWhatsAppTemplates().AppointmentReminder)
	if strings.Contains(reminder, "{{") {
		t.Fatalf("unsubstituted tokens remain:\n%s", reminder)
	}
}

func TestFormatLongDateOrdinals(t *testing.T) {
	cases := map[string]string{
		"2025-03-01": "Saturday, March 1st, 2025",
		"2025-03-02": "Sunday, March 2nd, 2025",
		"2025-03-03": "Monday, March 3rd, 2025",
		"2025-03-11": "Tuesday, March 11th, 2025",
		"2025-03-12": "Wednesday, March 12th, 2025",
		"2025-03-13": "Thursday, March 13th, 2025",
		"2025-03-22": "Saturday, March 22nd, 2025",
		"not-a-date": "not-a-date",
	}
	for in, want := range cases {
		if got := formatLongDate(in); got != want {
			t.Fatalf("formatLongDate(%q) = %q, want %q", in, got, want)
		}
	}
}
