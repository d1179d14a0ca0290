package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"dentsync/pkg/domain"
)

// Sections selects which parts of the patient record a summary includes.
type Sections struct {
	DentalChart   bool
	TreatmentPlan bool
	Prescriptions bool
	CaseNotes     bool
	Billing       bool
	Documents     bool
}

// AllSections selects everything.
func AllSections() Sections {
	return Sections{DentalChart: true, TreatmentPlan: true, Prescriptions: true, CaseNotes: true, Billing: true, Documents: true}
}

// VisitOptions carries the per-visit fields a patient report needs beyond the
// patient record itself.
type VisitOptions struct {
	DoctorName string
	VisitDate  string
}

const (
	fallbackPhone   = "[Clinic Phone Number]"
	fallbackAddress = "[Clinic Address]"
)

// PatientReportSummary builds the plain-text report body for the selected
// sections. Charted teeth are listed in ascending id order; case notes are
// limited to the two most recent; billing reports the outstanding total.
func PatientReportSummary(p domain.Patient, sections Sections) string {
	var b strings.Builder
	contentAdded := false

	if sections.DentalChart && len(p.DentalChart) > 0 {
		ids := make([]string, 0, len(p.DentalChart))
		for id, rec := range p.DentalChart {
			if rec.Condition != domain.ToothHealthy {
				ids = append(ids, id)
			}
		}
		if len(ids) > 0 {
			sort.Strings(ids)
			b.WriteString("*Dental Summary*:\n")
			for _, id := range ids {
				rec := p.DentalChart[id]
				if rec.Notes != "" {
					fmt.Fprintf(&b, "- Tooth %s: %s (%s)\n", id, rec.Condition, rec.Notes)
				} else {
					fmt.Fprintf(&b, "- Tooth %s: %s\n", id, rec.Condition)
				}
			}
			b.WriteString("\n")
			contentAdded = true
		}
	}

	if sections.TreatmentPlan && len(p.TreatmentPlan) > 0 {
		b.WriteString("*Treatment Plan*:\n")
		for _, item := range p.TreatmentPlan {
			tooth := item.Tooth
			if tooth == "" {
				tooth = "N/A"
			}
			fmt.Fprintf(&b, "- %s (Tooth: %s), Cost: ₹%.2f, Status: %s\n", item.Procedure, tooth, item.Cost, item.Status)
		}
		b.WriteString("\n")
		contentAdded = true
	}

	if sections.Prescriptions && len(p.Prescriptions) > 0 {
		b.WriteString("*Prescriptions*:\n")
		for _, rx := range p.Prescriptions {
			fmt.Fprintf(&b, "- %s %s (%s)\n", rx.Medication, rx.Dosage, rx.Status)
		}
		b.WriteString("\n")
		contentAdded = true
	}

	if sections.CaseNotes && len(p.CaseNotes) > 0 {
		b.WriteString("*Recent Case Notes*:\n")
		notes := p.CaseNotes
		if len(notes) > 2 {
			notes = notes[len(notes)-2:]
		}
		for _, n := range notes {
			fmt.Fprintf(&b, "- (%s) %s\n", n.Date, n.Note)
		}
		b.WriteString("\n")
		contentAdded = true
	}

	if sections.Billing && len(p.Billing) > 0 {
		b.WriteString("*Billing Summary*:\n")
		fmt.Fprintf(&b, "- Total Outstanding: *₹%.2f*\n", OutstandingBalance(p.Billing))
		b.WriteString("\n")
		contentAdded = true
	}

	if !contentAdded {
		b.WriteString("No information to report for the selected sections.\n")
	}
	return strings.TrimSpace(b.String())
}

// OutstandingBalance sums the pending billing entries.
func OutstandingBalance(entries []domain.BillingEntry) float64 {
	var total float64
	for _, e := range entries {
		if e.Status == domain.BillingPending {
			total += e.Amount
		}
	}
	return total
}

// PatientReportMessage renders the patient-report template with the report
// summary and clinic identity substituted in.
func PatientReportMessage(p domain.Patient, settings domain.ClinicSettings, sections Sections, visit VisitOptions, tpl string) string {
	return RenderTemplate(tpl, map[string]string{
		"patient_name":   p.FullName(),
		"clinic_name":    settings.Name,
		"clinic_contact": orFallback(settings.ContactNumber, fallbackPhone),
		"clinic_address": orFallback(settings.Address, fallbackAddress),
		"visit_date":     visit.VisitDate,
		"doctor_name":    visit.DoctorName,
		"report_summary": PatientReportSummary(p, sections),
	})
}

// AppointmentConfirmationMessage renders the confirmation template for one
// appointment.
func AppointmentConfirmationMessage(appt domain.Appointment, p domain.Patient, settings domain.ClinicSettings, tpl string) string {
	return RenderTemplate(tpl, appointmentReplacements(appt, p, settings))
}

// AppointmentReminderMessage renders the reminder template for one appointment.
func AppointmentReminderMessage(appt domain.Appointment, p domain.Patient, settings domain.ClinicSettings, tpl string) string {
	return RenderTemplate(tpl, appointmentReplacements(appt, p, settings))
}

func appointmentReplacements(appt domain.Appointment, p domain.Patient, settings domain.ClinicSettings) map[string]string {
	return map[string]string{
		"patient_name":     p.FullName(),
		"clinic_name":      settings.Name,
		"clinic_contact":   orFallback(settings.ContactNumber, fallbackPhone),
		"clinic_address":   orFallback(settings.Address, fallbackAddress),
		"procedure":        appt.Procedure,
		"doctor_name":      appt.Doctor,
		"appointment_date": formatLongDate(appt.Date),
		"appointment_time": appt.Time,
	}
}

// formatLongDate renders an ISO date as e.g. "Friday, August 29th, 2025".
// Unparseable inputs pass through untouched.
func formatLongDate(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return fmt.Sprintf("%s, %s %d%s, %d", t.Weekday(), t.Month(), t.Day(), ordinalSuffix(t.Day()), t.Year())
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func orFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
