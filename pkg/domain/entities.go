// Package domain defines the persistent entities, value types, and action
// vocabulary of the dentsync state core.
package domain

// Gender enumerates the demographic options captured on a patient record.
type Gender string

// Supported patient gender values.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ToothCondition enumerates the states a tooth can be charted with.
type ToothCondition string

// Canonical dental chart conditions. A tooth absent from the chart is Healthy.
const (
	ToothHealthy ToothCondition = "Healthy"
	ToothCaries  ToothCondition = "Caries"
	ToothFilling ToothCondition = "Filling"
	ToothCrown   ToothCondition = "Crown"
	ToothRCT     ToothCondition = "RCT"
	ToothMissing ToothCondition = "Missing"
	ToothImplant ToothCondition = "Implant"
	ToothOther   ToothCondition = "Other"
)

// TreatmentStatus enumerates treatment plan item lifecycle states. Any status
// may be set to any other by a direct edit; no transition graph is enforced.
type TreatmentStatus string

// Canonical treatment plan statuses.
const (
	TreatmentPlanned    TreatmentStatus = "Planned"
	TreatmentInProgress TreatmentStatus = "In Progress"
	TreatmentCompleted  TreatmentStatus = "Completed"
	TreatmentOnHold     TreatmentStatus = "On Hold"
)

// PrescriptionStatus enumerates prescription lifecycle states.
type PrescriptionStatus string

// Canonical prescription statuses.
const (
	PrescriptionActive       PrescriptionStatus = "Active"
	PrescriptionCompleted    PrescriptionStatus = "Completed"
	PrescriptionDiscontinued PrescriptionStatus = "Discontinued"
)

// BillingStatus enumerates billing entry states. Paid is terminal: no action
// transitions an entry back to Pending.
type BillingStatus string

// Canonical billing statuses.
const (
	BillingPending BillingStatus = "Pending"
	BillingPaid    BillingStatus = "Paid"
)

// TransactionType distinguishes ledger entries.
type TransactionType string

// Canonical financial transaction types.
const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// ToothRecord captures the charted condition and free-text notes for one tooth.
type ToothRecord struct {
	Condition ToothCondition `json:"condition"`
	Notes     string         `json:"notes"`
}

// DentalChart maps tooth identifiers (FDI numbers or primary letters) to
// their records. The map is sparse: an absent id means Healthy with no notes.
type DentalChart map[string]ToothRecord

// MedicalHistory holds free-text allergy and condition summaries.
type MedicalHistory struct {
	Allergies  string `json:"allergies"`
	Conditions string `json:"conditions"`
}

// TreatmentPlanItem is a planned or performed procedure on a patient.
// IsBilled is a one-way latch set when a billing entry links the item.
type TreatmentPlanItem struct {
	ID        string          `json:"id"`
	Procedure string          `json:"procedure"`
	Tooth     string          `json:"tooth"`
	Status    TreatmentStatus `json:"status"`
	Cost      float64         `json:"cost"`
	Date      string          `json:"date"`
	IsBilled  bool            `json:"isBilled,omitempty"`
}

// CaseNote is an append-only dated note. Case and general notes share the shape.
type CaseNote struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Note string `json:"note"`
}

// Prescription records a medication issued to a patient.
type Prescription struct {
	ID           string             `json:"id"`
	Medication   string             `json:"medication"`
	Dosage       string             `json:"dosage"`
	Frequency    string             `json:"frequency"`
	DrugType     string             `json:"drugType"`
	Duration     string             `json:"duration"`
	Route        string             `json:"route"`
	Instructions string             `json:"instructions"`
	Advice       string             `json:"advice"`
	Doctor       string             `json:"doctor"`
	Status       PrescriptionStatus `json:"status"`
	StartDate    string             `json:"startDate"`
	EndDate      string             `json:"endDate"`
}

// BillingEntry is a single charge to a patient.
type BillingEntry struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Description string        `json:"description"`
	Amount      float64       `json:"amount"`
	Status      BillingStatus `json:"status"`
}

// Document is an opaque attachment stored as a data URL plus metadata.
type Document struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Size       int64  `json:"size"`
	URL        string `json:"url"`
	UploadedAt string `json:"uploadedAt"`
}

// Patient is the root patient record. Patients are created and mutated but
// never deleted; no delete action exists for them.
type Patient struct {
	ID             string              `json:"id"`
	FirstName      string              `json:"firstName"`
	LastName       string              `json:"lastName"`
	DateOfBirth    string              `json:"dateOfBirth"`
	Gender         Gender              `json:"gender"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email"`
	Address        string              `json:"address"`
	MedicalHistory MedicalHistory      `json:"medicalHistory"`
	DentalChart    DentalChart         `json:"dentalChart"`
	TreatmentPlan  []TreatmentPlanItem `json:"treatmentPlan"`
	CaseNotes      []CaseNote          `json:"caseNotes"`
	GeneralNotes   []CaseNote          `json:"generalNotes"`
	Prescriptions  []Prescription      `json:"prescriptions"`
	Billing        []BillingEntry      `json:"billing"`
	Documents      []Document          `json:"documents"`
}

// FullName returns the display name used in synthesized transaction
// descriptions and rendered messages.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Appointment references a patient by id. The reference is validated by the
// caller at creation time only; nothing repairs references afterwards.
type Appointment struct {
	ID          string `json:"id"`
	PatientID   string `json:"patientId"`
	PatientName string `json:"patientName"`
	Doctor      string `json:"doctor"`
	Procedure   string `json:"procedure"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// FinancialTransaction is an entry in the clinic ledger, independent of
// patients. Entries are recorded directly or synthesized from billing.
type FinancialTransaction struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
}

// WhatsAppTemplates holds the three named message templates. Placeholders use
// the {{token}} form and are substituted by the reports adapter.
type WhatsAppTemplates struct {
	PatientReport           string `json:"patientReport"`
	AppointmentConfirmation string `json:"appointmentConfirmation"`
	AppointmentReminder     string `json:"appointmentReminder"`
}

// ClinicSettings groups the clinic identity fields mutated by the
// settings-update action. The logo is a data URL.
type ClinicSettings struct {
	Name          string `json:"clinicName"`
	ContactNumber string `json:"clinicContactNumber"`
	Logo          string `json:"clinicLogo"`
	Address       string `json:"clinicAddress"`
}

// User is the opaque record delivered by the external auth provider.
type User struct {
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
	PhotoURL    string `json:"photoURL"`
}

// ClonePatient returns a deep copy of a patient record. Sub-collection slices
// and the chart map are fresh containers so callers can mutate the copy
// without aliasing committed state.
func ClonePatient(p Patient) Patient {
	cp := p
	if p.DentalChart != nil {
		cp.DentalChart = make(DentalChart, len(p.DentalChart))
		for k, v := range p.DentalChart {
			cp.DentalChart[k] = v
		}
	}
	cp.TreatmentPlan = append([]TreatmentPlanItem(nil), p.TreatmentPlan...)
	cp.CaseNotes = append([]CaseNote(nil), p.CaseNotes...)
	cp.GeneralNotes = append([]CaseNote(nil), p.GeneralNotes...)
	cp.Prescriptions = append([]Prescription(nil), p.Prescriptions...)
	cp.Billing = append([]BillingEntry(nil), p.Billing...)
	cp.Documents = append([]Document(nil), p.Documents...)
	return cp
}
