package domain

// DefaultClinicName is applied when no clinic name has been configured.
const DefaultClinicName = "DentSync Clinic"

// DefaultWhatsAppTemplates returns the built-in message templates applied on
// first run and back-filled field-wise for stored payloads predating one of
// the templates.
func DefaultWhatsAppTemplates() WhatsAppTemplates {
	return WhatsAppTemplates{
		PatientReport: `Hello {{patient_name}},

This is from {{clinic_name}}.

Your dental report from your visit on {{visit_date}} with Dr. {{doctor_name}} is now ready.

{{report_summary}}

If you have any questions, feel free to reply to this message.

Thank you for choosing {{clinic_name}}!
Contact us: {{clinic_contact}}
Address: {{clinic_address}}

– Team {{clinic_name}}`,
		AppointmentConfirmation: `Hello {{patient_name}},

This is a confirmation for your appointment at *{{clinic_name}}*.

*Details:*
- *Procedure:* {{procedure}}
- *Doctor:* {{doctor_name}}
- *Date:* {{appointment_date}}
- *Time:* {{appointment_time}}

Please arrive 10 minutes early. If you need to reschedule, please contact us at {{clinic_contact}}.
Our Address: {{clinic_address}}

Thank you,
Team {{clinic_name}}`,
		AppointmentReminder: `Hello {{patient_name}},

This is a friendly reminder for your upcoming appointment at *{{clinic_name}}*.

*Details:*
- *Procedure:* {{procedure}}
- *Doctor:* {{doctor_name}}
- *Date:* {{appointment_date}}
- *Time:* {{appointment_time}}

We look forward to seeing you. If you have any questions or need to reschedule, please contact us at {{clinic_contact}}.
Our Address: {{clinic_address}}

Thank you,
Team {{clinic_name}}`,
	}
}

// AppState is the root application state. One value exists per process; the
// container owns it and hands out snapshots. Snapshots share untouched
// containers structurally, so consumers must treat them as read-only.
type AppState struct {
	IsAuthenticated bool
	IsAuthLoading   bool
	User            *User

	Settings          ClinicSettings
	Patients          []Patient
	Appointments      []Appointment
	Transactions      []FinancialTransaction
	Shortcuts         []Shortcut
	WhatsAppTemplates WhatsAppTemplates
}

// DefaultState returns the hard-coded startup state used before any persisted
// payload is merged in. Auth starts in the loading phase until the provider
// delivers its first notification.
func DefaultState() AppState {
	return AppState{
		IsAuthLoading:     true,
		Settings:          ClinicSettings{Name: DefaultClinicName},
		Patients:          []Patient{},
		Appointments:      []Appointment{},
		Transactions:      []FinancialTransaction{},
		Shortcuts:         []Shortcut{},
		WhatsAppTemplates: DefaultWhatsAppTemplates(),
	}
}

// PersistedState is the non-volatile projection written to durable storage.
// Session fields never appear here; they are re-derived from the auth
// subscription every run. The JSON layout is the storage contract.
type PersistedState struct {
	ClinicName          string                 `json:"clinicName"`
	ClinicContactNumber string                 `json:"clinicContactNumber"`
	ClinicLogo          string                 `json:"clinicLogo"`
	ClinicAddress       string                 `json:"clinicAddress"`
	Patients            []Patient              `json:"patients"`
	Appointments        []Appointment          `json:"appointments"`
	Transactions        []FinancialTransaction `json:"transactions"`
	Shortcuts           []Shortcut             `json:"shortcuts"`
	WhatsAppTemplates   WhatsAppTemplates      `json:"whatsappTemplates"`
}

// Persisted projects the non-volatile fields of the state.
func (s AppState) Persisted() PersistedState {
	return PersistedState{
		ClinicName:          s.Settings.Name,
		ClinicContactNumber: s.Settings.ContactNumber,
		ClinicLogo:          s.Settings.Logo,
		ClinicAddress:       s.Settings.Address,
		Patients:            s.Patients,
		Appointments:        s.Appointments,
		Transactions:        s.Transactions,
		Shortcuts:           s.Shortcuts,
		WhatsAppTemplates:   s.WhatsAppTemplates,
	}
}

// StateFromPersisted merges a normalized persisted payload over the default
// state. Session fields keep their startup values.
func StateFromPersisted(ps PersistedState) AppState {
	ps = NormalizePersisted(ps)
	state := DefaultState()
	state.Settings = ClinicSettings{
		Name:          ps.ClinicName,
		ContactNumber: ps.ClinicContactNumber,
		Logo:          ps.ClinicLogo,
		Address:       ps.ClinicAddress,
	}
	state.Patients = ps.Patients
	state.Appointments = ps.Appointments
	state.Transactions = ps.Transactions
	state.Shortcuts = ps.Shortcuts
	state.WhatsAppTemplates = ps.WhatsAppTemplates
	return state
}

// NormalizePersisted back-fills fields that older stored payloads lack. It
// runs unconditionally on every load: patients gain empty sub-collections,
// missing templates fall back to the defaults, and the clinic name falls back
// to DefaultClinicName. This is the forward-compatible schema migration.
func NormalizePersisted(ps PersistedState) PersistedState {
	if ps.ClinicName == "" {
		ps.ClinicName = DefaultClinicName
	}
	if ps.Patients == nil {
		ps.Patients = []Patient{}
	}
	for i := range ps.Patients {
		normalizePatient(&ps.Patients[i])
	}
	if ps.Appointments == nil {
		ps.Appointments = []Appointment{}
	}
	if ps.Transactions == nil {
		ps.Transactions = []FinancialTransaction{}
	}
	if ps.Shortcuts == nil {
		ps.Shortcuts = []Shortcut{}
	}
	defaults := DefaultWhatsAppTemplates()
	if ps.WhatsAppTemplates.PatientReport == "" {
		ps.WhatsAppTemplates.PatientReport = defaults.PatientReport
	}
	if ps.WhatsAppTemplates.AppointmentConfirmation == "" {
		ps.WhatsAppTemplates.AppointmentConfirmation = defaults.AppointmentConfirmation
	}
	if ps.WhatsAppTemplates.AppointmentReminder == "" {
		ps.WhatsAppTemplates.AppointmentReminder = defaults.AppointmentReminder
	}
	return ps
}

func normalizePatient(p *Patient) {
	if p.DentalChart == nil {
		p.DentalChart = DentalChart{}
	}
	if p.TreatmentPlan == nil {
		p.TreatmentPlan = []TreatmentPlanItem{}
	}
	if p.CaseNotes == nil {
		p.CaseNotes = []CaseNote{}
	}
	if p.GeneralNotes == nil {
		p.GeneralNotes = []CaseNote{}
	}
	if p.Prescriptions == nil {
		p.Prescriptions = []Prescription{}
	}
	if p.Billing == nil {
		p.Billing = []BillingEntry{}
	}
	if p.Documents == nil {
		p.Documents = []Document{}
	}
}
