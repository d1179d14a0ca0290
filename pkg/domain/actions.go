package domain

// ActionType names a reducer action. The values double as metric labels.
type ActionType string

// The complete action vocabulary.
const (
	ActionSetUser                 ActionType = "set_user"
	ActionLogout                  ActionType = "logout"
	ActionUpdateSettings          ActionType = "update_settings"
	ActionAddPatient              ActionType = "add_patient"
	ActionUpdatePatient           ActionType = "update_patient"
	ActionAddAppointment          ActionType = "add_appointment"
	ActionUpdateAppointment       ActionType = "update_appointment"
	ActionDeleteAppointment       ActionType = "delete_appointment"
	ActionAddTransaction          ActionType = "add_transaction"
	ActionUpdateTransaction       ActionType = "update_transaction"
	ActionDeleteTransaction       ActionType = "delete_transaction"
	ActionAddShortcut             ActionType = "add_shortcut"
	ActionDeleteShortcut          ActionType = "delete_shortcut"
	ActionAddPrescription         ActionType = "add_prescription"
	ActionUpdatePrescription      ActionType = "update_prescription"
	ActionDeletePrescription      ActionType = "delete_prescription"
	ActionAddBilling              ActionType = "add_billing"
	ActionUpdateBilling           ActionType = "update_billing"
	ActionUpdateBillingItem       ActionType = "update_billing_item"
	ActionAddCaseNote             ActionType = "add_case_note"
	ActionAddGeneralNote          ActionType = "add_general_note"
	ActionUpdateDentalChart       ActionType = "update_dental_chart"
	ActionAddTreatmentPlanItem    ActionType = "add_treatment_plan_item"
	ActionUpdateTreatmentPlanItem ActionType = "update_treatment_plan_item"
	ActionDeleteTreatmentPlanItem ActionType = "delete_treatment_plan_item"
	ActionAddDocument             ActionType = "add_document"
	ActionDeleteDocument          ActionType = "delete_document"
)

// Action is the tagged record dispatched into the reducer. Payload validation
// for required-field presence is the dispatcher's responsibility; the reducer
// trusts shaped input and never rejects an action.
type Action interface {
	ActionType() ActionType
}

// SettingsPatch is a partial update of the clinic settings. Nil fields are
// retained unchanged; a non-nil templates pointer replaces all three
// templates wholesale, matching the shallow-merge contract.
type SettingsPatch struct {
	ClinicName          *string
	ClinicContactNumber *string
	ClinicLogo          *string
	ClinicAddress       *string
	WhatsAppTemplates   *WhatsAppTemplates
}

// SetUser marks the session authenticated with the provider-supplied user.
type SetUser struct{ User User }

// Logout clears the session.
type Logout struct{}

// UpdateSettings merges a partial settings patch into the clinic settings.
type UpdateSettings struct{ Patch SettingsPatch }

// AddPatient appends a new patient record.
type AddPatient struct{ Patient Patient }

// UpdatePatient replaces a patient by id. Unknown ids are a silent no-op;
// the action never upserts.
type UpdatePatient struct{ Patient Patient }

// AddAppointment appends an appointment.
type AddAppointment struct{ Appointment Appointment }

// UpdateAppointment replaces an appointment by id.
type UpdateAppointment struct{ Appointment Appointment }

// DeleteAppointment removes an appointment by id.
type DeleteAppointment struct{ ID string }

// AddTransaction appends a ledger entry.
type AddTransaction struct{ Transaction FinancialTransaction }

// UpdateTransaction replaces a ledger entry by id.
type UpdateTransaction struct{ Transaction FinancialTransaction }

// DeleteTransaction removes a ledger entry by id.
type DeleteTransaction struct{ ID string }

// AddShortcut appends a shortcut. The reducer assigns a generated id.
type AddShortcut struct{ Value ShortcutValue }

// DeleteShortcut removes a shortcut by id.
type DeleteShortcut struct{ ID string }

// AddPrescription appends a prescription to one patient.
type AddPrescription struct {
	PatientID    string
	Prescription Prescription
}

// UpdatePrescription replaces a prescription by id within one patient.
type UpdatePrescription struct {
	PatientID    string
	Prescription Prescription
}

// DeletePrescription removes a prescription by id within one patient.
type DeletePrescription struct {
	PatientID      string
	PrescriptionID string
}

// AddBilling appends a billing entry. When TreatmentPlanItemID is set, the
// referenced plan item's isBilled latch is set in the same update; an unknown
// plan item id leaves the latch untouched but still appends the entry.
type AddBilling struct {
	PatientID           string
	Entry               BillingEntry
	TreatmentPlanItemID string
}

// UpdateBilling is the status-only billing transition. A Pending entry moving
// to Paid synthesizes exactly one income transaction.
type UpdateBilling struct {
	PatientID string
	BillingID string
	Status    BillingStatus
}

// UpdateBillingItem replaces a billing entry wholesale. It never synthesizes
// a transaction; status transitions that should do so go through
// UpdateBilling instead.
type UpdateBillingItem struct {
	PatientID string
	Entry     BillingEntry
}

// AddCaseNote appends a case note. Notes are append-only: no update or
// delete action exists for them.
type AddCaseNote struct {
	PatientID string
	Note      CaseNote
}

// AddGeneralNote appends a general note. Append-only, like case notes.
type AddGeneralNote struct {
	PatientID string
	Note      CaseNote
}

// UpdateDentalChart replaces a patient's whole chart with the supplied map.
type UpdateDentalChart struct {
	PatientID string
	Chart     DentalChart
}

// AddTreatmentPlanItem appends a plan item to one patient.
type AddTreatmentPlanItem struct {
	PatientID string
	Item      TreatmentPlanItem
}

// UpdateTreatmentPlanItem replaces a plan item by id within one patient.
type UpdateTreatmentPlanItem struct {
	PatientID string
	Item      TreatmentPlanItem
}

// DeleteTreatmentPlanItem removes a plan item by id within one patient.
type DeleteTreatmentPlanItem struct {
	PatientID string
	ItemID    string
}

// AddDocument appends a document attachment to one patient.
type AddDocument struct {
	PatientID string
	Document  Document
}

// DeleteDocument removes a document by id. Unknown patient or document ids
// return the state untouched so no spurious persistence write occurs.
type DeleteDocument struct {
	PatientID  string
	DocumentID string
}

func (SetUser) ActionType() ActionType                 { return ActionSetUser }
func (Logout) ActionType() ActionType                  { return ActionLogout }
func (UpdateSettings) ActionType() ActionType          { return ActionUpdateSettings }
func (AddPatient) ActionType() ActionType              { return ActionAddPatient }
func (UpdatePatient) ActionType() ActionType           { return ActionUpdatePatient }
func (AddAppointment) ActionType() ActionType          { return ActionAddAppointment }
func (UpdateAppointment) ActionType() ActionType       { return ActionUpdateAppointment }
func (DeleteAppointment) ActionType() ActionType       { return ActionDeleteAppointment }
func (AddTransaction) ActionType() ActionType          { return ActionAddTransaction }
func (UpdateTransaction) ActionType() ActionType       { return ActionUpdateTransaction }
func (DeleteTransaction) ActionType() ActionType       { return ActionDeleteTransaction }
func (AddShortcut) ActionType() ActionType             { return ActionAddShortcut }
func (DeleteShortcut) ActionType() ActionType          { return ActionDeleteShortcut }
func (AddPrescription) ActionType() ActionType         { return ActionAddPrescription }
func (UpdatePrescription) ActionType() ActionType      { return ActionUpdatePrescription }
func (DeletePrescription) ActionType() ActionType      { return ActionDeletePrescription }
func (AddBilling) ActionType() ActionType              { return ActionAddBilling }
func (UpdateBilling) ActionType() ActionType           { return ActionUpdateBilling }
func (UpdateBillingItem) ActionType() ActionType       { return ActionUpdateBillingItem }
func (AddCaseNote) ActionType() ActionType             { return ActionAddCaseNote }
func (AddGeneralNote) ActionType() ActionType          { return ActionAddGeneralNote }
func (UpdateDentalChart) ActionType() ActionType       { return ActionUpdateDentalChart }
func (AddTreatmentPlanItem) ActionType() ActionType    { return ActionAddTreatmentPlanItem }
func (UpdateTreatmentPlanItem) ActionType() ActionType { return ActionUpdateTreatmentPlanItem }
func (DeleteTreatmentPlanItem) ActionType() ActionType { return ActionDeleteTreatmentPlanItem }
func (AddDocument) ActionType() ActionType             { return ActionAddDocument }
func (DeleteDocument) ActionType() ActionType          { return ActionDeleteDocument }
