package core

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"dentsync/pkg/domain"
)

// paymentCategory is the ledger category of transactions synthesized from a
// billing entry moving to Paid.
const paymentCategory = "Patient Payment"

// Reducer applies actions to application state. Apply is pure and total:
// every action yields a next state, unknown actions and stale entity
// references yield the input unchanged, and nothing ever panics or errors.
// The clock and id generator are injected so synthesized transactions are
// deterministic under test.
type Reducer struct {
	nowFn func() time.Time
	newID func() string
}

// NewReducer constructs a reducer with the wall clock and uuid generation.
func NewReducer() *Reducer {
	return &Reducer{
		nowFn: func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// NewReducerAt constructs a reducer with an explicit clock and id generator.
func NewReducerAt(now func() time.Time, newID func() string) *Reducer {
	r := NewReducer()
	if now != nil {
		r.nowFn = now
	}
	if newID != nil {
		r.newID = newID
	}
	return r
}

// Apply maps (state, action) to the next state. Mutated collections are
// fresh containers; untouched entries are shared structurally so consumers
// can rely on reference comparison to detect change.
func (r *Reducer) Apply(state AppState, action Action) AppState {
	switch a := action.(type) {
	case domain.SetUser:
		user := a.User
		state.IsAuthenticated = true
		state.IsAuthLoading = false
		state.User = &user
		return state
	case domain.Logout:
		state.IsAuthenticated = false
		state.IsAuthLoading = false
		state.User = nil
		return state
	case domain.UpdateSettings:
		return applySettingsPatch(state, a.Patch)
	case domain.AddPatient:
		state.Patients = appendPatient(state.Patients, a.Patient)
		return state
	case domain.UpdatePatient:
		state.Patients = mapPatient(state.Patients, a.Patient.ID, func(Patient) Patient {
			return a.Patient
		})
		return state
	case domain.AddAppointment:
		state.Appointments = append(copyAppointments(state.Appointments), a.Appointment)
		return state
	case domain.UpdateAppointment:
		next := copyAppointments(state.Appointments)
		for i := range next {
			if next[i].ID == a.Appointment.ID {
				next[i] = a.Appointment
			}
		}
		state.Appointments = next
		return state
	case domain.DeleteAppointment:
		next := make([]Appointment, 0, len(state.Appointments))
		for _, appt := range state.Appointments {
			if appt.ID != a.ID {
				next = append(next, appt)
			}
		}
		state.Appointments = next
		return state
	case domain.AddTransaction:
		state.Transactions = append(copyTransactions(state.Transactions), a.Transaction)
		return state
	case domain.UpdateTransaction:
		next := copyTransactions(state.Transactions)
		for i := range next {
			if next[i].ID == a.Transaction.ID {
				next[i] = a.Transaction
			}
		}
		state.Transactions = next
		return state
	case domain.DeleteTransaction:
		next := make([]FinancialTransaction, 0, len(state.Transactions))
		for _, tx := range state.Transactions {
			if tx.ID != a.ID {
				next = append(next, tx)
			}
		}
		state.Transactions = next
		return state
	case domain.AddShortcut:
		if a.Value == nil {
			return state
		}
		next := make([]Shortcut, len(state.Shortcuts), len(state.Shortcuts)+1)
		copy(next, state.Shortcuts)
		state.Shortcuts = append(next, Shortcut{ID: r.newID(), Value: a.Value})
		return state
	case domain.DeleteShortcut:
		next := make([]Shortcut, 0, len(state.Shortcuts))
		for _, sc := range state.Shortcuts {
			if sc.ID != a.ID {
				next = append(next, sc)
			}
		}
		state.Shortcuts = next
		return state
	case domain.AddPrescription:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.Prescriptions = append(copyPrescriptions(p.Prescriptions), a.Prescription)
			return p
		})
		return state
	case domain.UpdatePrescription:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			next := copyPrescriptions(p.Prescriptions)
			for i := range next {
				if next[i].ID == a.Prescription.ID {
					next[i] = a.Prescription
				}
			}
			p.Prescriptions = next
			return p
		})
		return state
	case domain.DeletePrescription:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			next := make([]Prescription, 0, len(p.Prescriptions))
			for _, pr := range p.Prescriptions {
				if pr.ID != a.PrescriptionID {
					next = append(next, pr)
				}
			}
			p.Prescriptions = next
			return p
		})
		return state
	case domain.AddBilling:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.Billing = append(copyBilling(p.Billing), a.Entry)
			if a.TreatmentPlanItemID != "" {
				plan := copyPlan(p.TreatmentPlan)
				for i := range plan {
					if plan[i].ID == a.TreatmentPlanItemID {
						plan[i].IsBilled = true
					}
				}
				p.TreatmentPlan = plan
			}
			return p
		})
		return state
	case domain.UpdateBilling:
		return r.applyBillingStatus(state, a)
	case domain.UpdateBillingItem:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			next := copyBilling(p.Billing)
			for i := range next {
				if next[i].ID == a.Entry.ID {
					next[i] = a.Entry
				}
			}
			p.Billing = next
			return p
		})
		return state
	case domain.AddCaseNote:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.CaseNotes = append(copyNotes(p.CaseNotes), a.Note)
			return p
		})
		return state
	case domain.AddGeneralNote:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.GeneralNotes = append(copyNotes(p.GeneralNotes), a.Note)
			return p
		})
		return state
	case domain.UpdateDentalChart:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.DentalChart = a.Chart
			return p
		})
		return state
	case domain.AddTreatmentPlanItem:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.TreatmentPlan = append(copyPlan(p.TreatmentPlan), a.Item)
			return p
		})
		return state
	case domain.UpdateTreatmentPlanItem:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			next := copyPlan(p.TreatmentPlan)
			for i := range next {
				if next[i].ID == a.Item.ID {
					next[i] = a.Item
				}
			}
			p.TreatmentPlan = next
			return p
		})
		return state
	case domain.DeleteTreatmentPlanItem:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			next := make([]TreatmentPlanItem, 0, len(p.TreatmentPlan))
			for _, item := range p.TreatmentPlan {
				if item.ID != a.ItemID {
					next = append(next, item)
				}
			}
			p.TreatmentPlan = next
			return p
		})
		return state
	case domain.AddDocument:
		state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
			p.Documents = append(copyDocuments(p.Documents), a.Document)
			return p
		})
		return state
	case domain.DeleteDocument:
		return applyDeleteDocument(state, a)
	default:
		return state
	}
}

// applyBillingStatus handles the status-only billing transition. The paid
// transition is the one place the reducer crosses entities: moving an entry
// from Pending to Paid appends exactly one income transaction. Re-applying
// Paid to an already-Paid entry appends nothing.
func (r *Reducer) applyBillingStatus(state AppState, a domain.UpdateBilling) AppState {
	var synthesized *FinancialTransaction

	state.Patients = mapPatient(state.Patients, a.PatientID, func(p Patient) Patient {
		for _, entry := range p.Billing {
			if entry.ID != a.BillingID {
				continue
			}
			if a.Status == BillingPaid && entry.Status != BillingPaid {
				synthesized = &FinancialTransaction{
					ID:          r.newID(),
					Date:        r.nowFn().Format("2006-01-02"),
					Type:        TransactionIncome,
					Category:    paymentCategory,
					Description: fmt.Sprintf("Payment from %s for \"%s\"", p.FullName(), entry.Description),
					Amount:      entry.Amount,
				}
			}
			break
		}
		next := copyBilling(p.Billing)
		for i := range next {
			if next[i].ID == a.BillingID {
				next[i].Status = a.Status
			}
		}
		p.Billing = next
		return p
	})

	if synthesized != nil {
		state.Transactions = append(copyTransactions(state.Transactions), *synthesized)
	}
	return state
}

// applyDeleteDocument removes a document by id. Unknown patient or document
// ids return the input state untouched: the container skips persistence when
// nothing changed, so this must be a literal no-op.
func applyDeleteDocument(state AppState, a domain.DeleteDocument) AppState {
	idx := -1
	for i := range state.Patients {
		if state.Patients[i].ID == a.PatientID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return state
	}

	p := state.Patients[idx]
	next := make([]Document, 0, len(p.Documents))
	for _, doc := range p.Documents {
		if doc.ID != a.DocumentID {
			next = append(next, doc)
		}
	}
	if len(next) == len(p.Documents) {
		return state
	}
	p.Documents = next

	patients := make([]Patient, len(state.Patients))
	copy(patients, state.Patients)
	patients[idx] = p
	state.Patients = patients
	return state
}

func applySettingsPatch(state AppState, patch domain.SettingsPatch) AppState {
	if patch.ClinicName != nil {
		state.Settings.Name = *patch.ClinicName
	}
	if patch.ClinicContactNumber != nil {
		state.Settings.ContactNumber = *patch.ClinicContactNumber
	}
	if patch.ClinicLogo != nil {
		state.Settings.Logo = *patch.ClinicLogo
	}
	if patch.ClinicAddress != nil {
		state.Settings.Address = *patch.ClinicAddress
	}
	if patch.WhatsAppTemplates != nil {
		state.WhatsAppTemplates = *patch.WhatsAppTemplates
	}
	return state
}

// mapPatient maps fn over the patient with the given id, producing a fresh
// patients slice. Unmatched ids produce an equivalent slice with every entry
// shared, which keeps stale-reference actions silent.
func mapPatient(patients []Patient, id string, fn func(Patient) Patient) []Patient {
	next := make([]Patient, len(patients))
	copy(next, patients)
	for i := range next {
		if next[i].ID == id {
			next[i] = fn(next[i])
		}
	}
	return next
}

func appendPatient(patients []Patient, p Patient) []Patient {
	next := make([]Patient, len(patients), len(patients)+1)
	copy(next, patients)
	return append(next, p)
}

// The copy helpers preserve the input's shape: nil stays nil and an empty
// normalized sub-collection stays [], so a stale-id map yields a state
// deep-equal to its input and the persisted layout keeps its arrays.

func copyAppointments(in []Appointment) []Appointment {
	if in == nil {
		return nil
	}
	next := make([]Appointment, len(in))
	copy(next, in)
	return next
}

func copyTransactions(in []FinancialTransaction) []FinancialTransaction {
	if in == nil {
		return nil
	}
	next := make([]FinancialTransaction, len(in))
	copy(next, in)
	return next
}

func copyPrescriptions(in []Prescription) []Prescription {
	if in == nil {
		return nil
	}
	next := make([]Prescription, len(in))
	copy(next, in)
	return next
}

func copyBilling(in []BillingEntry) []BillingEntry {
	if in == nil {
		return nil
	}
	next := make([]BillingEntry, len(in))
	copy(next, in)
	return next
}

func copyPlan(in []TreatmentPlanItem) []TreatmentPlanItem {
	if in == nil {
		return nil
	}
	next := make([]TreatmentPlanItem, len(in))
	copy(next, in)
	return next
}

func copyNotes(in []CaseNote) []CaseNote {
	if in == nil {
		return nil
	}
	next := make([]CaseNote, len(in))
	copy(next, in)
	return next
}

func copyDocuments(in []Document) []Document {
	if in == nil {
		return nil
	}
	next := make([]Document, len(in))
	copy(next, in)
	return next
}
