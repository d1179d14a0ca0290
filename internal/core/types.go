package core

import "dentsync/pkg/domain"

type (
	AppState             = domain.AppState
	Action               = domain.Action
	ActionType           = domain.ActionType
	Patient              = domain.Patient
	Appointment          = domain.Appointment
	FinancialTransaction = domain.FinancialTransaction
	BillingEntry         = domain.BillingEntry
	Prescription         = domain.Prescription
	TreatmentPlanItem    = domain.TreatmentPlanItem
	CaseNote             = domain.CaseNote
	Document             = domain.Document
	Shortcut             = domain.Shortcut
	DentalChart          = domain.DentalChart
	PersistedState       = domain.PersistedState
	Persister            = domain.Persister
	User                 = domain.User
)

const (
	BillingPending = domain.BillingPending
	BillingPaid    = domain.BillingPaid

	TransactionIncome  = domain.TransactionIncome
	TransactionExpense = domain.TransactionExpense
)
