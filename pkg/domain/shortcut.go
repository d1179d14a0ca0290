package domain

import (
	"encoding/json"
	"fmt"
)

// ShortcutCategory identifies which form a shortcut pre-fills.
type ShortcutCategory string

// Supported shortcut categories. Each carries a distinct value payload.
const (
	ShortcutNotes         ShortcutCategory = "notes"
	ShortcutDoctors       ShortcutCategory = "doctors"
	ShortcutBilling       ShortcutCategory = "billing"
	ShortcutPrescriptions ShortcutCategory = "prescriptions"
)

// ShortcutValue is the closed union of shortcut payload variants. Consumers
// switch exhaustively on the concrete type.
type ShortcutValue interface {
	shortcutCategory() ShortcutCategory
}

// NoteShortcutValue pre-fills a case or general note field.
type NoteShortcutValue string

// DoctorShortcutValue pre-fills a doctor name field.
type DoctorShortcutValue string

// BillingShortcutValue pre-fills a billing entry form.
type BillingShortcutValue struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// PrescriptionShortcutValue pre-fills a prescription form. It is a partial
// prescription: identity and date fields are always supplied by the form.
type PrescriptionShortcutValue struct {
	Medication   string             `json:"medication,omitempty"`
	Dosage       string             `json:"dosage,omitempty"`
	Frequency    string             `json:"frequency,omitempty"`
	DrugType     string             `json:"drugType,omitempty"`
	Duration     string             `json:"duration,omitempty"`
	Route        string             `json:"route,omitempty"`
	Instructions string             `json:"instructions,omitempty"`
	Advice       string             `json:"advice,omitempty"`
	Doctor       string             `json:"doctor,omitempty"`
	Status       PrescriptionStatus `json:"status,omitempty"`
}

func (NoteShortcutValue) shortcutCategory() ShortcutCategory         { return ShortcutNotes }
func (DoctorShortcutValue) shortcutCategory() ShortcutCategory       { return ShortcutDoctors }
func (BillingShortcutValue) shortcutCategory() ShortcutCategory      { return ShortcutBilling }
func (PrescriptionShortcutValue) shortcutCategory() ShortcutCategory { return ShortcutPrescriptions }

// Shortcut is a reusable form-filler item tagged by category.
type Shortcut struct {
	ID    string
	Value ShortcutValue
}

// Category reports the category tag of the shortcut's value. Empty when the
// value is absent.
func (s Shortcut) Category() ShortcutCategory {
	if s.Value == nil {
		return ""
	}
	return s.Value.shortcutCategory()
}

type shortcutEnvelope struct {
	ID       string           `json:"id"`
	Category ShortcutCategory `json:"category"`
	Value    json.RawMessage  `json:"value"`
}

// MarshalJSON serializes the shortcut as the tagged record persisted by the
// application: {id, category, value}.
func (s Shortcut) MarshalJSON() ([]byte, error) {
	if s.Value == nil {
		return nil, fmt.Errorf("shortcut %q has no value", s.ID)
	}
	value, err := json.Marshal(s.Value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(shortcutEnvelope{ID: s.ID, Category: s.Category(), Value: value})
}

// UnmarshalJSON hydrates the category-appropriate variant from the tagged record.
func (s *Shortcut) UnmarshalJSON(data []byte) error {
	var env shortcutEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	var value ShortcutValue
	switch env.Category {
	case ShortcutNotes:
		var v NoteShortcutValue
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		value = v
	case ShortcutDoctors:
		var v DoctorShortcutValue
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		value = v
	case ShortcutBilling:
		var v BillingShortcutValue
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		value = v
	case ShortcutPrescriptions:
		var v PrescriptionShortcutValue
		if err := json.Unmarshal(env.Value, &v); err != nil {
			return err
		}
		value = v
	default:
		return fmt.Errorf("unknown shortcut category %q", env.Category)
	}
	*s = Shortcut{ID: env.ID, Value: value}
	return nil
}
