package domain

import (
	"fmt"
	"strings"
)

type EmergencyContact struct {
	Name      string
	Phone     string
	Relation  string
	IsPrimary bool
}

// MedicalProfile is the read-only record consulted when an emergency runs:
// who the person is, what responders should know, and who to notify.
type MedicalProfile struct {
	ID          string
	FullName    string
	DateOfBirth string
	BloodType   string
	Conditions  []string
	Medications []string
	Allergies   []string
	Notes       string
	Contacts    []EmergencyContact
}

func (p MedicalProfile) Validate() error {
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("full name is required")
	}
	for i, contact := range p.Contacts {
		if strings.TrimSpace(contact.Name) == "" {
			return fmt.Errorf("contact %d: name is required", i+1)
		}
		if strings.TrimSpace(contact.Phone) == "" {
			return fmt.Errorf("contact %q: phone is required", contact.Name)
		}
	}
	return nil
}

// PrimaryContacts returns the contacts flagged primary, in profile order.
func (p MedicalProfile) PrimaryContacts() []EmergencyContact {
	return p.contactsByPrimary(true)
}

// SecondaryContacts returns the contacts not flagged primary, in profile order.
func (p MedicalProfile) SecondaryContacts() []EmergencyContact {
	return p.contactsByPrimary(false)
}

func (p MedicalProfile) contactsByPrimary(primary bool) []EmergencyContact {
	out := make([]EmergencyContact, 0, len(p.Contacts))
	for _, contact := range p.Contacts {
		if contact.IsPrimary == primary {
			out = append(out, contact)
		}
	}
	return out
}
