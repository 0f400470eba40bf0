package blob

import (
	"fmt"
	"time"

	"github.com/avomont/lifeline/internal/domain"
)

const currentSchemaVersion = 1

type sessionDocument struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

type sessionSchema struct {
	ID               string             `toml:"id"`
	StartTime        string             `toml:"start_time"`
	Status           string             `toml:"status"`
	Location         *locationSchema    `toml:"location,omitempty"`
	MedicalProfileID string             `toml:"medical_profile_id,omitempty"`
	ContactsNotified []string           `toml:"contacts_notified,omitempty"`
	AuditLog         []auditEntrySchema `toml:"audit_log,omitempty"`
}

type locationSchema struct {
	Latitude  float64 `toml:"latitude"`
	Longitude float64 `toml:"longitude"`
	Accuracy  float64 `toml:"accuracy"`
	Timestamp string  `toml:"timestamp"`
}

type auditEntrySchema struct {
	Timestamp string `toml:"timestamp"`
	Action    string `toml:"action"`
	Details   string `toml:"details,omitempty"`
	UserID    string `toml:"user_id,omitempty"`
}

type profileDocument struct {
	Version int           `toml:"version"`
	Profile profileSchema `toml:"profile"`
}

type profileSchema struct {
	ID          string          `toml:"id"`
	FullName    string          `toml:"full_name"`
	DateOfBirth string          `toml:"date_of_birth,omitempty"`
	BloodType   string          `toml:"blood_type,omitempty"`
	Conditions  []string        `toml:"conditions,omitempty"`
	Medications []string        `toml:"medications,omitempty"`
	Allergies   []string        `toml:"allergies,omitempty"`
	Notes       string          `toml:"notes,omitempty"`
	Contacts    []contactSchema `toml:"contacts,omitempty"`
}

type contactSchema struct {
	Name      string `toml:"name"`
	Phone     string `toml:"phone"`
	Relation  string `toml:"relation,omitempty"`
	IsPrimary bool   `toml:"primary,omitempty"`
}

type auditDocument struct {
	Version int                `toml:"version"`
	Entries []auditEntrySchema `toml:"entries,omitempty"`
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported schema version %d (current %d)", version, currentSchemaVersion)
	}

	return nil
}

func toSessionSchema(session domain.EmergencySession) sessionSchema {
	encoded := sessionSchema{
		ID:               session.ID,
		StartTime:        formatTime(session.StartTime),
		Status:           string(session.Status),
		MedicalProfileID: session.MedicalProfileID,
		ContactsNotified: session.ContactsNotified,
	}

	if session.Location != nil {
		encoded.Location = &locationSchema{
			Latitude:  session.Location.Latitude,
			Longitude: session.Location.Longitude,
			Accuracy:  session.Location.Accuracy,
			Timestamp: formatTime(session.Location.Timestamp),
		}
	}

	for _, entry := range session.AuditLog {
		encoded.AuditLog = append(encoded.AuditLog, toAuditEntrySchema(entry))
	}

	return encoded
}

func fromSessionSchema(encoded sessionSchema) domain.EmergencySession {
	session := domain.EmergencySession{
		ID:               encoded.ID,
		StartTime:        parseTime(encoded.StartTime),
		Status:           domain.EmergencyStatus(encoded.Status),
		MedicalProfileID: encoded.MedicalProfileID,
		ContactsNotified: encoded.ContactsNotified,
	}

	if encoded.Location != nil {
		session.Location = &domain.LocationFix{
			Latitude:  encoded.Location.Latitude,
			Longitude: encoded.Location.Longitude,
			Accuracy:  encoded.Location.Accuracy,
			Timestamp: parseTime(encoded.Location.Timestamp),
		}
	}

	for _, entry := range encoded.AuditLog {
		session.AuditLog = append(session.AuditLog, fromAuditEntrySchema(entry))
	}

	return session
}

func toProfileSchema(profile domain.MedicalProfile) profileSchema {
	encoded := profileSchema{
		ID:          profile.ID,
		FullName:    profile.FullName,
		DateOfBirth: profile.DateOfBirth,
		BloodType:   profile.BloodType,
		Conditions:  profile.Conditions,
		Medications: profile.Medications,
		Allergies:   profile.Allergies,
		Notes:       profile.Notes,
	}

	for _, contact := range profile.Contacts {
		encoded.Contacts = append(encoded.Contacts, contactSchema{
			Name:      contact.Name,
			Phone:     contact.Phone,
			Relation:  contact.Relation,
			IsPrimary: contact.IsPrimary,
		})
	}

	return encoded
}

func fromProfileSchema(encoded profileSchema) domain.MedicalProfile {
	profile := domain.MedicalProfile{
		ID:          encoded.ID,
		FullName:    encoded.FullName,
		DateOfBirth: encoded.DateOfBirth,
		BloodType:   encoded.BloodType,
		Conditions:  encoded.Conditions,
		Medications: encoded.Medications,
		Allergies:   encoded.Allergies,
		Notes:       encoded.Notes,
	}

	for _, contact := range encoded.Contacts {
		profile.Contacts = append(profile.Contacts, domain.EmergencyContact{
			Name:      contact.Name,
			Phone:     contact.Phone,
			Relation:  contact.Relation,
			IsPrimary: contact.IsPrimary,
		})
	}

	return profile
}

func toAuditEntrySchema(entry domain.AuditEntry) auditEntrySchema {
	return auditEntrySchema{
		Timestamp: formatTime(entry.Timestamp),
		Action:    string(entry.Action),
		Details:   entry.Details,
		UserID:    entry.UserID,
	}
}

func fromAuditEntrySchema(encoded auditEntrySchema) domain.AuditEntry {
	return domain.AuditEntry{
		Timestamp: parseTime(encoded.Timestamp),
		Action:    domain.AuditAction(encoded.Action),
		Details:   encoded.Details,
		UserID:    encoded.UserID,
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339Nano)
}
