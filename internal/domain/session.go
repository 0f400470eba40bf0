package domain

import (
	"fmt"
	"time"
)

type EmergencyStatus string

const (
	StatusDetection    EmergencyStatus = "detection"
	StatusConfirmation EmergencyStatus = "confirmation"
	StatusInProgress   EmergencyStatus = "in_progress"
	StatusFollowUp     EmergencyStatus = "follow_up"
	StatusCompleted    EmergencyStatus = "completed"
	StatusCancelled    EmergencyStatus = "cancelled"
)

func (s EmergencyStatus) Valid() bool {
	switch s {
	case StatusDetection, StatusConfirmation, StatusInProgress, StatusFollowUp, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are permitted from s.
func (s EmergencyStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo encodes the session lifecycle graph. Cancellation is
// reachable from every non-terminal state past detection; completion is
// reachable from follow_up and, as a short-circuit, from in_progress.
func (s EmergencyStatus) CanTransitionTo(next EmergencyStatus) bool {
	switch s {
	case StatusDetection:
		return next == StatusConfirmation
	case StatusConfirmation:
		return next == StatusInProgress || next == StatusCancelled
	case StatusInProgress:
		return next == StatusFollowUp || next == StatusCompleted || next == StatusCancelled
	case StatusFollowUp:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// EmergencySession tracks one emergency episode from activation to resolution.
type EmergencySession struct {
	ID               string
	StartTime        time.Time
	Status           EmergencyStatus
	Location         *LocationFix
	MedicalProfileID string
	ContactsNotified []string
	AuditLog         []AuditEntry
}

// NewEmergencySession creates the session record for a freshly triggered
// emergency. Sessions only come into existence on the transition into
// confirmation, so that is the initial status.
func NewEmergencySession(now time.Time, medicalProfileID string) EmergencySession {
	return EmergencySession{
		ID:               fmt.Sprintf("emergency_%d", now.UnixMilli()),
		StartTime:        now,
		Status:           StatusConfirmation,
		MedicalProfileID: medicalProfileID,
	}
}

func (s EmergencySession) Active() bool {
	return !s.Status.Terminal()
}

// Record appends an entry to the session's embedded audit trail.
func (s *EmergencySession) Record(entry AuditEntry) {
	s.AuditLog = append(s.AuditLog, entry)
}

// Clone returns a copy that shares no slices or pointers with the receiver.
func (s EmergencySession) Clone() EmergencySession {
	out := s
	if s.Location != nil {
		fix := *s.Location
		out.Location = &fix
	}
	if s.ContactsNotified != nil {
		out.ContactsNotified = append([]string(nil), s.ContactsNotified...)
	}
	if s.AuditLog != nil {
		out.AuditLog = append([]AuditEntry(nil), s.AuditLog...)
	}
	return out
}
