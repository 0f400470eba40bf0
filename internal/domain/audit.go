package domain

import "time"

type AuditAction string

const (
	ActionEmergencyInitiated        AuditAction = "emergency_initiated"
	ActionEmergencyConfirmed        AuditAction = "emergency_confirmed"
	ActionEmergencyFollowUp         AuditAction = "emergency_follow_up"
	ActionEmergencyCompleted        AuditAction = "emergency_completed"
	ActionEmergencyCancelled        AuditAction = "emergency_cancelled"
	ActionContactsNotified          AuditAction = "contacts_notified"
	ActionContactNotificationFailed AuditAction = "contact_notification_failed"
	ActionSessionSaved              AuditAction = "session_saved"
	ActionSessionCleared            AuditAction = "session_cleared"
	ActionProfileSaved              AuditAction = "profile_saved"
)

// MaxAuditEntries caps the persisted activity trail; the oldest entries are
// dropped once the cap is exceeded.
const MaxAuditEntries = 50

// AuditEntry is an immutable record of one action taken by the system or the
// user. Details and UserID are optional free text.
type AuditEntry struct {
	Timestamp time.Time
	Action    AuditAction
	Details   string
	UserID    string
}

// ActionForStatus maps a terminal or informational status change to its
// audit action tag.
func ActionForStatus(status EmergencyStatus) AuditAction {
	switch status {
	case StatusInProgress:
		return ActionEmergencyConfirmed
	case StatusFollowUp:
		return ActionEmergencyFollowUp
	case StatusCompleted:
		return ActionEmergencyCompleted
	case StatusCancelled:
		return ActionEmergencyCancelled
	default:
		return ActionEmergencyInitiated
	}
}
