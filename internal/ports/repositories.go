package ports

import (
	"context"

	"github.com/avomont/lifeline/internal/domain"
)

// SessionRepository owns the single persisted "current session" slot.
// Load returns domain.ErrNoActiveEmergency when the slot is empty, holds a
// terminal session, or holds data that no longer decodes.
type SessionRepository interface {
	Save(ctx context.Context, session domain.EmergencySession) error
	Load(ctx context.Context) (domain.EmergencySession, error)
	Delete(ctx context.Context) error
}

type ProfileRepository interface {
	Save(ctx context.Context, profile domain.MedicalProfile) error
	Load(ctx context.Context) (domain.MedicalProfile, error)
}

// AuditLog is the bounded, append-only activity trail. Entries returns
// records oldest-first. Clear is deliberately not itself audited.
type AuditLog interface {
	Append(ctx context.Context, entry domain.AuditEntry) error
	Entries(ctx context.Context) ([]domain.AuditEntry, error)
	Clear(ctx context.Context) error
}
