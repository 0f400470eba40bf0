package application

import (
	"context"
	"errors"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

// Overview is the read model behind the status screen: whatever session
// occupies the slot, the stored profile if any, and the audit trail.
type Overview struct {
	Session *domain.EmergencySession
	Profile *domain.MedicalProfile
	Audit   []domain.AuditEntry
}

// StatusQuery assembles an Overview from the emergency slot and the stores.
type StatusQuery struct {
	emergencies *EmergencyService
	profiles    ports.ProfileRepository
	audit       ports.AuditLog
}

func NewStatusQuery(emergencies *EmergencyService, profiles ports.ProfileRepository, audit ports.AuditLog) *StatusQuery {
	return &StatusQuery{
		emergencies: emergencies,
		profiles:    profiles,
		audit:       audit,
	}
}

// Run never fails on missing data: an empty slot or absent profile simply
// leaves the corresponding field nil.
func (q *StatusQuery) Run(ctx context.Context) (Overview, error) {
	var overview Overview

	session, err := q.emergencies.Active(ctx)
	switch {
	case err == nil:
		overview.Session = &session
	case errors.Is(err, domain.ErrNoActiveEmergency):
	default:
		return Overview{}, err
	}

	if profile, err := q.profiles.Load(ctx); err == nil {
		overview.Profile = &profile
	}

	if q.audit != nil {
		if entries, err := q.audit.Entries(ctx); err == nil {
			overview.Audit = entries
		}
	}

	return overview, nil
}
