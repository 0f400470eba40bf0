package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

// ProfileService manages the single medical profile the device carries.
type ProfileService struct {
	profiles ports.ProfileRepository
	audit    ports.AuditLog
	clock    ports.Clock
}

func NewProfileService(profiles ports.ProfileRepository, audit ports.AuditLog, clock ports.Clock) *ProfileService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &ProfileService{
		profiles: profiles,
		audit:    audit,
		clock:    clock,
	}
}

// Save validates and stores the profile, assigning an ID when the caller
// did not provide one.
func (s *ProfileService) Save(ctx context.Context, profile domain.MedicalProfile) (domain.MedicalProfile, error) {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}

	if err := profile.Validate(); err != nil {
		return domain.MedicalProfile{}, fmt.Errorf("validate medical profile: %w", err)
	}

	if err := s.profiles.Save(ctx, profile); err != nil {
		return domain.MedicalProfile{}, fmt.Errorf("save medical profile: %w", err)
	}

	if s.audit != nil {
		_ = s.audit.Append(ctx, domain.AuditEntry{
			Timestamp: s.clock.Now(),
			Action:    domain.ActionProfileSaved,
			Details:   "profile " + profile.ID,
		})
	}

	return profile, nil
}

func (s *ProfileService) Load(ctx context.Context) (domain.MedicalProfile, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return domain.MedicalProfile{}, fmt.Errorf("load medical profile: %w", err)
	}

	return profile, nil
}
