package ports

import (
	"context"

	"github.com/avomont/lifeline/internal/domain"
)

// LocationProvider yields the device's current position. Implementations
// return domain.ErrLocationPermissionDenied when access is refused and
// domain.ErrLocationUnavailable for other failures; callers impose timeouts
// through ctx.
type LocationProvider interface {
	Current(ctx context.Context) (domain.LocationFix, error)
}

// ContactNotifier delivers an emergency message to the profile's contacts:
// primary contacts first, secondary contacts only if no primary succeeded.
// It returns the names actually reached, in notification order, and never
// fails for individual delivery errors.
type ContactNotifier interface {
	Notify(ctx context.Context, profile domain.MedicalProfile, session domain.EmergencySession, fix *domain.LocationFix) ([]string, error)
}
