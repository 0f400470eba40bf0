package domain

import "errors"

var (
	ErrNoActiveEmergency = errors.New("no active emergency session")
	ErrEmergencyActive   = errors.New("emergency session already active")
	ErrInvalidTransition = errors.New("invalid emergency status transition")
	ErrProfileNotFound   = errors.New("medical profile not found")
	ErrBlobNotFound      = errors.New("blob not found")

	ErrLocationPermissionDenied = errors.New("location permission denied")
	ErrLocationUnavailable      = errors.New("location unavailable")
)
