package domain

import (
	"fmt"
	"time"
)

// LocationFix is a single geolocation reading. Accuracy is in meters.
type LocationFix struct {
	Latitude  float64
	Longitude float64
	Accuracy  float64
	Timestamp time.Time
}

// MapsURL renders the fix as a shareable map link for contact messages.
func (f LocationFix) MapsURL() string {
	return fmt.Sprintf("https://maps.google.com/?q=%.6f,%.6f", f.Latitude, f.Longitude)
}
