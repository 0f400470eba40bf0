package static

import (
	"context"

	"github.com/avomont/lifeline/internal/domain"
	"github.com/avomont/lifeline/internal/ports"
)

// Provider returns a fixed coordinate from configuration. It covers devices
// without a usable location command; a zero fix reports unavailable rather
// than pointing contacts at 0,0.
type Provider struct {
	fix domain.LocationFix
}

var _ ports.LocationProvider = (*Provider)(nil)

func NewProvider(fix domain.LocationFix) *Provider {
	return &Provider{fix: fix}
}

func (p *Provider) Current(ctx context.Context) (domain.LocationFix, error) {
	if err := ctx.Err(); err != nil {
		return domain.LocationFix{}, err
	}

	if p.fix.Latitude == 0 && p.fix.Longitude == 0 {
		return domain.LocationFix{}, domain.ErrLocationUnavailable
	}

	return p.fix, nil
}
