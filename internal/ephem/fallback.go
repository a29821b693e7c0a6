package ephem

import (
	"errors"
	"time"
)

// FallbackProvider asks a primary provider first and a secondary one when
// the primary fails or has nothing yet.
type FallbackProvider struct {
	primary   Provider
	secondary Provider
}

// NewFallbackProvider chains two providers.
func NewFallbackProvider(primary, secondary Provider) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

// Name implements Provider.
func (p *FallbackProvider) Name() string {
	return p.primary.Name() + " → " + p.secondary.Name()
}

// Longitude implements Provider.
func (p *FallbackProvider) Longitude(body Body, t time.Time, frame Frame) (float64, error) {
	deg, err := p.primary.Longitude(body, t, frame)
	if err == nil && finite(deg) {
		return deg, nil
	}
	// A bad request stays bad on the secondary; don't mask it.
	if errors.Is(err, ErrUnknownBody) || errors.Is(err, ErrUnsupportedFrame) {
		return 0, err
	}
	return p.secondary.Longitude(body, t, frame)
}

// MoonPhase implements Provider.
func (p *FallbackProvider) MoonPhase(t time.Time) (float64, error) {
	deg, err := p.primary.MoonPhase(t)
	if err == nil && finite(deg) {
		return deg, nil
	}
	return p.secondary.MoonPhase(t)
}
