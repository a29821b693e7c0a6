// Package ephem provides ecliptic longitudes for the classical celestial bodies.
package ephem

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Errors returned by providers and body lookups.
var (
	ErrUnknownBody      = errors.New("unknown body")
	ErrUnsupportedFrame = errors.New("unsupported frame")
	ErrNoData           = errors.New("no ephemeris data")
	ErrOutOfRange       = errors.New("instant outside provider range")

	// ErrStale reports that the only value at hand describes an instant too
	// far from the one requested. It wraps ErrNoData.
	ErrStale = fmt.Errorf("%w: cached value is for another instant", ErrNoData)
)

// Frame is the reference frame a longitude is measured in.
type Frame int

const (
	Geocentric Frame = iota
	Heliocentric
)

// String returns the frame name.
func (f Frame) String() string {
	switch f {
	case Geocentric:
		return "geocentric"
	case Heliocentric:
		return "heliocentric"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (f Frame) MarshalText() ([]byte, error) {
	if f != Geocentric && f != Heliocentric {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFrame, int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Frame) UnmarshalText(text []byte) error {
	parsed, err := ParseFrame(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFrame parses "geocentric"/"geo" or "heliocentric"/"helio".
func ParseFrame(s string) (Frame, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geocentric", "geo":
		return Geocentric, nil
	case "heliocentric", "helio":
		return Heliocentric, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFrame, s)
	}
}

// Provider defines the interface for ephemeris sources.
//
// Implementations must be safe to call from the render goroutine and should
// treat every call as a pure function of its arguments.
type Provider interface {
	// Name returns the provider name for display/logging.
	Name() string

	// Longitude returns the ecliptic longitude of body in degrees [0, 360).
	// Earth is never requested; callers derive it from the Sun.
	Longitude(body Body, t time.Time, frame Frame) (float64, error)

	// MoonPhase returns the Moon's elongation from the Sun in degrees
	// [0, 360): 0 = new, 180 = full.
	MoonPhase(t time.Time) (float64, error)
}

// Source selects which ephemeris backend to build.
type Source int

const (
	SourceMeeus    Source = iota // Built-in analytic ephemeris (default)
	SourceHorizons               // JPL Horizons over HTTP
	SourceAuto                   // Horizons, falling back to built-in
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceMeeus:
		return "meeus"
	case SourceHorizons:
		return "horizons"
	case SourceAuto:
		return "auto"
	default:
		return "unknown"
	}
}

// ParseSource parses a source string. Unknown values select the built-in
// ephemeris, which needs no network.
func ParseSource(s string) Source {
	switch s {
	case "meeus", "builtin":
		return SourceMeeus
	case "horizons":
		return SourceHorizons
	case "auto":
		return SourceAuto
	default:
		return SourceMeeus
	}
}

// New builds the provider for a source. Network-backed sources are wrapped
// in a CachedProvider so callers on the render path never block.
func New(src Source, refresh time.Duration) Provider {
	switch src {
	case SourceHorizons:
		return NewCachedProvider(NewHorizonsProvider(), refresh)
	case SourceAuto:
		return NewFallbackProvider(NewCachedProvider(NewHorizonsProvider(), refresh), NewMeeusProvider())
	default:
		return NewMeeusProvider()
	}
}

// normalize360 wraps an angle in degrees to [0, 360).
func normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
