// Package orbit animates the orrery: a per-tick state machine that turns the
// active display mode, the clock and an ephemeris into one angle per body.
package orbit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/litescript/ls-orrery/internal/ephem"
)

// ErrUnknownMode is returned when parsing or selecting a mode outside the
// fixed set.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is the active display mode. Exactly one is active at a time.
type Mode int

const (
	GeocentricDrift   Mode = iota // Stylized constant-speed motion around Earth
	HeliocentricDrift             // Stylized constant-speed motion around the Sun
	Live                          // The sky right now
	Aligned                       // Every body parked at one angle
	BirthDate                     // The sky at a chosen date
	Clock24h                      // The Sun as the hour hand of a 24h dial
	Clock12h                      // 12h dial; moves like HeliocentricDrift
)

// NumModes is the number of modes.
const NumModes = 7

// Modes lists every mode in selector order.
var Modes = [NumModes]Mode{GeocentricDrift, HeliocentricDrift, Live, Aligned, BirthDate, Clock24h, Clock12h}

var modeNames = [NumModes]string{
	GeocentricDrift:   "geocentric",
	HeliocentricDrift: "heliocentric",
	Live:              "live",
	Aligned:           "aligned",
	BirthDate:         "birthdate",
	Clock24h:          "clock24h",
	Clock12h:          "clock12h",
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= 0 && m < NumModes
}

// String returns the mode name.
func (m Mode) String() string {
	if !m.Valid() {
		return "unknown"
	}
	return modeNames[m]
}

// Drift reports whether the mode moves bodies at fixed speeds instead of
// easing them toward targets.
func (m Mode) Drift() bool {
	switch m {
	case GeocentricDrift, HeliocentricDrift, Clock12h:
		return true
	default:
		return false
	}
}

// DriftFrame returns the frame a drift mode forces on the display.
func (m Mode) DriftFrame() (ephem.Frame, bool) {
	switch m {
	case GeocentricDrift:
		return ephem.Geocentric, true
	case HeliocentricDrift, Clock12h:
		return ephem.Heliocentric, true
	default:
		return 0, false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(modeNames[m]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode parses a mode name. A few aliases are accepted; anything else
// returns ErrUnknownMode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "geocentric", "geo":
		return GeocentricDrift, nil
	case "heliocentric", "helio":
		return HeliocentricDrift, nil
	case "live", "now":
		return Live, nil
	case "aligned", "align":
		return Aligned, nil
	case "birthdate", "birth", "date":
		return BirthDate, nil
	case "clock24h", "24h":
		return Clock24h, nil
	case "clock12h", "12h":
		return Clock12h, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}
