package astro

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Ayanamsa model constants: value at 2000.0 and the linear precession rate,
// both in degrees.
const (
	ayanamsaJ2000   = 23.853
	ayanamsaPerYear = 0.01397
)

// FractionalYear returns year + month/12 + day/365.25 for the calendar date
// of t in its own location.
func FractionalYear(t time.Time) float64 {
	return float64(t.Year()) + float64(t.Month())/12 + float64(t.Day())/365.25
}

// Ayanamsa returns the sidereal offset in degrees for the date of t: the
// amount the sidereal zodiac lags the tropical one.
//
// It is a linear model, only meant to rotate the sign overlay against the
// star backdrop. Body angles never depend on it.
func Ayanamsa(t time.Time) float64 {
	return ayanamsaJ2000 + (FractionalYear(t)-2000)*ayanamsaPerYear
}

// Sign is one of the twelve zodiac signs, 30° each.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// NumSigns is the number of zodiac signs.
const NumSigns = 12

var signNames = [NumSigns]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

var signGlyphs = [NumSigns]rune{'♈', '♉', '♊', '♋', '♌', '♍', '♎', '♏', '♐', '♑', '♒', '♓'}

// String returns the sign name.
func (s Sign) String() string {
	if s < 0 || s >= NumSigns {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Glyph returns the sign's symbol.
func (s Sign) Glyph() rune {
	if s < 0 || s >= NumSigns {
		return '?'
	}
	return signGlyphs[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Sign) MarshalText() ([]byte, error) {
	if s < 0 || s >= NumSigns {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(strings.ToLower(signNames[s])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Sign) UnmarshalText(text []byte) error {
	for i, name := range signNames {
		if strings.EqualFold(name, string(text)) {
			*s = Sign(i)
			return nil
		}
	}
	return fmt.Errorf("unknown sign %q", text)
}

// SignBoundaries returns the tropical ecliptic longitude (degrees, [0, 360))
// at which each sign starts, indexed by Sign. With sidereal set the whole set
// is rotated rigidly by the ayanamsa for the date of t.
func SignBoundaries(sidereal bool, t time.Time) [NumSigns]float64 {
	offset := 0.0
	if sidereal {
		offset = Ayanamsa(t)
	}
	var b [NumSigns]float64
	for i := range b {
		b[i] = normalize360(float64(i)*30 + offset)
	}
	return b
}

// SignOf returns the sign containing a tropical ecliptic longitude (degrees)
// in the chosen zodiac.
func SignOf(lonDeg float64, sidereal bool, t time.Time) Sign {
	if sidereal {
		lonDeg -= Ayanamsa(t)
	}
	idx := int(math.Floor(normalize360(lonDeg) / 30))
	if idx >= NumSigns {
		idx = NumSigns - 1
	}
	return Sign(idx)
}
