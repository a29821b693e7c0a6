package ephem

import (
	"fmt"
	"strings"
)

// Body identifies one of the classical celestial bodies.
type Body int

// The fixed body set. Order matches the traditional Chaldean listing with
// Earth appended for heliocentric displays.
const (
	Moon Body = iota
	Mercury
	Venus
	Sun
	Mars
	Jupiter
	Saturn
	Earth
)

// NumBodies is the size of the body set.
const NumBodies = 8

// Bodies lists every body in canonical order.
var Bodies = [NumBodies]Body{Moon, Mercury, Venus, Sun, Mars, Jupiter, Saturn, Earth}

// BodyInfo contains display and lookup data for a body.
type BodyInfo struct {
	Name   string
	Glyph  rune
	NAIFID int // NAIF SPICE ID, used for Horizons queries
}

var bodyInfo = [NumBodies]BodyInfo{
	Moon:    {Name: "Moon", Glyph: '☾', NAIFID: 301},
	Mercury: {Name: "Mercury", Glyph: '☿', NAIFID: 199},
	Venus:   {Name: "Venus", Glyph: '♀', NAIFID: 299},
	Sun:     {Name: "Sun", Glyph: '☉', NAIFID: 10},
	Mars:    {Name: "Mars", Glyph: '♂', NAIFID: 499},
	Jupiter: {Name: "Jupiter", Glyph: '♃', NAIFID: 599},
	Saturn:  {Name: "Saturn", Glyph: '♄', NAIFID: 699},
	Earth:   {Name: "Earth", Glyph: '⊕', NAIFID: 399},
}

// Valid reports whether b is a member of the body set.
func (b Body) Valid() bool {
	return b >= 0 && b < NumBodies
}

// Info returns the lookup data for b, or ErrUnknownBody.
func (b Body) Info() (BodyInfo, error) {
	if !b.Valid() {
		return BodyInfo{}, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return bodyInfo[b], nil
}

// String returns the body name.
func (b Body) String() string {
	if !b.Valid() {
		return "unknown"
	}
	return bodyInfo[b].Name
}

// Glyph returns the astronomical symbol for b.
func (b Body) Glyph() rune {
	if !b.Valid() {
		return '?'
	}
	return bodyInfo[b].Glyph
}

// MarshalText implements encoding.TextMarshaler so bodies can key JSON maps.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownBody, int(b))
	}
	return []byte(strings.ToLower(bodyInfo[b].Name)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Body) UnmarshalText(text []byte) error {
	parsed, err := ParseBody(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBody parses a body name (case-insensitive). It never substitutes a
// default: anything outside the body set returns ErrUnknownBody.
func ParseBody(s string) (Body, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, b := range Bodies {
		if strings.ToLower(bodyInfo[b].Name) == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownBody, s)
}

// InFrame reports whether a body is drawn on an orbit ring in the given
// display frame. The Sun is the hub of a heliocentric diagram and Earth the
// hub of a geocentric one.
func (b Body) InFrame(f Frame) bool {
	switch f {
	case Geocentric:
		return b.Valid() && b != Earth
	case Heliocentric:
		return b.Valid() && b != Sun
	default:
		return false
	}
}
