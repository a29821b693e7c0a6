package orbit

import (
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
)

// AngleTable holds one angle per body in radians. Values are unbounded:
// drifting bodies accumulate whole turns.
type AngleTable map[ephem.Body]float64

// Clone returns an independent copy.
func (t AngleTable) Clone() AngleTable {
	out := make(AngleTable, len(t))
	for b, a := range t {
		out[b] = a
	}
	return out
}

// Snapshot is everything a renderer needs for one frame.
type Snapshot struct {
	BodyAngles     AngleTable   `json:"body_angles"`
	MoonPhaseAngle float64      `json:"moon_phase_angle"` // radians, 0 = new, π = full
	Mode           Mode         `json:"mode"`
	Frame          ephem.Frame  `json:"frame"`
	Time           time.Time    `json:"time"`           // instant the angles describe
	Held           []ephem.Body `json:"held,omitempty"` // bodies whose ephemeris failed this tick
}

// Visible returns the bodies drawn on an orbit ring in the snapshot's frame,
// in canonical order.
func (s Snapshot) Visible() []ephem.Body {
	out := make([]ephem.Body, 0, ephem.NumBodies)
	for _, b := range ephem.Bodies {
		if b.InFrame(s.Frame) {
			out = append(out, b)
		}
	}
	return out
}

// IsHeld reports whether body was held this tick.
func (s Snapshot) IsHeld(body ephem.Body) bool {
	for _, b := range s.Held {
		if b == body {
			return true
		}
	}
	return false
}
