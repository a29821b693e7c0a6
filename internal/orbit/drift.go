package orbit

import "github.com/litescript/ls-orrery/internal/ephem"

// Drift speeds in radians per second. Inner bodies run faster, loosely
// following their real periods; the ratios are stylized.
var driftSpeeds = map[ephem.Frame]map[ephem.Body]float64{
	ephem.Geocentric: {
		ephem.Moon:    0.80,
		ephem.Mercury: 0.55,
		ephem.Venus:   0.40,
		ephem.Sun:     0.30,
		ephem.Mars:    0.22,
		ephem.Jupiter: 0.12,
		ephem.Saturn:  0.08,
	},
	ephem.Heliocentric: {
		ephem.Mercury: 0.90,
		ephem.Venus:   0.60,
		ephem.Earth:   0.45,
		ephem.Moon:    2.00, // around Earth
		ephem.Mars:    0.30,
		ephem.Jupiter: 0.12,
		ephem.Saturn:  0.07,
	},
}

// DriftSpeed returns the drift speed of body in frame, in rad/s. Hub bodies
// (Earth in geocentric, Sun in heliocentric) do not move.
func DriftSpeed(frame ephem.Frame, body ephem.Body) float64 {
	return driftSpeeds[frame][body]
}

// drift advances every body in the frame by its fixed speed. Angles
// decrease so the diagram turns clockwise, like the ecliptic targets.
func (c *Controller) drift(frame ephem.Frame, dt float64) {
	for _, b := range domain(frame) {
		c.table[b] -= DriftSpeed(frame, b) * dt
	}
}
