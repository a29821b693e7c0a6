package orbit

import (
	"math"
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
)

// ClockAngleDeg returns the Sun's position on the 24h dial for the wall-clock
// time of t: 15° per hour, 0.25° per minute, 1/240° per second, with
// midnight at 90°.
func ClockAngleDeg(t time.Time) float64 {
	h, m, s := t.Clock()
	sec := float64(s) + float64(t.Nanosecond())/1e9
	return 15*float64(h) + 0.25*float64(m) + sec/240 + 90
}

// clockTargets puts the Sun on the dial and every other body at its current
// geocentric elongation from the Sun.
func (c *Controller) clockTargets(now time.Time, frame ephem.Frame, held heldSet) map[ephem.Body]float64 {
	sunClock := ClockAngleDeg(now.In(c.cfg.Location))

	targets := make(map[ephem.Body]float64, ephem.NumBodies)
	sunLon, sunErr := c.longitude(ephem.Sun, now, ephem.Geocentric)

	for _, b := range domain(frame) {
		switch b {
		case ephem.Sun:
			targets[b] = degToRad(sunClock)
		case ephem.Earth:
			targets[b] = degToRad(sunClock + 180)
		default:
			if sunErr != nil {
				held.add(b, sunErr)
				continue
			}
			lon, err := c.longitude(b, now, ephem.Geocentric)
			if err != nil {
				held.add(b, err)
				continue
			}
			targets[b] = degToRad(sunClock + (lon - sunLon))
		}
	}
	return targets
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
