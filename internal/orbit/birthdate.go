package orbit

import (
	"fmt"
	"strings"
	"time"

	"github.com/litescript/ls-orrery/internal/ephem"
)

// DefaultBirthClock is the time of day used when only a date is known.
const DefaultBirthClock = "12:00"

// ParseBirthDate parses a "YYYY-MM-DD" date and an optional "HH:MM" time in
// loc. An empty clock means noon.
func ParseBirthDate(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = DefaultBirthClock
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", strings.TrimSpace(date)+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q %q: %w", date, clock, err)
	}
	return t, nil
}

// birthCache holds the targets resolved for one instant and frame.
type birthCache struct {
	at      time.Time
	frame   ephem.Frame
	targets map[ephem.Body]float64
}

// birthInstant returns the chosen date, or noon today when none is set.
func (c *Controller) birthInstant(now time.Time) time.Time {
	if c.hasBirth {
		return c.birth
	}
	local := now.In(c.cfg.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, c.cfg.Location)
}

// birthTargets resolves targets once per date and frame. Bodies the
// provider could not answer are retried on later ticks and held meanwhile.
func (c *Controller) birthTargets(now time.Time, frame ephem.Frame, held heldSet) map[ephem.Body]float64 {
	at := c.birthInstant(now)
	if c.birthCache == nil || !c.birthCache.at.Equal(at) || c.birthCache.frame != frame {
		c.birthCache = &birthCache{at: at, frame: frame, targets: make(map[ephem.Body]float64)}
		c.log.Debug("resolving targets for %s (%s)", at.Format(time.RFC3339), frame)
	}

	for _, b := range domain(frame) {
		if _, ok := c.birthCache.targets[b]; ok {
			continue
		}
		lonFrame := frame
		if b == ephem.Moon {
			// The Moon circles Earth in either diagram.
			lonFrame = ephem.Geocentric
		}
		lon, err := c.longitude(b, at, lonFrame)
		if err != nil {
			held.add(b, err)
			continue
		}
		c.birthCache.targets[b] = -degToRad(lon)
	}
	return c.birthCache.targets
}
