package ephem

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/solar"
)

// kmPerAU converts the Moon's geocentric distance to AU.
const kmPerAU = 149597870.7

// MeeusProvider computes longitudes analytically: the Sun and Moon from
// Meeus' Astronomical Algorithms, the planets from mean Keplerian elements.
// It needs no network and is cheap enough to call every frame.
type MeeusProvider struct{}

// NewMeeusProvider creates the built-in ephemeris.
func NewMeeusProvider() *MeeusProvider {
	return &MeeusProvider{}
}

// Name implements Provider.
func (p *MeeusProvider) Name() string {
	return "Meeus"
}

// Longitude implements Provider.
func (p *MeeusProvider) Longitude(body Body, t time.Time, frame Frame) (float64, error) {
	if !body.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrUnknownBody, int(body))
	}
	if frame != Geocentric && frame != Heliocentric {
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedFrame, int(frame))
	}

	jd := julian.TimeToJD(t.UTC())
	T := base.J2000Century(jd)

	switch body {
	case Sun:
		if frame == Heliocentric {
			return 0, fmt.Errorf("%w: sun has no heliocentric longitude", ErrUnsupportedFrame)
		}
		return normalize360(solar.ApparentLongitude(T).Deg()), nil

	case Moon:
		if frame == Geocentric {
			lon, _, _ := moonposition.Position(jd)
			return normalize360(lon.Deg()), nil
		}
		earth, err := p.heliocentric(Earth, t, T)
		if err != nil {
			return 0, err
		}
		return earth.Add(moonGeocentric(jd)).LongitudeDeg(), nil

	case Earth:
		// Earth is derived by the caller from the Sun; answering here would
		// let two sources disagree about the same point.
		return 0, fmt.Errorf("%w: earth is derived from the sun", ErrUnknownBody)
	}

	pos, err := p.heliocentric(body, t, T)
	if err != nil {
		return 0, err
	}
	if frame == Heliocentric {
		return pos.LongitudeDeg(), nil
	}

	earth, err := p.heliocentric(Earth, t, T)
	if err != nil {
		return 0, err
	}
	return pos.Sub(earth).LongitudeDeg(), nil
}

// MoonPhase implements Provider.
func (p *MeeusProvider) MoonPhase(t time.Time) (float64, error) {
	jd := julian.TimeToJD(t.UTC())
	moonLon, _, _ := moonposition.Position(jd)
	sunLon := solar.ApparentLongitude(base.J2000Century(jd))
	return normalize360(moonLon.Deg() - sunLon.Deg()), nil
}

// heliocentric returns the ecliptic position of a planet (or Earth) in AU.
func (p *MeeusProvider) heliocentric(body Body, t time.Time, T float64) (Vec3, error) {
	el, ok := planetElements[body]
	if !ok {
		return Vec3{}, fmt.Errorf("%w: %s", ErrNoData, body)
	}
	if y := t.UTC().Year(); y < elementsMinYear || y > elementsMaxYear {
		return Vec3{}, fmt.Errorf("%w: %s in %d", ErrOutOfRange, body, y)
	}
	pos, err := el.heliocentricPosition(T)
	if err != nil {
		return Vec3{}, fmt.Errorf("solve %s orbit: %w", body, err)
	}
	return pos, nil
}

// moonGeocentric returns the Moon's geocentric ecliptic vector in AU.
func moonGeocentric(jd float64) Vec3 {
	lon, lat, distKm := moonposition.Position(jd)
	r := distKm / kmPerAU
	sLon, cLon := lon.Sincos()
	sLat, cLat := lat.Sincos()
	return Vec3{
		X: r * cLat * cLon,
		Y: r * cLat * sLon,
		Z: r * sLat,
	}
}

// finite reports whether v is a usable number.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
