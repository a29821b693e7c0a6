package ephem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
)

// angDiff returns the absolute angular separation of two longitudes in degrees.
func angDiff(a, b float64) float64 {
	d := math.Abs(normalize360(a - b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestMeeusSunLongitude(t *testing.T) {
	p := NewMeeusProvider()

	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"march equinox 2024", time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC), 0},
		{"june solstice 2024", time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC), 90},
		{"september equinox 2024", time.Date(2024, 9, 22, 12, 44, 0, 0, time.UTC), 180},
		{"december solstice 2024", time.Date(2024, 12, 21, 9, 21, 0, 0, time.UTC), 270},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Longitude(Sun, tc.t, Geocentric)
			if err != nil {
				t.Fatalf("Longitude error: %v", err)
			}
			if angDiff(got, tc.want) > 0.05 {
				t.Errorf("Sun = %.4f°, want %.1f°", got, tc.want)
			}
		})
	}
}

func TestMeeusRanges(t *testing.T) {
	p := NewMeeusProvider()
	when := time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC)

	for _, frame := range []Frame{Geocentric, Heliocentric} {
		for _, b := range Bodies {
			if !b.InFrame(frame) || b == Earth {
				continue
			}
			lon, err := p.Longitude(b, when, frame)
			if err != nil {
				t.Errorf("%v %v: %v", b, frame, err)
				continue
			}
			if lon < 0 || lon >= 360 || math.IsNaN(lon) {
				t.Errorf("%v %v = %v, out of [0, 360)", b, frame, lon)
			}
		}
	}

	phase, err := p.MoonPhase(when)
	if err != nil {
		t.Fatalf("MoonPhase: %v", err)
	}
	if phase < 0 || phase >= 360 {
		t.Errorf("MoonPhase = %v, out of [0, 360)", phase)
	}
}

func TestMeeusInnerPlanetElongation(t *testing.T) {
	p := NewMeeusProvider()
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	// Inferior planets never stray far from the Sun as seen from Earth.
	limits := map[Body]float64{Mercury: 28.5, Venus: 47.5}

	for day := 0; day < 2*365; day += 7 {
		when := start.AddDate(0, 0, day)
		sun, err := p.Longitude(Sun, when, Geocentric)
		if err != nil {
			t.Fatal(err)
		}
		for b, limit := range limits {
			lon, err := p.Longitude(b, when, Geocentric)
			if err != nil {
				t.Fatal(err)
			}
			if d := angDiff(lon, sun); d > limit {
				t.Errorf("%s: %v elongation %.2f° exceeds %.1f°", when.Format("2006-01-02"), b, d, limit)
			}
		}
	}
}

func TestMeeusEarthOppositeSun(t *testing.T) {
	p := NewMeeusProvider()
	when := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	jd := julian.TimeToJD(when)

	earth, err := p.heliocentric(Earth, when, base.J2000Century(jd))
	if err != nil {
		t.Fatal(err)
	}
	sun, err := p.Longitude(Sun, when, Geocentric)
	if err != nil {
		t.Fatal(err)
	}
	if d := angDiff(earth.LongitudeDeg(), sun+180); d > 0.1 {
		t.Errorf("Earth helio %.3f° vs Sun geo+180 %.3f° (diff %.3f°)", earth.LongitudeDeg(), normalize360(sun+180), d)
	}

	// The Moon never strays more than ~0.15° from Earth as seen from the Sun.
	moon, err := p.Longitude(Moon, when, Heliocentric)
	if err != nil {
		t.Fatal(err)
	}
	if d := angDiff(moon, earth.LongitudeDeg()); d > 0.2 {
		t.Errorf("Moon helio %.3f° is %.3f° from Earth", moon, d)
	}
}

func TestMeeusErrors(t *testing.T) {
	p := NewMeeusProvider()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		body  Body
		t     time.Time
		frame Frame
		want  error
	}{
		{"sun heliocentric", Sun, now, Heliocentric, ErrUnsupportedFrame},
		{"earth", Earth, now, Geocentric, ErrUnknownBody},
		{"invalid body", Body(12), now, Geocentric, ErrUnknownBody},
		{"invalid frame", Mars, now, Frame(5), ErrUnsupportedFrame},
		{"before elements", Mars, time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), Geocentric, ErrOutOfRange},
		{"after elements", Jupiter, time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC), Heliocentric, ErrOutOfRange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Longitude(tc.body, tc.t, tc.frame)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}

	// Sun and Moon come from analytic series and work outside the planet window.
	if _, err := p.Longitude(Sun, time.Date(1700, 1, 1, 0, 0, 0, 0, time.UTC), Geocentric); err != nil {
		t.Errorf("Sun in 1700: %v", err)
	}
}
