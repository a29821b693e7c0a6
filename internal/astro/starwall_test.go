package astro

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPlaceStars(t *testing.T) {
	const r = 50.0
	cat := StarCatalog{Stars: []StarRecord{
		{Name: "Regulus", LonDeg: 152.093, LatDeg: 11.967, Mag: 1.35},
		{Name: "Pole", LonDeg: 270, LatDeg: 90 - ObliquityDeg, Mag: 3},
		{Name: "Equinox", LonDeg: 0, LatDeg: 0, Mag: 4},
	}}

	placed := PlaceStars(cat, r)
	if len(placed) != 2 {
		t.Fatalf("got %d placed stars, want 2 (pole culled)", len(placed))
	}

	reg := placed[0]
	if reg.Star.Name != "Regulus" {
		t.Fatalf("first star = %s", reg.Star.Name)
	}
	if d := math.Abs(normalize360(radToDeg(reg.EclLon)) - 149.83); d > 0.1 {
		t.Errorf("Regulus ecliptic lon = %.3f°", normalize360(radToDeg(reg.EclLon)))
	}
	want := ProjectToCylinder(reg.EclLon, reg.EclLat, r)
	if reg.Pos.Sub(want).Norm() > 1e-9 {
		t.Errorf("Pos = %+v, want %+v", reg.Pos, want)
	}

	eq := placed[1]
	if eq.Pos.Sub(Vec3{X: r}).Norm() > 1e-9 {
		t.Errorf("equinox star at %+v, want (%v, 0, 0)", eq.Pos, r)
	}
}

func TestPlaceStars_DefaultCatalogStaysOnWall(t *testing.T) {
	const r = 1.0
	limit := math.Tan(degToRad(maxWallLatDeg)) + 1e-9
	for _, ps := range PlaceStars(DefaultStarCatalog(), r) {
		if math.IsNaN(ps.Pos.Y) || math.Abs(ps.Pos.Y) > limit {
			t.Errorf("%s wall height %v exceeds %v", ps.Star.Name, ps.Pos.Y, limit)
		}
	}
}

func TestPlaceConstellations(t *testing.T) {
	figs, err := PlaceConstellations(DefaultStarCatalog(), 10)
	if err != nil {
		t.Fatalf("PlaceConstellations: %v", err)
	}
	if len(figs) != NumSigns {
		t.Fatalf("got %d figures", len(figs))
	}
	for i, fig := range figs {
		if len(fig.Segments) != len(ZodiacConstellations[i].Lines) {
			t.Errorf("%s: %d segments, want %d", fig.Name, len(fig.Segments), len(ZodiacConstellations[i].Lines))
		}
		for _, seg := range fig.Segments {
			if math.Abs(math.Hypot(seg.From.X, seg.From.Z)-10) > 1e-9 {
				t.Errorf("%s: segment start off the wall: %+v", fig.Name, seg.From)
			}
		}
	}

	// Each figure should sit near its own sign on the tropical wall (within
	// one sign either side; constellations and signs have drifted apart).
	for _, fig := range figs {
		var sumX, sumZ float64
		for _, seg := range fig.Segments {
			sumX += seg.From.X
			sumZ += seg.From.Z
		}
		lon := normalize360(radToDeg(-math.Atan2(sumZ, sumX)))
		center := float64(fig.Sign)*30 + 15
		d := math.Abs(lon - center)
		if d > 180 {
			d = 360 - d
		}
		if d > 45 {
			t.Errorf("%s centered at %.1f°, sign center %.1f°", fig.Name, lon, center)
		}
	}
}

func TestPlaceConstellations_IgnoresUnnamedStars(t *testing.T) {
	base := DefaultStarCatalog()
	want, err := PlaceConstellations(base, 10)
	if err != nil {
		t.Fatalf("PlaceConstellations: %v", err)
	}

	stars := append([]StarRecord{
		{Name: "", LonDeg: 10, LatDeg: 5, Mag: 4},
		{Name: "", LonDeg: 200, LatDeg: -5, Mag: 4},
	}, base.Stars...)
	got, err := PlaceConstellations(StarCatalog{Stars: stars}, 10)
	if err != nil {
		t.Fatalf("PlaceConstellations with unnamed stars: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unnamed stars changed the figures (-want +got):\n%s", diff)
	}
}

func TestPlaceConstellations_MissingStar(t *testing.T) {
	cat := DefaultStarCatalog().Brighter(1.0)
	_, err := PlaceConstellations(cat, 10)
	if !errors.Is(err, ErrInvalidStar) {
		t.Errorf("err = %v, want ErrInvalidStar", err)
	}
}
