package astro

import (
	"fmt"
	"math"
)

// maxWallLatDeg culls stars whose wall height would run off any sensible
// display. tan(75°) ≈ 3.7 radii.
const maxWallLatDeg = 75

// PlacedStar is a catalog star positioned on the star wall.
type PlacedStar struct {
	Star   StarRecord `json:"star"`
	Pos    Vec3       `json:"pos"`
	EclLon float64    `json:"ecl_lon"` // radians, (-π, π]
	EclLat float64    `json:"ecl_lat"` // radians
}

// PlacedSegment is one line of a constellation figure on the wall.
type PlacedSegment struct {
	From Vec3 `json:"from"`
	To   Vec3 `json:"to"`
}

// PlacedConstellation is a constellation figure positioned on the wall.
type PlacedConstellation struct {
	Name     string          `json:"name"`
	Sign     Sign            `json:"sign"`
	Segments []PlacedSegment `json:"segments"`
}

// PlaceStars converts every catalog star to ecliptic coordinates and projects
// it onto a wall of the given radius. Stars more than 75° from the ecliptic
// are left out; the wall cannot show them.
func PlaceStars(c StarCatalog, radius float64) []PlacedStar {
	out := make([]PlacedStar, 0, len(c.Stars))
	for _, s := range c.Stars {
		lon, lat := EquatorialToEcliptic(s.LonDeg, s.LatDeg)
		if math.Abs(radToDeg(lat)) > maxWallLatDeg {
			continue
		}
		out = append(out, PlacedStar{
			Star:   s,
			Pos:    ProjectToCylinder(lon, lat, radius),
			EclLon: lon,
			EclLat: lat,
		})
	}
	return out
}

// PlaceConstellations projects the zodiac figures onto the wall. A figure that
// names a star missing from the catalog fails with ErrInvalidStar.
func PlaceConstellations(c StarCatalog, radius float64) ([]PlacedConstellation, error) {
	pos := make(map[string]Vec3, len(c.Stars))
	for _, s := range c.Stars {
		if s.Name == "" {
			continue
		}
		if _, ok := pos[s.Name]; ok {
			continue
		}
		lon, lat := EquatorialToEcliptic(s.LonDeg, s.LatDeg)
		pos[s.Name] = ProjectToCylinder(lon, lat, radius)
	}

	out := make([]PlacedConstellation, 0, len(ZodiacConstellations))
	for _, fig := range ZodiacConstellations {
		pc := PlacedConstellation{Name: fig.Name, Sign: fig.Sign}
		for _, line := range fig.Lines {
			from, ok := pos[line[0]]
			if !ok {
				return nil, fmt.Errorf("%s: %w: %q not in catalog", fig.Name, ErrInvalidStar, line[0])
			}
			to, ok := pos[line[1]]
			if !ok {
				return nil, fmt.Errorf("%s: %w: %q not in catalog", fig.Name, ErrInvalidStar, line[1])
			}
			pc.Segments = append(pc.Segments, PlacedSegment{From: from, To: to})
		}
		out = append(out, pc)
	}
	return out, nil
}
