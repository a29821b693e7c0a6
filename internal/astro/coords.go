// Package astro provides the fixed-sky geometry of the orrery: the
// equatorial to ecliptic conversion, the cylindrical star wall projection,
// the star catalog and the zodiac sign overlay.
package astro

import "math"

// ObliquityDeg is the fixed obliquity of the ecliptic (J2000) in degrees.
const ObliquityDeg = 23.4393

var obliquityRad = degToRad(ObliquityDeg)

// EquatorialToEcliptic converts equatorial coordinates (right ascension and
// declination, degrees) to ecliptic longitude and latitude in radians.
//
// Longitude is returned by atan2 and so lies in (-π, π]. Any real input is
// accepted.
func EquatorialToEcliptic(lonDeg, latDeg float64) (lonRad, latRad float64) {
	ra := degToRad(lonDeg)
	dec := degToRad(latDeg)

	sinE, cosE := math.Sincos(obliquityRad)
	sinRA, cosRA := math.Sincos(ra)
	sinDec, cosDec := math.Sincos(dec)

	sinLat := sinDec*cosE - cosDec*sinE*sinRA
	// Clamp to [-1, 1] to handle floating point errors
	if sinLat > 1 {
		sinLat = 1
	} else if sinLat < -1 {
		sinLat = -1
	}
	latRad = math.Asin(sinLat)

	lonRad = math.Atan2(sinRA*cosE+math.Tan(dec)*sinE, cosRA)
	return lonRad, latRad
}

// ProjectToCylinder places an ecliptic direction on the inside of a vertical
// cylinder of the given radius. Longitude runs clockwise seen from above
// (theta = -lon) and height is R·tan(lat).
//
// The height diverges as latitude approaches ±90°; callers that draw near the
// ecliptic poles must cull those points themselves.
func ProjectToCylinder(eclLon, eclLat, radius float64) Vec3 {
	theta := -eclLon
	sinT, cosT := math.Sincos(theta)
	return Vec3{
		X: radius * cosT,
		Y: radius * math.Tan(eclLat),
		Z: radius * sinT,
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// normalize360 wraps an angle in degrees to [0, 360).
func normalize360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a = 0
	}
	return a
}
