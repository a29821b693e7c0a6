package astro

import "math"

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// WallPoint is a point of the star wall unrolled onto a plane: U is the
// ecliptic longitude in [0, 1) going clockwise and V the wall height in
// radii. Terminal and raster renderers work in this space.
type WallPoint struct {
	U, V float64
}

// Unroll maps a point on the cylinder of the given radius to wall space.
func Unroll(p Vec3, radius float64) WallPoint {
	if radius == 0 {
		return WallPoint{}
	}
	theta := math.Atan2(p.Z, p.X) // = -lon
	u := normalize360(radToDeg(-theta)) / 360
	return WallPoint{U: u, V: p.Y / radius}
}
