package orbit

import "math"

// NormalizeSigned wraps an angle in radians into (-π, π].
func NormalizeSigned(a float64) float64 {
	r := math.Remainder(a, 2*math.Pi)
	if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}

// LerpAngle moves current toward target along the shorter arc by the
// fraction min(rate·dt, 1) of the remaining signed difference. With
// rate·dt >= 1 it lands on the target (mod 2π); otherwise the distance to
// the target shrinks without overshoot.
//
// current is not wrapped, so a body that keeps circling accumulates turns
// and never jumps by 2π.
func LerpAngle(current, target, rate, dt float64) float64 {
	diff := NormalizeSigned(target - current)
	t := rate * dt
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return current + diff*t
}
