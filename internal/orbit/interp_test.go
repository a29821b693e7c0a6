package orbit

import (
	"math"
	"testing"
)

func TestNormalizeSigned(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi, math.Pi},
		{2*math.Pi + 0.1, 0.1},
		{-0.1, -0.1},
		{-2*math.Pi - 0.25, -0.25},
		{100, 100 - 32*math.Pi},
	}
	for _, tc := range tests {
		got := NormalizeSigned(tc.in)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("NormalizeSigned(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got <= -math.Pi || got > math.Pi {
			t.Errorf("NormalizeSigned(%v) = %v, outside (-π, π]", tc.in, got)
		}
	}
}

func TestLerpAngle_ReachesTarget(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		rate, dt        float64
	}{
		{"exact step", 0, 1, 1, 1},
		{"oversized step", 0, -2, 30, 0.1},
		{"across the seam", degToRad(350), degToRad(10), 10, 0.1},
		{"many turns away", 40 * math.Pi, 0.5, 5, 0.5},
		{"already there", 1.25, 1.25, 2, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := LerpAngle(tc.current, tc.target, tc.rate, tc.dt)
			if d := math.Abs(NormalizeSigned(got - tc.target)); d > 1e-9 {
				t.Errorf("LerpAngle = %v, %v away from target %v", got, d, tc.target)
			}
		})
	}
}

func TestLerpAngle_ShortestPath(t *testing.T) {
	// 350° -> 10° goes forward through 0°, not back through 180°.
	got := LerpAngle(degToRad(350), degToRad(10), 1, 0.5)
	if want := degToRad(360); math.Abs(got-want) > 1e-9 {
		t.Errorf("LerpAngle = %v°, want 360°", got*180/math.Pi)
	}

	// And the reverse goes backward.
	got = LerpAngle(degToRad(10), degToRad(350), 1, 0.5)
	if want := degToRad(0); math.Abs(got-want) > 1e-9 {
		t.Errorf("LerpAngle = %v°, want 0°", got*180/math.Pi)
	}
}

func TestLerpAngle_MonotoneNoOvershoot(t *testing.T) {
	for _, start := range []float64{-7, -2, 0, 0.5, 3, 3.2, 9} {
		for _, target := range []float64{-math.Pi / 2, 0, 2, math.Pi, 5} {
			for _, step := range []float64{0.01, 0.1, 0.5, 0.99} {
				cur := start
				prev := math.Abs(NormalizeSigned(target - cur))
				for i := 0; i < 200; i++ {
					next := LerpAngle(cur, target, step, 1)
					dist := math.Abs(NormalizeSigned(target - next))
					if dist > prev+1e-12 {
						t.Fatalf("start=%v target=%v step=%v: distance grew %v -> %v", start, target, step, prev, dist)
					}
					// No overshoot: the signed difference keeps its sign.
					before := NormalizeSigned(target - cur)
					after := NormalizeSigned(target - next)
					if before*after < -1e-12 && math.Abs(before) < math.Pi-1e-9 {
						t.Fatalf("start=%v target=%v step=%v: overshoot %v -> %v", start, target, step, before, after)
					}
					cur, prev = next, dist
				}
			}
		}
	}
}

func TestLerpAngle_ZeroStep(t *testing.T) {
	if got := LerpAngle(1.5, 3, 2, 0); got != 1.5 {
		t.Errorf("dt=0 moved angle to %v", got)
	}
	if got := LerpAngle(1.5, 3, 0, 1); got != 1.5 {
		t.Errorf("rate=0 moved angle to %v", got)
	}
}
