package core

import (
	"math"
	"testing"
)

func TestProjectileLands(t *testing.T) {
	p := Projectile{Velocity: 500}
	const gravity, dt = 1250.0, 1.0 / 60

	peak := 0.0
	landed := false
	for i := 0; i < 600 && !landed; i++ {
		landed = p.Integrate(gravity, dt)
		if p.Offset > peak {
			peak = p.Offset
		}
	}

	if !landed {
		t.Fatal("projectile never landed")
	}
	if p.Offset != 0 || p.Velocity != 0 {
		t.Errorf("landed body should rest at 0, got offset=%f vel=%f", p.Offset, p.Velocity)
	}
	// v^2 / 2g = 100
	if math.Abs(peak-100) > 10 {
		t.Errorf("peak height = %f, expected about 100", peak)
	}
}

func TestJumpArc(t *testing.T) {
	tests := []struct {
		progress, expected float64
	}{
		{0, 0},
		{0.5, 100},
		{1, 0},
		{-1, 0}, // clamped
		{2, 0},  // clamped
	}

	for _, tc := range tests {
		got := JumpArc(tc.progress, 100)
		if math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("JumpArc(%f) = %f, expected %f", tc.progress, got, tc.expected)
		}
	}
}
