package core

import "math"

// Projectile is a body moving along the vertical axis under constant gravity.
// Offset is measured upward from the ground; positive velocity moves up.
type Projectile struct {
	Offset   float64
	Velocity float64
}

// Integrate advances the projectile by dt seconds using semi-implicit Euler.
// Returns true when the body touched the ground during this step; the body
// is then snapped to the ground with zero velocity.
func (p *Projectile) Integrate(gravity, dt float64) bool {
	p.Velocity -= gravity * dt
	p.Offset += p.Velocity * dt
	if p.Offset <= 0 && p.Velocity <= 0 {
		p.Offset = 0
		p.Velocity = 0
		return true
	}
	return false
}

// JumpArc returns the height of a timed jump at the given progress (0..1).
// The arc is a half sine wave peaking at height in the middle of the jump.
func JumpArc(progress, height float64) float64 {
	progress = ClampF(progress, 0, 1)
	return math.Sin(progress*math.Pi) * height
}
