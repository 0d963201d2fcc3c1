package runner

import (
	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
)

// LaneCount is the number of lanes on the track.
const LaneCount = 3

// Player is the player state machine. Only one of jumping, sliding and
// flipping can be active at a time.
type Player struct {
	Lane   int
	Pose   Pose
	Offset float64 // height above ground, 0 when grounded
	Shield bool

	timer float64         // seconds spent in the current timed pose
	arc   core.Projectile // flip body
	cfg   config.PlayerConfig
}

// NewPlayer creates a grounded player in the middle lane.
func NewPlayer(cfg config.PlayerConfig) Player {
	p := Player{cfg: cfg}
	p.Reset()
	return p
}

// Reset puts the player back in the middle lane, grounded, without a shield.
func (p *Player) Reset() {
	p.Lane = LaneCount / 2
	p.Pose = PoseGrounded
	p.Offset = 0
	p.Shield = false
	p.timer = 0
	p.arc = core.Projectile{}
}

// Velocity returns the current vertical velocity in pixels per second.
func (p *Player) Velocity() float64 {
	if p.Pose == PoseFlipping {
		return p.arc.Velocity
	}
	return 0
}

// Airborne reports whether the player clears jump-required obstacles.
func (p *Player) Airborne() bool {
	return p.Pose == PoseJumping || p.Pose == PoseFlipping
}

// Shift moves the player one lane left (dir < 0) or right (dir > 0).
// Returns false at the track edge.
func (p *Player) Shift(dir int) bool {
	lane := core.Clamp(p.Lane+dir, 0, LaneCount-1)
	if lane == p.Lane {
		return false
	}
	p.Lane = lane
	return true
}

// Jump starts a timed jump from the ground.
func (p *Player) Jump() bool {
	if p.Pose != PoseGrounded {
		return false
	}
	p.Pose = PoseJumping
	p.timer = 0
	return true
}

// Slide starts a timed slide from the ground.
func (p *Player) Slide() bool {
	if p.Pose != PoseGrounded {
		return false
	}
	p.Pose = PoseSliding
	p.timer = 0
	return true
}

// Flip launches the flip from the ground or during the rising half of a jump.
func (p *Player) Flip() bool {
	switch p.Pose {
	case PoseGrounded:
	case PoseJumping:
		if p.timer >= p.cfg.JumpDuration/2 {
			return false
		}
	default:
		return false
	}
	p.Pose = PoseFlipping
	p.timer = 0
	p.arc = core.Projectile{Offset: p.Offset, Velocity: p.cfg.FlipImpulse}
	return true
}

// Update advances the active pose by dt seconds.
func (p *Player) Update(dt float64) {
	switch p.Pose {
	case PoseJumping:
		p.timer += dt
		if p.timer >= p.cfg.JumpDuration {
			p.land()
			return
		}
		p.Offset = core.JumpArc(p.timer/p.cfg.JumpDuration, p.cfg.JumpHeight)
	case PoseSliding:
		p.timer += dt
		if p.timer >= p.cfg.SlideDuration {
			p.land()
		}
	case PoseFlipping:
		if p.arc.Integrate(p.cfg.FlipGravity, dt) {
			p.land()
			return
		}
		p.Offset = p.arc.Offset
	}
}

func (p *Player) land() {
	p.Pose = PoseGrounded
	p.Offset = 0
	p.timer = 0
	p.arc = core.Projectile{}
}

// Box returns the hit-box on the track. The box stays on the player line
// while airborne; sliding lowers it to the slide height at the feet.
func (p *Player) Box(track config.TrackConfig) core.Box {
	h := p.cfg.Height
	if p.Pose == PoseSliding {
		h = p.cfg.SlideHeight
	}
	return core.NewBox(track.Lanes[p.Lane], track.PlayerY+p.cfg.Height-h, p.cfg.Width, h)
}
