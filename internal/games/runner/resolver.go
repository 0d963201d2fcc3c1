package runner

import (
	"math/rand"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
)

// Particle tints.
const (
	tintHit     = core.ColorRed
	tintAbsorb  = core.ColorCyan
	tintPickup  = core.ColorMagenta
	tintScatter = core.ColorYellow
)

// Resolver tests the player against live entities and applies effects.
// Every overlapping entity is removed in the same pass, so its effect is
// applied exactly once.
type Resolver struct {
	cfg  *config.RunnerConfig
	rng  *rand.Rand
	emit func(Feedback)
}

// NewResolver creates a resolver. emit receives every cue the resolver
// produces; it must not call back into the resolver.
func NewResolver(cfg *config.RunnerConfig, rng *rand.Rand, emit func(Feedback)) *Resolver {
	if emit == nil {
		emit = func(Feedback) {}
	}
	return &Resolver{cfg: cfg, rng: rng, emit: emit}
}

// Resolve handles all overlaps for the current tick. Losing the last life
// ends resolution, so nothing collected later in the pass can revive the
// player.
func (r *Resolver) Resolve(s *Session, p *Player, reg *Registry) {
	box := p.Box(r.cfg.Track)

	reg.Sweep(KindObstacle, func(o Entity) bool {
		if s.Lives == 0 || !box.Overlaps(o.Box) {
			return false
		}
		r.hitObstacle(s, p, reg, o)
		// A lane scramble moves the player mid-pass.
		box = p.Box(r.cfg.Track)
		return true
	})
	if s.Lives == 0 {
		return
	}

	reg.Sweep(KindPowerup, func(pu Entity) bool {
		if !box.Overlaps(pu.Box) {
			return false
		}
		s.Collect(pu.Powerup, p, r.cfg.Powerups, r.cfg.Physics.MaxSpeed)
		r.burst(reg, pu.Box, tintPickup)
		r.emit(Feedback{Kind: FeedbackPowerup, Detail: pu.Powerup.String()})
		return true
	})
}

func (r *Resolver) hitObstacle(s *Session, p *Player, reg *Registry, o Entity) {
	name := o.Obstacle.String()

	// Invulnerability absorbs without being used up.
	if s.Powerups.Active(PowerupInvulnerability) {
		s.Stats.Absorbed++
		r.burst(reg, o.Box, tintAbsorb)
		r.emit(Feedback{Kind: FeedbackAbsorb, Detail: name})
		return
	}
	if p.Shield {
		p.Shield = false
		s.Stats.Absorbed++
		r.burst(reg, o.Box, tintAbsorb)
		r.emit(Feedback{Kind: FeedbackAbsorb, Detail: name})
		return
	}

	damage := false
	switch o.Obstacle.Rule() {
	case RuleJump:
		if p.Airborne() {
			s.Stats.JumpDodges++
		} else {
			damage = true
		}
	case RuleSlide:
		if p.Pose == PoseSliding {
			s.Stats.SlideDodges++
		} else {
			damage = true
		}
	case RuleScramble:
		p.Lane = r.rng.Intn(LaneCount)
		s.Stats.Scrambles++
		r.burst(reg, o.Box, tintScatter)
		r.emit(Feedback{Kind: FeedbackCollision, Detail: name})
		return
	default:
		damage = true
	}

	if damage && s.Lives > 0 {
		if s.Damage() {
			s.Cause = name
		}
	}
	r.burst(reg, o.Box, tintHit)
	r.emit(Feedback{Kind: FeedbackCollision, Detail: name, Damage: damage})
}

// burst spawns a particle spray at the top centre of box.
func (r *Resolver) burst(reg *Registry, box core.Box, tint core.Color) {
	pc := r.cfg.Particles
	x, _ := box.Center()
	for i := 0; i < pc.Count; i++ {
		vx := (r.rng.Float64() - 0.5) * pc.SpreadX
		vy := -r.rng.Float64() * pc.SpreadY
		reg.AddParticle(x, box.Y, vx, vy, pc.Life, tint)
	}
}
