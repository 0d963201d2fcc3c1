package runner

import (
	"github.com/vovakirdan/fofr-runner/internal/core"
)

// Entity is a live obstacle, power-up or particle on the track.
type Entity struct {
	ID       uint64
	Kind     Kind
	Obstacle ObstacleType // valid when Kind == KindObstacle
	Powerup  PowerupType  // valid when Kind == KindPowerup
	Lane     int
	Box      core.Box
	VX       float64 // particles only
	VY       float64 // pixels per second, fixed at spawn for obstacles and power-ups
	TTL      float64 // particles only
	Color    core.Color
}

// Registry owns the live entities in spawn order.
type Registry struct {
	obstacles []Entity
	powerups  []Entity
	particles []Entity
	nextID    uint64
	cullY     float64
	gravity   float64 // particle gravity
}

// NewRegistry creates an empty registry. Obstacles and power-ups whose top
// edge passes cullY are dropped.
func NewRegistry(cullY, particleGravity float64) *Registry {
	return &Registry{
		obstacles: make([]Entity, 0, 16),
		powerups:  make([]Entity, 0, 4),
		particles: make([]Entity, 0, 32),
		cullY:     cullY,
		gravity:   particleGravity,
	}
}

// Reset removes every entity and restarts id numbering.
func (r *Registry) Reset() {
	r.obstacles = r.obstacles[:0]
	r.powerups = r.powerups[:0]
	r.particles = r.particles[:0]
	r.nextID = 0
}

func (r *Registry) id() uint64 {
	r.nextID++
	return r.nextID
}

// AddObstacle inserts an obstacle and returns it.
func (r *Registry) AddObstacle(t ObstacleType, lane int, box core.Box, vy float64) Entity {
	e := Entity{ID: r.id(), Kind: KindObstacle, Obstacle: t, Lane: lane, Box: box, VY: vy}
	r.obstacles = append(r.obstacles, e)
	return e
}

// AddPowerup inserts a power-up and returns it.
func (r *Registry) AddPowerup(t PowerupType, lane int, box core.Box, vy float64) Entity {
	e := Entity{ID: r.id(), Kind: KindPowerup, Powerup: t, Lane: lane, Box: box, VY: vy}
	r.powerups = append(r.powerups, e)
	return e
}

// AddParticle inserts a particle at (x, y).
func (r *Registry) AddParticle(x, y, vx, vy, ttl float64, c core.Color) {
	r.particles = append(r.particles, Entity{
		ID:    r.id(),
		Kind:  KindParticle,
		Lane:  -1,
		Box:   core.NewBox(x, y, 4, 4),
		VX:    vx,
		VY:    vy,
		TTL:   ttl,
		Color: c,
	})
}

// Advance moves every entity by dt seconds and culls the ones that left
// the track or expired.
func (r *Registry) Advance(dt float64) {
	r.obstacles = r.advanceTrack(r.obstacles, dt)
	r.powerups = r.advanceTrack(r.powerups, dt)

	valid := r.particles[:0]
	for _, p := range r.particles {
		p.TTL -= dt
		p.Box = p.Box.Translate(p.VX*dt, p.VY*dt)
		p.VY += r.gravity * dt
		if p.TTL > 0 {
			valid = append(valid, p)
		}
	}
	r.particles = valid
}

func (r *Registry) advanceTrack(list []Entity, dt float64) []Entity {
	valid := list[:0]
	for _, e := range list {
		e.Box = e.Box.Translate(0, e.VY*dt)
		if e.Box.Y <= r.cullY {
			valid = append(valid, e)
		}
	}
	return valid
}

// Sweep calls take for each live entity of kind in spawn order and removes
// the ones for which it returns true. A removed entity is never seen again.
func (r *Registry) Sweep(kind Kind, take func(Entity) bool) {
	list := r.list(kind)
	if list == nil {
		return
	}
	valid := (*list)[:0]
	for _, e := range *list {
		if !take(e) {
			valid = append(valid, e)
		}
	}
	*list = valid
}

func (r *Registry) list(kind Kind) *[]Entity {
	switch kind {
	case KindObstacle:
		return &r.obstacles
	case KindPowerup:
		return &r.powerups
	case KindParticle:
		return &r.particles
	}
	return nil
}

// Obstacles returns the live obstacles. The slice must not be modified.
func (r *Registry) Obstacles() []Entity { return r.obstacles }

// Powerups returns the live power-ups. The slice must not be modified.
func (r *Registry) Powerups() []Entity { return r.powerups }

// Particles returns the live particles. The slice must not be modified.
func (r *Registry) Particles() []Entity { return r.particles }

// Len returns the number of live entities of every kind.
func (r *Registry) Len() int {
	return len(r.obstacles) + len(r.powerups) + len(r.particles)
}
