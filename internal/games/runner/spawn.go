package runner

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
)

// Director decides when, where and what to spawn. Every tick it draws one
// Bernoulli trial for an obstacle with probability proportional to
// speed*dt and one for a power-up with probability proportional to dt.
type Director struct {
	rng        *rand.Rand
	cfg        config.SpawnConfig
	track      config.TrackConfig
	difficulty *config.DifficultyManager
	obstacles  []ObstacleType
	powerups   []PowerupType
}

// NewDirector creates a spawn director for the configured entity lists.
func NewDirector(cfg *config.RunnerConfig, diff *config.DifficultyManager, seed int64) (*Director, error) {
	d := &Director{
		cfg:        cfg.Spawn,
		track:      cfg.Track,
		difficulty: diff,
	}
	for _, name := range cfg.Spawn.Obstacles {
		t, err := ParseObstacle(name)
		if err != nil {
			return nil, fmt.Errorf("runner: spawn list: %w", err)
		}
		d.obstacles = append(d.obstacles, t)
	}
	for _, name := range cfg.Spawn.Powerups {
		t, err := ParsePowerup(name)
		if err != nil {
			return nil, fmt.Errorf("runner: spawn list: %w", err)
		}
		d.powerups = append(d.powerups, t)
	}
	d.Reset(seed)
	return d, nil
}

// Reset reseeds the random source in place.
func (d *Director) Reset(seed int64) {
	if d.rng == nil {
		d.rng = rand.New(rand.NewSource(seed))
		return
	}
	d.rng.Seed(seed)
}

// Rand exposes the director's random source so the whole session draws
// from one seeded stream.
func (d *Director) Rand() *rand.Rand {
	return d.rng
}

// ObstacleChance returns the obstacle spawn probability for one tick.
func (d *Director) ObstacleChance(speed, dt, elapsed float64) float64 {
	return math.Min(1, speed*dt*d.cfg.ObstacleRate*d.difficulty.SpawnScale(elapsed))
}

// PowerupChance returns the power-up spawn probability for one tick.
func (d *Director) PowerupChance(dt float64) float64 {
	return math.Min(1, dt*d.cfg.PowerupRate)
}

// Step runs the spawn trials for one tick.
func (d *Director) Step(dt, speed, elapsed float64, reg *Registry) {
	if len(d.obstacles) > 0 && d.rng.Float64() < d.ObstacleChance(speed, dt, elapsed) {
		t := d.obstacles[d.rng.Intn(len(d.obstacles))]
		d.SpawnObstacle(t, d.rng.Intn(LaneCount), speed, reg)
	}
	if len(d.powerups) > 0 && d.rng.Float64() < d.PowerupChance(dt) {
		t := d.powerups[d.rng.Intn(len(d.powerups))]
		d.SpawnPowerup(t, d.rng.Intn(LaneCount), speed, reg)
	}
}

// SpawnObstacle places an obstacle above the visible track in lane. It moves
// at the speed current at spawn time for its whole life.
func (d *Director) SpawnObstacle(t ObstacleType, lane int, speed float64, reg *Registry) Entity {
	lane = core.Clamp(lane, 0, LaneCount-1)
	size := d.cfg.ObstacleSize
	box := core.NewBox(d.track.Lanes[lane], d.track.SpawnY, size, size)
	return reg.AddObstacle(t, lane, box, (speed+d.cfg.ObstacleSpeedBonus)*d.track.PixelsPerUnit)
}

// SpawnPowerup places a power-up above the visible track in lane.
func (d *Director) SpawnPowerup(t PowerupType, lane int, speed float64, reg *Registry) Entity {
	lane = core.Clamp(lane, 0, LaneCount-1)
	size := d.cfg.PowerupSize
	box := core.NewBox(d.track.Lanes[lane], d.track.SpawnY, size, size)
	return reg.AddPowerup(t, lane, box, (speed+d.cfg.PowerupSpeedBonus)*d.track.PixelsPerUnit)
}
