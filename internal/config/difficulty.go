package config

import "math"

// DifficultyManager calculates dynamic game parameters based on play time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after elapsed
// seconds of active play.
func (d *DifficultyManager) Level(elapsed float64) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(elapsed/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// StartSpeed returns the session start speed for the initial level.
func (d *DifficultyManager) StartSpeed(base, max float64) float64 {
	return clampF(base*(1.0+d.initialLevel*d.cfg.Scaling.StartBoost), base, max)
}

// Advance ramps speed by dt seconds of play, never exceeding max.
// When progression is off the speed is held.
func (d *DifficultyManager) Advance(speed, dt, max float64) float64 {
	if !d.IsEnabled() {
		return math.Min(speed, max)
	}
	return math.Min(speed+d.cfg.Scaling.SpeedRamp*dt, max)
}

// SpawnScale returns the obstacle spawn rate multiplier.
func (d *DifficultyManager) SpawnScale(elapsed float64) float64 {
	return 1.0 + d.Level(elapsed)*d.cfg.Scaling.SpawnBoost
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
