// Package config provides YAML/TOML game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all tunables of the simulation.
// Distances are track pixels, durations are seconds, speeds are in
// abstract speed units (1 unit = Track.PixelsPerUnit pixels per second).
type RunnerConfig struct {
	Track      TrackConfig      `yaml:"track" toml:"track"`
	Player     PlayerConfig     `yaml:"player" toml:"player"`
	Physics    PhysicsConfig    `yaml:"physics" toml:"physics"`
	Spawn      SpawnConfig      `yaml:"spawn" toml:"spawn"`
	Powerups   PowerupConfig    `yaml:"powerups" toml:"powerups"`
	Scoring    ScoringConfig    `yaml:"scoring" toml:"scoring"`
	Particles  ParticleConfig   `yaml:"particles" toml:"particles"`
	Session    SessionConfig    `yaml:"session" toml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// TrackConfig describes the track geometry.
type TrackConfig struct {
	Lanes         []float64 `yaml:"lanes" toml:"lanes"`                     // Left edge of each lane
	Width         float64   `yaml:"width" toml:"width"`                     // Visible track width
	PlayerY       float64   `yaml:"player_y" toml:"player_y"`               // Top of the standing player box
	SpawnY        float64   `yaml:"spawn_y" toml:"spawn_y"`                 // Entities appear here, above the view
	CullY         float64   `yaml:"cull_y" toml:"cull_y"`                   // Entities past this line are removed
	PixelsPerUnit float64   `yaml:"pixels_per_unit" toml:"pixels_per_unit"` // Pixels per second per speed unit
}

// PlayerConfig defines the player hit-box and move timings.
type PlayerConfig struct {
	Width           float64 `yaml:"width" toml:"width"`
	Height          float64 `yaml:"height" toml:"height"`
	SlideHeight     float64 `yaml:"slide_height" toml:"slide_height"`
	JumpDuration    float64 `yaml:"jump_duration" toml:"jump_duration"`
	JumpHeight      float64 `yaml:"jump_height" toml:"jump_height"`
	SlideDuration   float64 `yaml:"slide_duration" toml:"slide_duration"`
	FlipImpulse     float64 `yaml:"flip_impulse" toml:"flip_impulse"`
	FlipGravity     float64 `yaml:"flip_gravity" toml:"flip_gravity"`
	DoubleTapWindow float64 `yaml:"double_tap_window" toml:"double_tap_window"`
}

// PhysicsConfig defines the speed envelope and frame limits.
type PhysicsConfig struct {
	BaseSpeed      float64 `yaml:"base_speed" toml:"base_speed"`
	MaxSpeed       float64 `yaml:"max_speed" toml:"max_speed"`
	MaxFrameDelta  float64 `yaml:"max_frame_delta" toml:"max_frame_delta"`
	StallThreshold float64 `yaml:"stall_threshold" toml:"stall_threshold"`
	DistanceFactor float64 `yaml:"distance_factor" toml:"distance_factor"` // Meters per speed unit per second
	ScoreFactor    float64 `yaml:"score_factor" toml:"score_factor"`       // Points per speed unit per second
}

// SpawnConfig defines the spawn director rates and entity shapes.
type SpawnConfig struct {
	ObstacleRate       float64  `yaml:"obstacle_rate" toml:"obstacle_rate"` // Per speed unit per second
	PowerupRate        float64  `yaml:"powerup_rate" toml:"powerup_rate"`   // Per second
	ObstacleSpeedBonus float64  `yaml:"obstacle_speed_bonus" toml:"obstacle_speed_bonus"`
	PowerupSpeedBonus  float64  `yaml:"powerup_speed_bonus" toml:"powerup_speed_bonus"`
	ObstacleSize       float64  `yaml:"obstacle_size" toml:"obstacle_size"`
	PowerupSize        float64  `yaml:"powerup_size" toml:"powerup_size"`
	Obstacles          []string `yaml:"obstacles" toml:"obstacles"`
	Powerups           []string `yaml:"powerups" toml:"powerups"`
}

// PowerupConfig defines power-up effects.
type PowerupConfig struct {
	SpeedMultiplier         float64 `yaml:"speed_multiplier" toml:"speed_multiplier"`
	SpeedDuration           float64 `yaml:"speed_duration" toml:"speed_duration"`
	InvulnerabilityDuration float64 `yaml:"invulnerability_duration" toml:"invulnerability_duration"`
	Stacking                string  `yaml:"stacking" toml:"stacking"` // "refresh" or "extend"
}

// ScoringConfig defines skill bonuses and the combo window.
type ScoringConfig struct {
	FlipBonus    int     `yaml:"flip_bonus" toml:"flip_bonus"`
	ComboTimeout float64 `yaml:"combo_timeout" toml:"combo_timeout"`
}

// ParticleConfig defines visual particle bursts.
type ParticleConfig struct {
	Count   int     `yaml:"count" toml:"count"`
	Life    float64 `yaml:"life" toml:"life"`
	Gravity float64 `yaml:"gravity" toml:"gravity"`
	SpreadX float64 `yaml:"spread_x" toml:"spread_x"`
	SpreadY float64 `yaml:"spread_y" toml:"spread_y"`
}

// SessionConfig defines per-session starting values.
type SessionConfig struct {
	Lives        int     `yaml:"lives" toml:"lives"`
	LoadingDelay float64 `yaml:"loading_delay" toml:"loading_delay"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string  `yaml:"type" toml:"type"`     // "time" or "none"
	MaxAt float64 `yaml:"max_at" toml:"max_at"` // Seconds of play at which max level is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedRamp  float64 `yaml:"speed_ramp" toml:"speed_ramp"`   // Speed units gained per second of play
	StartBoost float64 `yaml:"start_boost" toml:"start_boost"` // Start speed multiplier added at level 1
	SpawnBoost float64 `yaml:"spawn_boost" toml:"spawn_boost"` // Obstacle rate multiplier added at level 1
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
// Unknown or empty values yield "" (use config as loaded).
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
