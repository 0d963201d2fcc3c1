package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embed cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Track: TrackConfig{
			Lanes:         []float64{130, 260, 390},
			Width:         520,
			PlayerY:       600,
			SpawnY:        -50,
			CullY:         900,
			PixelsPerUnit: 60,
		},
		Player: PlayerConfig{
			Width:           30,
			Height:          40,
			SlideHeight:     20,
			JumpDuration:    0.8,
			JumpHeight:      100,
			SlideDuration:   0.6,
			FlipImpulse:     520,
			FlipGravity:     1300,
			DoubleTapWindow: 0.3,
		},
		Physics: PhysicsConfig{
			BaseSpeed:      3,
			MaxSpeed:       8,
			MaxFrameDelta:  0.05,
			StallThreshold: 0.5,
			DistanceFactor: 10,
			ScoreFactor:    1,
		},
		Spawn: SpawnConfig{
			ObstacleRate:       0.3,
			PowerupRate:        0.1,
			ObstacleSpeedBonus: 2,
			PowerupSpeedBonus:  1,
			ObstacleSize:       40,
			PowerupSize:        30,
			Obstacles:          []string{"police", "car", "barrier", "pigeon", "bag", "syringe", "card", "straw"},
			Powerups:           []string{"speed-boost", "invulnerability", "extra-life", "shield"},
		},
		Powerups: PowerupConfig{
			SpeedMultiplier:         1.5,
			SpeedDuration:           5,
			InvulnerabilityDuration: 3,
			Stacking:                "refresh",
		},
		Scoring: ScoringConfig{
			FlipBonus:    500,
			ComboTimeout: 3,
		},
		Particles: ParticleConfig{
			Count:   8,
			Life:    1,
			Gravity: 200,
			SpreadX: 200,
			SpreadY: 100,
		},
		Session: SessionConfig{
			Lives:        3,
			LoadingDelay: 1.5,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 120,
			},
			Scaling: ScalingConfig{
				SpeedRamp:  0.2,
				StartBoost: 0.5,
				SpawnBoost: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
