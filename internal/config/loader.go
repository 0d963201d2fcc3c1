package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.fofr/configs/runner.{yaml,toml} -> ./configs/runner.{yaml,toml} -> embedded default.
// Keys missing from a file keep their default values.
func LoadRunner(customPath string) (RunnerConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := decodeRunner(customPath, data)
		if err != nil {
			return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return RunnerConfig{}, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		cfg, err := decodeRunner(path, data)
		if err != nil || cfg.Validate() != nil {
			continue
		}
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := decodeRunner("runner.yaml", defaultRunnerYAML)
	if err != nil {
		return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// decodeRunner picks the decoder by file extension. Anything that is not
// .toml is treated as YAML.
func decodeRunner(path string, data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	// Lists are replaced, not merged.
	cfg.Track.Lanes = nil
	cfg.Spawn.Obstacles = nil
	cfg.Spawn.Powerups = nil

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		_, err = toml.Decode(string(data), &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return RunnerConfig{}, err
	}

	def := DefaultRunnerConfig()
	if cfg.Track.Lanes == nil {
		cfg.Track.Lanes = def.Track.Lanes
	}
	if cfg.Spawn.Obstacles == nil {
		cfg.Spawn.Obstacles = def.Spawn.Obstacles
	}
	if cfg.Spawn.Powerups == nil {
		cfg.Spawn.Powerups = def.Spawn.Powerups
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	for _, name := range []string{"runner.yaml", "runner.toml"} {
		if p := userConfigPath(name); p != "" {
			paths = append(paths, p)
		}
	}
	return append(paths, filepath.Join("configs", "runner.yaml"), filepath.Join("configs", "runner.toml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".fofr", "configs", filename)
}

// Validate reports the first value that would break the simulation.
func (c RunnerConfig) Validate() error {
	switch {
	case len(c.Track.Lanes) != 3:
		return fmt.Errorf("%w: track.lanes must have 3 entries, got %d", ErrInvalidConfig, len(c.Track.Lanes))
	case c.Track.CullY <= c.Track.PlayerY:
		return fmt.Errorf("%w: track.cull_y must be below player_y", ErrInvalidConfig)
	case c.Track.PixelsPerUnit <= 0:
		return fmt.Errorf("%w: track.pixels_per_unit must be positive", ErrInvalidConfig)
	case c.Physics.BaseSpeed <= 0 || c.Physics.MaxSpeed < c.Physics.BaseSpeed:
		return fmt.Errorf("%w: physics speeds must satisfy 0 < base_speed <= max_speed", ErrInvalidConfig)
	case c.Physics.MaxFrameDelta <= 0:
		return fmt.Errorf("%w: physics.max_frame_delta must be positive", ErrInvalidConfig)
	case c.Physics.StallThreshold <= c.Physics.MaxFrameDelta:
		return fmt.Errorf("%w: physics.stall_threshold must exceed max_frame_delta", ErrInvalidConfig)
	case c.Player.JumpDuration <= 0 || c.Player.SlideDuration <= 0:
		return fmt.Errorf("%w: player move durations must be positive", ErrInvalidConfig)
	case c.Player.SlideHeight <= 0 || c.Player.SlideHeight > c.Player.Height:
		return fmt.Errorf("%w: player.slide_height must be in (0, height]", ErrInvalidConfig)
	case c.Player.FlipGravity <= 0:
		return fmt.Errorf("%w: player.flip_gravity must be positive", ErrInvalidConfig)
	case c.Spawn.ObstacleSize <= 0 || c.Spawn.PowerupSize <= 0:
		return fmt.Errorf("%w: spawn entity sizes must be positive", ErrInvalidConfig)
	case c.Session.Lives <= 0:
		return fmt.Errorf("%w: session.lives must be positive", ErrInvalidConfig)
	case len(c.Spawn.Obstacles) == 0:
		return fmt.Errorf("%w: spawn.obstacles is empty", ErrInvalidConfig)
	case c.Powerups.Stacking != "refresh" && c.Powerups.Stacking != "extend":
		return fmt.Errorf("%w: powerups.stacking must be refresh or extend, got %q", ErrInvalidConfig, c.Powerups.Stacking)
	}
	return nil
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Session.Lives = 5
	case DifficultyHard:
		cfg.Session.Lives = 2
	}
}
