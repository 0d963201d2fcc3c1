// Package runner implements the three-lane endless runner simulation.
// The player dodges obstacles and collects power-ups while the track
// scrolls toward them at an ever increasing speed.
package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when a lifecycle call does not apply
	// to the current status. The controller state is left unchanged.
	ErrInvalidTransition = errors.New("invalid state transition")
	// ErrUnknownEntity is returned for obstacle or power-up names that do not exist.
	ErrUnknownEntity = errors.New("unknown entity type")
)

// Status is the controller state.
type Status int

const (
	StatusLoading Status = iota
	StatusMenu
	StatusPlaying
	StatusPaused
	StatusGameOver
)

var statusNames = [...]string{"loading", "menu", "playing", "paused", "gameover"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// MarshalText encodes the status by name for the HUD feed.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Pose is the exclusive movement state of the player.
type Pose int

const (
	PoseGrounded Pose = iota
	PoseJumping
	PoseSliding
	PoseFlipping
)

var poseNames = [...]string{"grounded", "jumping", "sliding", "flipping"}

func (p Pose) String() string {
	if int(p) < len(poseNames) {
		return poseNames[p]
	}
	return fmt.Sprintf("pose(%d)", int(p))
}

// MarshalText encodes the pose by name.
func (p Pose) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Rule decides what an obstacle does on contact.
type Rule int

const (
	RuleDamage   Rule = iota // always hurts
	RuleJump                 // hurts unless airborne
	RuleSlide                // hurts unless sliding
	RuleScramble             // never hurts, moves the player to a random lane
)

// ObstacleType identifies an obstacle variant.
type ObstacleType int

const (
	ObstaclePolice ObstacleType = iota
	ObstacleCar
	ObstacleBarrier
	ObstaclePigeon
	ObstacleSyringe
	ObstacleBag
	ObstacleCard
	ObstacleStraw
	ObstacleCount
)

var obstacleNames = [ObstacleCount]string{"police", "car", "barrier", "pigeon", "syringe", "bag", "card", "straw"}

func (t ObstacleType) String() string {
	if t >= 0 && t < ObstacleCount {
		return obstacleNames[t]
	}
	return fmt.Sprintf("obstacle(%d)", int(t))
}

// Rule returns the contact rule of the obstacle type.
func (t ObstacleType) Rule() Rule {
	switch t {
	case ObstacleSyringe:
		return RuleJump
	case ObstacleCard:
		return RuleSlide
	case ObstacleStraw:
		return RuleScramble
	default:
		return RuleDamage
	}
}

// ParseObstacle converts a name such as "police" into an ObstacleType.
func ParseObstacle(name string) (ObstacleType, error) {
	for i, n := range obstacleNames {
		if n == name {
			return ObstacleType(i), nil
		}
	}
	return 0, fmt.Errorf("runner: %w: obstacle %q", ErrUnknownEntity, name)
}

// PowerupType identifies a power-up variant.
type PowerupType int

const (
	PowerupSpeedBoost PowerupType = iota
	PowerupInvulnerability
	PowerupExtraLife
	PowerupShield
	PowerupCount
)

var powerupNames = [PowerupCount]string{"speed-boost", "invulnerability", "extra-life", "shield"}

func (t PowerupType) String() string {
	if t >= 0 && t < PowerupCount {
		return powerupNames[t]
	}
	return fmt.Sprintf("powerup(%d)", int(t))
}

// Timed reports whether the power-up has a duration in the power-up table.
func (t PowerupType) Timed() bool {
	return t == PowerupSpeedBoost || t == PowerupInvulnerability
}

// ParsePowerup converts a name such as "shield" into a PowerupType.
func ParsePowerup(name string) (PowerupType, error) {
	for i, n := range powerupNames {
		if n == name {
			return PowerupType(i), nil
		}
	}
	return 0, fmt.Errorf("runner: %w: power-up %q", ErrUnknownEntity, name)
}

// Kind tags an entity.
type Kind int

const (
	KindObstacle Kind = iota
	KindPowerup
	KindParticle
)

var kindNames = [...]string{"obstacle", "powerup", "particle"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Powerups holds the remaining seconds of each timed power-up.
// Zero means inactive.
type Powerups [PowerupCount]float64

// Active reports whether the power-up has time left.
func (p Powerups) Active(t PowerupType) bool {
	return p[t] > 0
}
