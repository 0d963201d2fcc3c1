package runner

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownChallenge is returned for challenges that cannot be tracked.
var ErrUnknownChallenge = errors.New("unknown challenge")

// ChallengeKind selects the counter a challenge tracks.
type ChallengeKind string

const (
	ChallengeDistanceNoPowerup ChallengeKind = "distance_no_powerup"
	ChallengeSlideObstacles    ChallengeKind = "slide_obstacles"
	ChallengeCleanRun          ChallengeKind = "clean_run"
	ChallengeMaxSpeed          ChallengeKind = "max_speed"
	ChallengeCollectPowerups   ChallengeKind = "collect_powerups"
)

// Challenge is a goal for a single session.
type Challenge struct {
	ID     string        `json:"id"`
	Name   string        `json:"name"`
	Desc   string        `json:"desc"`
	Kind   ChallengeKind `json:"kind"`
	Target float64       `json:"target"`
}

var dailyChallenges = []Challenge{
	{ID: "minimalist", Name: "Minimalist Ride", Desc: "Survive 400 m without a power-up", Kind: ChallengeDistanceNoPowerup, Target: 400},
	{ID: "slide-master", Name: "Slide Master", Desc: "Slide under 5 obstacles", Kind: ChallengeSlideObstacles, Target: 5},
	{ID: "karlin-survival", Name: "Karlin Survival", Desc: "Run 300 m without a collision", Kind: ChallengeCleanRun, Target: 300},
	{ID: "fast-pedro", Name: "Fast Pedro", Desc: "Reach speed 7", Kind: ChallengeMaxSpeed, Target: 7},
	{ID: "collector", Name: "Collector", Desc: "Collect 10 power-ups", Kind: ChallengeCollectPowerups, Target: 10},
}

// Challenges returns every known challenge.
func Challenges() []Challenge {
	out := make([]Challenge, len(dailyChallenges))
	copy(out, dailyChallenges)
	return out
}

// ChallengeByID looks up a challenge.
func ChallengeByID(id string) (Challenge, bool) {
	for _, c := range dailyChallenges {
		if c.ID == id {
			return c, true
		}
	}
	return Challenge{}, false
}

// DailyChallenge returns the challenge of the calendar day of t.
// Every caller sees the same challenge for the same date.
func DailyChallenge(t time.Time) Challenge {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
	idx := int(day % int64(len(dailyChallenges)))
	if idx < 0 {
		idx += len(dailyChallenges)
	}
	return dailyChallenges[idx]
}

func (c Challenge) validate() error {
	switch c.Kind {
	case ChallengeDistanceNoPowerup, ChallengeSlideObstacles, ChallengeCleanRun,
		ChallengeMaxSpeed, ChallengeCollectPowerups:
	default:
		return fmt.Errorf("runner: %w: kind %q", ErrUnknownChallenge, c.Kind)
	}
	if c.Target <= 0 {
		return fmt.Errorf("runner: %w: target must be positive", ErrUnknownChallenge)
	}
	return nil
}

// ChallengeProgress tracks a challenge during a session.
type ChallengeProgress struct {
	Challenge Challenge `json:"challenge"`
	Value     float64   `json:"value"`
	Completed bool      `json:"completed"`
	Failed    bool      `json:"failed"`
}

// update refreshes the tracked value from the session.
// Returns true on the tick the challenge is completed.
func (cp *ChallengeProgress) update(s *Session) bool {
	if cp.Completed || cp.Failed {
		return false
	}
	switch cp.Challenge.Kind {
	case ChallengeDistanceNoPowerup:
		if s.Stats.PowerupsCollected > 0 {
			cp.Failed = true
			return false
		}
		cp.Value = s.Distance
	case ChallengeSlideObstacles:
		cp.Value = float64(s.Stats.SlideDodges)
	case ChallengeCleanRun:
		if s.Stats.CleanDistance > cp.Value {
			cp.Value = s.Stats.CleanDistance
		}
	case ChallengeMaxSpeed:
		cp.Value = s.TopSpeed
	case ChallengeCollectPowerups:
		cp.Value = float64(s.Stats.PowerupsCollected)
	}
	if cp.Value >= cp.Challenge.Target {
		cp.Completed = true
		return true
	}
	return false
}

// Achievement identifiers.
const (
	AchievementFirstRun    = "first-run"
	AchievementScore1000   = "score-1000"
	AchievementDistance1k  = "distance-1000"
	AchievementTopSpeed    = "top-speed"
	AchievementFlipMaster  = "flip-master"
	AchievementCollector   = "collector"
	AchievementUntouchable = "untouchable"
)

// Achievements returns the achievements earned by a finished run.
func Achievements(sum Summary, maxSpeed float64) []string {
	out := []string{AchievementFirstRun}
	if sum.Score >= 1000 {
		out = append(out, AchievementScore1000)
	}
	if sum.Distance >= 1000 {
		out = append(out, AchievementDistance1k)
	}
	if sum.TopSpeed >= maxSpeed {
		out = append(out, AchievementTopSpeed)
	}
	if sum.Flips >= 10 {
		out = append(out, AchievementFlipMaster)
	}
	if sum.Powerups >= 5 {
		out = append(out, AchievementCollector)
	}
	if sum.Hits == 0 && sum.Distance >= 500 {
		out = append(out, AchievementUntouchable)
	}
	return out
}
