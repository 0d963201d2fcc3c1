package runner

import (
	"time"

	"github.com/vovakirdan/fofr-runner/internal/core"
)

// EntityView is a read-only copy of an entity for presentation.
type EntityView struct {
	ID   uint64  `json:"id"`
	Kind Kind    `json:"kind"`
	Type string  `json:"type,omitempty"`
	Lane int     `json:"lane"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	TTL  float64 `json:"ttl,omitempty"`

	Color core.Color `json:"-"` // particle tint
}

// Snapshot is the state published after every tick.
type Snapshot struct {
	Epoch      uint64             `json:"epoch"`
	Status     Status             `json:"status"`
	Score      int                `json:"score"`
	Distance   float64            `json:"distance"`
	Speed      float64            `json:"speed"`
	TopSpeed   float64            `json:"topSpeed"`
	Lives      int                `json:"lives"`
	Combo      int                `json:"combo"`
	ComboTimer float64            `json:"comboTimer"`
	Powerups   Powerups           `json:"powerups"`
	Shield     bool               `json:"shield"`
	Lane       int                `json:"lane"`
	Pose       Pose               `json:"pose"`
	Offset     float64            `json:"offset"`
	BestScore  int                `json:"bestScore"`
	Loading    float64            `json:"loading,omitempty"` // 0..1 while loading
	Challenge  *ChallengeProgress `json:"challenge,omitempty"`
	Entities   []EntityView       `json:"entities"`
}

// ChallengeResult is the outcome of a challenge run.
type ChallengeResult struct {
	ID        string  `json:"id"`
	Value     float64 `json:"value"`
	Completed bool    `json:"completed"`
}

// Summary is handed to persistence when a session ends.
type Summary struct {
	Epoch        uint64           `json:"epoch"`
	Score        int              `json:"score"`
	Distance     float64          `json:"distance"`
	TopSpeed     float64          `json:"topSpeed"`
	Cause        string           `json:"cause"`
	Duration     float64          `json:"duration"` // simulated seconds
	Flips        int              `json:"flips"`
	Powerups     int              `json:"powerups"`
	Hits         int              `json:"hits"`
	Challenge    *ChallengeResult `json:"challenge,omitempty"`
	Achievements []string         `json:"achievements"`
	NewRecord    bool             `json:"newRecord"`
	EndedAt      time.Time        `json:"endedAt"`
}

// Session causes other than the obstacle that took the last life.
const (
	CauseEnded     = "ended"
	CauseAbandoned = "abandoned"
	CauseRestarted = "restarted"
)

func viewOf(e Entity) EntityView {
	v := EntityView{
		ID:    e.ID,
		Kind:  e.Kind,
		Lane:  e.Lane,
		X:     e.Box.X,
		Y:     e.Box.Y,
		W:     e.Box.W,
		H:     e.Box.H,
		Color: e.Color,
	}
	switch e.Kind {
	case KindObstacle:
		v.Type = e.Obstacle.String()
	case KindPowerup:
		v.Type = e.Powerup.String()
	case KindParticle:
		v.TTL = e.TTL
	}
	return v
}
