package runner

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Clock is the monotonic time source used for gesture timing.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// FeedbackKind tags a discrete cue for sound, haptics or toasts.
type FeedbackKind string

const (
	FeedbackJump      FeedbackKind = "jump"
	FeedbackSlide     FeedbackKind = "slide"
	FeedbackFlip      FeedbackKind = "flip"
	FeedbackLane      FeedbackKind = "lane"
	FeedbackCollision FeedbackKind = "collision"
	FeedbackAbsorb    FeedbackKind = "absorb"
	FeedbackPowerup   FeedbackKind = "powerup"
	FeedbackChallenge FeedbackKind = "challenge"
	FeedbackGameOver  FeedbackKind = "gameover"
)

// Feedback is one cue emitted by the simulation. Epoch identifies the
// session that produced it so presentation timers can drop stale cues.
type Feedback struct {
	Epoch  uint64
	Kind   FeedbackKind
	Detail string // obstacle or power-up name, flip bonus, challenge id
	Damage bool   // collision cost a life
}

// FeedbackSink receives cues. It is called synchronously inside Tick.
type FeedbackSink interface {
	Emit(Feedback) error
}

// Persistence loads and stores run results at session boundaries.
type Persistence interface {
	LoadBestScore() (int, error)
	SaveSummary(Summary) error
}

// Publisher receives the snapshot at the end of every tick.
type Publisher interface {
	Publish(Snapshot) error
}

// FeedbackFunc adapts a function to FeedbackSink.
type FeedbackFunc func(Feedback) error

// Emit calls f.
func (f FeedbackFunc) Emit(fb Feedback) error { return f(fb) }

// PublisherFunc adapts a function to Publisher.
type PublisherFunc func(Snapshot) error

// Publish calls f.
func (f PublisherFunc) Publish(s Snapshot) error { return f(s) }

// Publishers fans one snapshot out to several publishers. Every publisher
// is called even if an earlier one fails; the first error is returned.
type Publishers []Publisher

// Publish implements Publisher.
func (ps Publishers) Publish(s Snapshot) error {
	var first error
	for _, p := range ps {
		if err := p.Publish(s); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// guard runs a collaborator call, turning panics into errors and logging
// failures. It never lets a failure reach the caller.
func guard(logger *log.Logger, what string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("collaborator panicked", "call", what, "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	if err := fn(); err != nil {
		logger.Warn("collaborator failed", "call", what, "error", err)
		return false
	}
	return true
}
