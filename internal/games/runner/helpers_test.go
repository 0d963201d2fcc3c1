package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/fofr-runner/internal/config"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) Advance(d time.Duration) { f.now = f.now.Add(d) }

type recordSink struct {
	events []Feedback
}

func (r *recordSink) Emit(f Feedback) error {
	r.events = append(r.events, f)
	return nil
}

func (r *recordSink) kinds() []FeedbackKind {
	out := make([]FeedbackKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recordSink) count(kind FeedbackKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type memStore struct {
	best      int
	loadErr   error
	summaries []Summary
}

func (m *memStore) LoadBestScore() (int, error) { return m.best, m.loadErr }

func (m *memStore) SaveSummary(s Summary) error {
	m.summaries = append(m.summaries, s)
	return nil
}

// quietConfig disables random spawns and speed ramping so tests control
// every entity on the track.
func quietConfig() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawn.ObstacleRate = 0
	cfg.Spawn.PowerupRate = 0
	config.ApplyRunnerPreset(&cfg, config.DifficultyFixed)
	return cfg
}

func newPlaying(t *testing.T, cfg config.RunnerConfig, opts ...Option) *Controller {
	t.Helper()
	opts = append([]Option{WithSeed(1)}, opts...)
	c, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.MarkReady()
	if err := c.StartSession(); err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return c
}

const frame = 0.05

// tickUntil ticks with a fixed frame until done returns true.
func tickUntil(t *testing.T, c *Controller, limit int, done func() bool) {
	t.Helper()
	for i := 0; i < limit; i++ {
		c.Tick(frame)
		if done() {
			return
		}
	}
	t.Fatalf("condition not reached after %d ticks", limit)
}

func ticks(c *Controller, n int) {
	for i := 0; i < n; i++ {
		c.Tick(frame)
	}
}

func mustInvalid(t *testing.T, err error) {
	t.Helper()
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("err = %v, want ErrInvalidTransition", err)
	}
}
