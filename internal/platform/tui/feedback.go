package tui

import (
	"fmt"
	"io"

	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

const (
	toastLife = 1.5 // seconds on screen
	maxToasts = 3
)

// Toast is one short on-screen message.
type Toast struct {
	Text  string
	Color core.Color
	epoch uint64
	ttl   float64
}

// Toasts is the terminal feedback sink. It turns simulation cues into
// short messages and rings the terminal bell for hits when sound is on.
// Cues from an earlier session epoch are discarded on the next Advance.
type Toasts struct {
	items []Toast
	sound bool
	bell  io.Writer
}

// NewToasts creates a sink. bell may be nil.
func NewToasts(sound bool, bell io.Writer) *Toasts {
	return &Toasts{sound: sound, bell: bell}
}

// SetSound toggles the bell.
func (t *Toasts) SetSound(on bool) { t.sound = on }

// Emit implements runner.FeedbackSink.
func (t *Toasts) Emit(fb runner.Feedback) error {
	text, color := toastText(fb)
	if text == "" {
		return nil
	}
	t.items = append(t.items, Toast{Text: text, Color: color, epoch: fb.Epoch, ttl: toastLife})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}

	if t.sound && t.bell != nil && (fb.Damage || fb.Kind == runner.FeedbackGameOver) {
		if _, err := io.WriteString(t.bell, "\a"); err != nil {
			return fmt.Errorf("tui: bell: %w", err)
		}
	}
	return nil
}

// Advance ages toasts by dt and drops those that expired or belong to
// another epoch.
func (t *Toasts) Advance(epoch uint64, dt float64) {
	kept := t.items[:0]
	for _, it := range t.items {
		it.ttl -= dt
		if it.ttl > 0 && it.epoch == epoch {
			kept = append(kept, it)
		}
	}
	t.items = kept
}

// Active returns the toasts currently on screen, oldest first.
func (t *Toasts) Active() []Toast {
	return t.items
}

func toastText(fb runner.Feedback) (string, core.Color) {
	switch fb.Kind {
	case runner.FeedbackFlip:
		return "FLIP +" + fb.Detail, core.ColorYellow
	case runner.FeedbackCollision:
		if fb.Damage {
			return "Ouch! " + fb.Detail, core.ColorRed
		}
		if fb.Detail == "straw" {
			return "Lane scramble!", core.ColorGreen
		}
		return "", core.ColorDefault
	case runner.FeedbackAbsorb:
		return "Blocked " + fb.Detail, core.ColorCyan
	case runner.FeedbackPowerup:
		return "+ " + fb.Detail, core.ColorMagenta
	case runner.FeedbackChallenge:
		return "Challenge complete!", core.ColorGreen
	}
	return "", core.ColorDefault
}

func drawToasts(dst *core.Screen, toasts []Toast) {
	for i, t := range toasts {
		text := " " + t.Text + " "
		dst.DrawTextColored(dst.Width()-len([]rune(text))-1, 2+i, text, t.Color)
	}
}
