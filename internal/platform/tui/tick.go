// Package tui runs the runner in a terminal with Bubble Tea.
// It owns the frame clock, key mapping, menus and drawing.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fofr-runner/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends a tick message after one frame.
func tickCmd(rt core.RuntimeConfig) tea.Cmd {
	interval := rt.FrameInterval()
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
