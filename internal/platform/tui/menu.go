package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fofr-runner/internal/games/runner"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

// MenuItemID identifies a main menu entry.
type MenuItemID int

const (
	MenuPlay MenuItemID = iota
	MenuChallenge
	MenuScores
	MenuSound
	MenuControls
	MenuQuit
)

// MenuItem represents a selectable entry in the main menu.
type MenuItem struct {
	ID    MenuItemID
	Title string
}

// Menu is the main menu state shown while the controller is in Menu.
type Menu struct {
	cursor int
}

// Items returns the entries for the given settings and daily challenge.
func (m *Menu) Items(settings storage.Settings, daily runner.Challenge) []MenuItem {
	return []MenuItem{
		{MenuPlay, "Play"},
		{MenuChallenge, "Daily Challenge: " + daily.Name},
		{MenuScores, "High Scores"},
		{MenuSound, "Sound: " + onOff(settings.Sound)},
		{MenuControls, "Controls: " + controlsName(settings.AltControls)},
		{MenuQuit, "Quit"},
	}
}

// Move shifts the cursor by delta, clamped to the item list.
func (m *Menu) Move(delta, n int) {
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > n-1 {
		m.cursor = n - 1
	}
}

// Cursor returns the highlighted index.
func (m *Menu) Cursor() int {
	return m.cursor
}

// View renders the menu.
func (m *Menu) View(items []MenuItem, daily runner.Challenge, best, width int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle.Render("  F O F R  "), 11, width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Czech endless runner", width))
	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Best: %d", best), width))
	b.WriteString("\n\n")

	for i, item := range items {
		cursor := "  "
		line := item.Title
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerStyled(cursor+line, len([]rune(cursor+item.Title)), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(dimStyle.Render(daily.Desc), len(daily.Desc), width))
	b.WriteString("\n\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, width))
	b.WriteString("\n")

	return b.String()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func controlsName(alt bool) string {
	if alt {
		return "j/i/k/l"
	}
	return "arrows/wasd"
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	return centerStyled(text, len([]rune(text)), width)
}

// centerStyled centers a styled string whose visible length is n.
func centerStyled(text string, n, width int) string {
	if n >= width {
		return text
	}
	return strings.Repeat(" ", (width-n)/2) + text
}
