package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fofr-runner/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	alt bool // right-hand layout: j/l lanes, i jump, k slide
}

// NewKeyMapper creates a new key mapper. Alt selects the right-hand
// layout from the profile's alternative controls setting.
func NewKeyMapper(alt bool) *KeyMapper {
	return &KeyMapper{alt: alt}
}

// SetAlt switches between the default and alternative layouts.
func (km *KeyMapper) SetAlt(alt bool) {
	km.alt = alt
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if km.alt {
		switch key {
		case "j":
			return core.ActionLeft, false
		case "l":
			return core.ActionRight, false
		case "i":
			return core.ActionJump, false
		case "k":
			return core.ActionSlide, false
		}
	}

	switch key {
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case "w", "up", " ":
		return core.ActionJump, false
	case "s", "down":
		return core.ActionSlide, false
	case "enter":
		return core.ActionConfirm, false
	case "b":
		return core.ActionBack, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
