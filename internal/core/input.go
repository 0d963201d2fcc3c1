package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction is returned when an input tag does not name an action.
var ErrUnknownAction = errors.New("unknown action")

// Action represents a semantic input action, abstracted from physical keys
// and touch gestures. The presentation layer decodes device events into
// actions before handing them to the simulation.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow, swipe left - change lane left
	ActionRight          // D, Right arrow, swipe right - change lane right
	ActionJump           // Space, W, Up, swipe up - jump (double tap = flip)
	ActionSlide          // S, Down, swipe down - slide
	ActionPause          // P, Escape - pause/unpause
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B - go back to menu
	ActionRestart        // R - retry after game over
	ActionQuit           // Q, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:    "none",
	ActionLeft:    "left",
	ActionRight:   "right",
	ActionJump:    "jump",
	ActionSlide:   "slide",
	ActionPause:   "pause",
	ActionConfirm: "confirm",
	ActionBack:    "back",
	ActionRestart: "restart",
	ActionQuit:    "quit",
}

// String returns the lowercase tag for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Gameplay reports whether the action steers the player.
func (a Action) Gameplay() bool {
	switch a {
	case ActionLeft, ActionRight, ActionJump, ActionSlide:
		return true
	}
	return false
}

// ParseAction converts a tag such as "left" or "Jump" into an Action.
func ParseAction(tag string) (Action, error) {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for a, name := range actionNames {
		if name == tag && a != ActionNone {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: %w %q", ErrUnknownAction, tag)
}
