// Package domain defines the core types and ports shared across the
// application: timer modes, session state, focus history, and the
// interfaces implemented by storage, notification, and settings layers.
package domain

import "fmt"

// Mode is a countdown interval type. Exactly one mode is active from
// the UI's perspective, but every mode keeps its own countdown state.
type Mode int

const (
	ModeFocus Mode = iota
	ModeBreak
	ModeLongBreak
)

// Modes lists all modes in cycle order. Useful for iteration.
var Modes = []Mode{ModeFocus, ModeBreak, ModeLongBreak}

// String returns the persisted identifier for the mode.
func (m Mode) String() string {
	switch m {
	case ModeFocus:
		return "focus"
	case ModeBreak:
		return "break"
	case ModeLongBreak:
		return "longBreak"
	default:
		return "unknown"
	}
}

// Title returns a human-readable label for notifications and the UI.
func (m Mode) Title() string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeBreak:
		return "Break"
	case ModeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// ParseMode converts a persisted identifier back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "focus":
		return ModeFocus, nil
	case "break":
		return ModeBreak, nil
	case "longBreak":
		return ModeLongBreak, nil
	default:
		return ModeFocus, fmt.Errorf("unknown timer mode %q", s)
	}
}
