package clock

import "github.com/hammamikhairi/tomatick/internal/domain"

// EventType discriminates worker events.
type EventType int

const (
	// EventUpdate is emitted once per second while a mode's loop is
	// running, after decrementing.
	EventUpdate EventType = iota
	// EventComplete is emitted exactly once when a countdown reaches
	// zero. The tick loop is stopped before it is emitted.
	EventComplete
)

// String returns a human-readable event type name.
func (t EventType) String() string {
	switch t {
	case EventUpdate:
		return "update"
	case EventComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Event is a message from the worker to the host. Events for a single
// mode are delivered in send order: Update values strictly decreasing,
// terminated by one Complete per run.
type Event struct {
	Type EventType
	Mode domain.Mode
	// Remaining is the seconds left after this tick (Update only).
	Remaining int
	// Duration is the full interval originally requested via Start;
	// the length of the countdown that just finished (Complete only).
	Duration int
}
