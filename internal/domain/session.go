package domain

// ModeTimer is the countdown state of a single mode. Remaining is only
// decremented by the clock worker while Running is true, and is never
// negative.
type ModeTimer struct {
	Remaining int  // seconds left in this mode's countdown
	Running   bool // whether the worker has an active tick loop for it
}

// Phase is the transition overlay on top of the per-mode timers. It
// tracks what the engine is doing between a countdown reaching zero and
// the next mode becoming active.
type Phase int

const (
	// PhaseIdle means no completion is being processed.
	PhaseIdle Phase = iota
	// PhaseGraceDelay means a completion fired and the delayed
	// auto-switch is scheduled but has not fired yet.
	PhaseGraceDelay
	// PhaseAwaitingAck means a completion fired and the transition
	// waits for an explicit user acknowledgment instead of a timer.
	PhaseAwaitingAck
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseGraceDelay:
		return "grace-delay"
	case PhaseAwaitingAck:
		return "awaiting-ack"
	default:
		return "unknown"
	}
}

// SessionState is the authoritative timer state owned by the engine.
// It is mutated only on the engine's goroutine; the UI receives copies
// through snapshot events.
type SessionState struct {
	ActiveMode Mode
	Timers     map[Mode]*ModeTimer
	// Cycle counts focus sessions begun since the last long break.
	// It gates when a long break is owed.
	Cycle int
	// CompletionGuard is set while a completion is being processed
	// and its transition has not fired. A second Complete for the
	// same mode is ignored while it is set.
	CompletionGuard bool
	Phase           Phase
	// PendingNext is the mode the in-flight transition will switch
	// to. Only meaningful while Phase != PhaseIdle.
	PendingNext Mode
}

// NewSessionState builds a fresh session with every mode reset to the
// given full durations and nothing running.
func NewSessionState(durations map[Mode]int) *SessionState {
	timers := make(map[Mode]*ModeTimer, len(Modes))
	for _, m := range Modes {
		timers[m] = &ModeTimer{Remaining: durations[m]}
	}
	return &SessionState{
		ActiveMode: ModeFocus,
		Timers:     timers,
	}
}

// Snapshot is an immutable copy of SessionState handed to observers.
type Snapshot struct {
	ActiveMode  Mode
	Timers      map[Mode]ModeTimer
	Cycle       int
	Phase       Phase
	PendingNext Mode
}

// Snapshot copies the session state by value.
func (s *SessionState) Snapshot() Snapshot {
	timers := make(map[Mode]ModeTimer, len(s.Timers))
	for m, t := range s.Timers {
		timers[m] = *t
	}
	return Snapshot{
		ActiveMode:  s.ActiveMode,
		Timers:      timers,
		Cycle:       s.Cycle,
		Phase:       s.Phase,
		PendingNext: s.PendingNext,
	}
}
