package engine

import (
	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// restore reconstructs session state from the store. A mode's stored
// remaining time is honored only when its wasRunning flag was persisted
// as true; resuming a stale idle countdown after a restart is more
// confusing than starting fresh. Recovered modes come back paused; the
// worker holds nothing across restarts and is re-seeded by New.
func (e *Engine) restore() *domain.SessionState {
	durations := e.settings.Durations()
	st := domain.NewSessionState(durations)

	if raw, ok := e.store.Store().Get(storage.KeyCurrentMode); ok {
		mode, err := domain.ParseMode(raw)
		if err != nil {
			e.log.Warn("engine: %v, defaulting to focus", err)
		} else {
			st.ActiveMode = mode
		}
	}

	st.Cycle = e.store.GetInt(storage.KeyCycle, 0)
	if st.Cycle < 0 {
		st.Cycle = 0
	}

	for _, m := range domain.Modes {
		if !e.store.GetBool(storage.KeyWasRunning(m), false) {
			continue
		}
		remaining := e.store.GetInt(storage.KeyTimeLeft(m), durations[m])
		if remaining > 0 {
			st.Timers[m].Remaining = remaining
			e.log.Info("engine: recovered %s with %ds remaining", m, remaining)
		}
	}

	return st
}

// persistLocked writes the whole session snapshot. Every mutation that
// touches remaining time, running flags, active mode, or cycle count
// goes through here; there is no shutdown hook guaranteed to run.
func (e *Engine) persistLocked() {
	e.store.SetString(storage.KeyCurrentMode, e.state.ActiveMode.String())
	e.store.SetInt(storage.KeyCycle, e.state.Cycle)
	for _, m := range domain.Modes {
		e.persistModeLocked(m)
	}
}

// persistModeLocked writes one mode's counters. The wasRunning flag
// mirrors the running flag so a restart can tell an interrupted
// countdown from an idle one.
func (e *Engine) persistModeLocked(m domain.Mode) {
	t := e.state.Timers[m]
	e.store.SetInt(storage.KeyTimeLeft(m), t.Remaining)
	e.store.SetBool(storage.KeyRunning(m), t.Running)
	e.store.SetBool(storage.KeyWasRunning(m), t.Running)
}
