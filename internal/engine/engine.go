// Package engine implements the timer state machine: which mode is
// active, what every mode has remaining, and what happens at mode
// boundaries. It owns the session state outright; the clock worker
// and the UI only talk to it through commands and events.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/tomatick/internal/clock"
	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// Clock is the command side of the timekeeping worker. Commands are
// fire-and-forget; results come back on the worker's event stream.
type Clock interface {
	Start(mode domain.Mode, seconds int)
	Pause(mode domain.Mode)
	Resume(mode domain.Mode)
	Reset(mode domain.Mode, seconds int)
	SetTime(mode domain.Mode, seconds int)
}

// Option configures the engine.
type Option func(*Engine)

// WithGraceDelay overrides the pause between a countdown reaching zero
// and the automatic mode switch. Tests use a short delay.
func WithGraceDelay(d time.Duration) Option {
	return func(e *Engine) {
		e.graceDelay = d
	}
}

// Engine is the timer state machine. All exported methods are safe for
// concurrent use; state is mutated only under the engine lock.
type Engine struct {
	worker   Clock
	settings domain.SettingsSource
	store    *storage.Typed
	notifier domain.Notifier
	recorder domain.SessionRecorder
	log      *logger.Logger

	graceDelay time.Duration

	mu          sync.Mutex
	state       *domain.SessionState
	switchTimer *time.Timer
	switchGen   int
	subs        []chan domain.Snapshot
}

// New builds the engine, recovers persisted session state, and seeds
// the worker's counters to match.
func New(worker Clock, settings domain.SettingsSource, store *storage.Typed, notifier domain.Notifier, recorder domain.SessionRecorder, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		worker:     worker,
		settings:   settings,
		store:      store,
		notifier:   notifier,
		recorder:   recorder,
		log:        log,
		graceDelay: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}

	e.state = e.restore()
	for m, t := range e.state.Timers {
		e.worker.SetTime(m, t.Remaining)
	}
	return e
}

// SetNotifier installs the completion notifier. The UI's print path
// is part of the notifier stack, so it is wired after the UI exists.
func (e *Engine) SetNotifier(n domain.Notifier) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.notifier = n
}

// Run consumes worker events until ctx is cancelled or the channel
// closes. Intended to be called as a goroutine.
func (e *Engine) Run(ctx context.Context, events <-chan clock.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev.Type {
			case clock.EventUpdate:
				e.handleUpdate(ev)
			case clock.EventComplete:
				e.handleComplete(ctx, ev)
			}
		}
	}
}

// Subscribe registers an observer of session snapshots. Sends never
// block; a slow observer misses intermediate snapshots, not the final
// one it reads next.
func (e *Engine) Subscribe(buffer int) <-chan domain.Snapshot {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan domain.Snapshot, buffer)
	e.mu.Lock()
	e.subs = append(e.subs, ch)
	e.mu.Unlock()
	return ch
}

// Snapshot returns the current session state by value.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// StartPause toggles the active mode's countdown.
func (e *Engine) StartPause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode := e.state.ActiveMode
	t := e.state.Timers[mode]

	if t.Running {
		e.worker.Pause(mode)
		t.Running = false
		e.log.Debug("engine: paused %s at %ds", mode, t.Remaining)
		e.persistLocked()
		e.emitLocked()
		return
	}

	e.cancelPendingLocked()
	e.state.CompletionGuard = false

	full := e.settings.Durations()[mode]
	if t.Remaining <= 0 {
		t.Remaining = full
	}

	if t.Remaining == full {
		// A fresh run, not a resumption. Focus sessions are counted
		// into the cycle at the moment they begin.
		if mode == domain.ModeFocus {
			e.state.Cycle++
			e.log.Debug("engine: focus session begun, cycle=%d", e.state.Cycle)
		}
		e.worker.Start(mode, t.Remaining)
	} else {
		e.worker.Resume(mode)
	}
	t.Running = true
	e.persistLocked()
	e.emitLocked()
}

// Reset stops the active mode and restores its full configured
// duration. The cycle counter is untouched.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode := e.state.ActiveMode
	full := e.settings.Durations()[mode]

	e.cancelPendingLocked()
	e.state.CompletionGuard = false
	e.worker.Reset(mode, full)
	e.state.Timers[mode].Remaining = full
	e.state.Timers[mode].Running = false

	e.log.Debug("engine: reset %s to %ds", mode, full)
	e.persistLocked()
	e.emitLocked()
}

// Skip abandons the active mode's countdown and advances to the next
// mode as if it had completed. The new mode never auto-starts.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()

	mode := e.state.ActiveMode
	e.cancelPendingLocked()
	e.state.CompletionGuard = false
	e.worker.Pause(mode)
	e.state.Timers[mode].Running = false

	next := e.nextModeLocked(mode)
	e.applyCycleEffectsLocked(mode)
	e.enterModeLocked(next)

	e.log.Info("engine: skipped %s, now on %s (cycle=%d)", mode, next, e.state.Cycle)
	e.persistLocked()
	e.emitLocked()
}

// SwitchMode pauses the current mode and surfaces target at its full
// duration, paused. The cycle counter is deliberately kept: manual
// detours do not forfeit accumulated focus sessions.
func (e *Engine) SwitchMode(target domain.Mode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if target == e.state.ActiveMode {
		return
	}

	mode := e.state.ActiveMode
	e.cancelPendingLocked()
	e.state.CompletionGuard = false
	e.worker.Pause(mode)
	e.state.Timers[mode].Running = false

	e.enterModeLocked(target)

	e.log.Debug("engine: manual switch %s -> %s", mode, target)
	e.persistLocked()
	e.emitLocked()
}

// Acknowledge fires the transition a completion left waiting for the
// user. Returns ErrNotAwaitingAck when nothing is pending.
func (e *Engine) Acknowledge() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Phase != domain.PhaseAwaitingAck {
		return domain.ErrNotAwaitingAck
	}
	e.performSwitchLocked()
	return nil
}

// ClearAllData wipes the store and resets the whole session to
// configured defaults.
func (e *Engine) ClearAllData() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPendingLocked()
	e.store.Clear()
	e.recorder.Reset()

	durations := e.settings.Durations()
	e.state = domain.NewSessionState(durations)
	for m, t := range e.state.Timers {
		e.worker.Reset(m, t.Remaining)
	}

	e.log.Info("engine: all data cleared")
	e.emitLocked()
}

// enterModeLocked surfaces a mode at its full duration, paused.
func (e *Engine) enterModeLocked(mode domain.Mode) {
	full := e.settings.Durations()[mode]
	e.state.Timers[mode].Remaining = full
	e.state.Timers[mode].Running = false
	e.worker.SetTime(mode, full)
	e.state.ActiveMode = mode
	e.state.Phase = domain.PhaseIdle
}

// nextModeLocked is the mode-transition rule: focus routes to a long
// break once the cycle owes one, breaks always route back to focus.
func (e *Engine) nextModeLocked(completed domain.Mode) domain.Mode {
	switch completed {
	case domain.ModeFocus:
		if e.state.Cycle >= e.settings.CycleCount() {
			return domain.ModeLongBreak
		}
		return domain.ModeBreak
	default:
		return domain.ModeFocus
	}
}

// applyCycleEffectsLocked applies a completed (or skipped-as-completed)
// mode's effect on the cycle counter. Focus sessions are counted when
// they begin, so only the long break touches the counter here.
func (e *Engine) applyCycleEffectsLocked(completed domain.Mode) {
	if completed == domain.ModeLongBreak {
		e.state.Cycle = 0
	}
}

// cancelPendingLocked invalidates any scheduled delayed auto-switch so
// two competing transitions can never both fire.
func (e *Engine) cancelPendingLocked() {
	e.switchGen++
	if e.switchTimer != nil {
		e.switchTimer.Stop()
		e.switchTimer = nil
	}
	if e.state.Phase != domain.PhaseIdle {
		e.state.Phase = domain.PhaseIdle
	}
}

// performSwitchLocked is the single transition function invoked either
// by the grace-delay timer or by Acknowledge, never both for the same
// completion.
func (e *Engine) performSwitchLocked() {
	next := e.state.PendingNext
	e.state.CompletionGuard = false
	e.switchTimer = nil
	e.state.Phase = domain.PhaseIdle
	e.state.ActiveMode = next

	full := e.settings.Durations()[next]
	if e.settings.AutoStart() {
		if next == domain.ModeFocus {
			e.state.Cycle++
			e.log.Debug("engine: focus session begun (auto), cycle=%d", e.state.Cycle)
		}
		e.worker.Start(next, full)
		e.state.Timers[next].Running = true
	}

	e.log.Info("engine: switched to %s (auto-start=%v)", next, e.settings.AutoStart())
	e.persistLocked()
	e.emitLocked()
}

// emitLocked fans the current snapshot out to subscribers.
func (e *Engine) emitLocked() {
	snap := e.state.Snapshot()
	for _, ch := range e.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
