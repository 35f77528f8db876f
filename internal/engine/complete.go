package engine

import (
	"context"
	"time"

	"github.com/hammamikhairi/tomatick/internal/clock"
	"github.com/hammamikhairi/tomatick/internal/domain"
)

// handleUpdate synchronizes a worker tick into the engine's copy of
// the mode's counter.
func (e *Engine) handleUpdate(ev clock.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.state.Timers[ev.Mode]
	if !t.Running {
		// A tick from a loop we already commanded to stop.
		return
	}
	t.Remaining = ev.Remaining
	e.persistModeLocked(ev.Mode)
	e.emitLocked()
}

// handleComplete runs the completion sequence for a finished countdown:
// record and notify, then (guarded against duplicates) compute the
// next mode and arm the delayed (or acknowledgment-gated) switch.
func (e *Engine) handleComplete(ctx context.Context, ev clock.Event) {
	// Recording and notification happen once per Complete message,
	// before any transition bookkeeping.
	if ev.Mode == domain.ModeFocus {
		e.recorder.RecordFocusCompletion(ev.Duration)
	}
	e.dispatchNotification(ctx, ev.Mode)

	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.state.Timers[ev.Mode]
	t.Remaining = 0
	t.Running = false

	if !e.settings.AutoSwitch() {
		// Mode stays at zero, idle. The user acts manually.
		e.log.Debug("engine: %s completed, auto-switch disabled", ev.Mode)
		e.persistLocked()
		e.emitLocked()
		return
	}

	if ev.Mode != e.state.ActiveMode {
		// A background mode's countdown fired. Record/notify only,
		// never drive a UI transition.
		e.log.Debug("engine: background %s completed, no transition", ev.Mode)
		e.persistLocked()
		e.emitLocked()
		return
	}

	if e.state.CompletionGuard {
		// Duplicate completion for the same run. The transition for
		// it is already in flight.
		e.log.Debug("engine: duplicate %s completion ignored", ev.Mode)
		return
	}

	e.state.CompletionGuard = true
	next := e.nextModeLocked(ev.Mode)
	e.applyCycleEffectsLocked(ev.Mode)
	e.state.PendingNext = next

	// Pre-load the next mode so the UI can show its full duration the
	// moment the switch lands.
	full := e.settings.Durations()[next]
	e.state.Timers[next].Remaining = full
	e.state.Timers[next].Running = false
	e.worker.SetTime(next, full)

	if e.settings.AutoSkipNotification() {
		e.state.Phase = domain.PhaseGraceDelay
		e.scheduleSwitchLocked()
	} else {
		// The completion banner waits for an explicit acknowledgment.
		e.state.Phase = domain.PhaseAwaitingAck
	}

	e.log.Info("engine: %s completed, next=%s (phase=%s, cycle=%d)",
		ev.Mode, next, e.state.Phase, e.state.Cycle)
	e.persistLocked()
	e.emitLocked()
}

// scheduleSwitchLocked arms the grace-delay timer. The generation
// check makes a cancelled timer's late firing a no-op.
func (e *Engine) scheduleSwitchLocked() {
	gen := e.switchGen
	e.switchTimer = time.AfterFunc(e.graceDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.switchGen != gen || e.state.Phase != domain.PhaseGraceDelay {
			return
		}
		e.performSwitchLocked()
	})
}

// OnDurationChanged reacts to a configured-duration change. A running
// countdown is never disrupted; the new duration applies on the mode's
// next entry.
func (e *Engine) OnDurationChanged(mode domain.Mode, seconds int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	t := e.state.Timers[mode]
	if t.Running {
		e.log.Debug("engine: %s duration change deferred, countdown running", mode)
		return
	}
	t.Remaining = seconds
	e.worker.SetTime(mode, seconds)
	if mode == e.state.ActiveMode {
		e.state.CompletionGuard = false
	}
	e.persistLocked()
	e.emitLocked()
}

// dispatchNotification sends the completion alert without holding the
// engine lock. Delivery failures are logged at origin.
func (e *Engine) dispatchNotification(ctx context.Context, completed domain.Mode) {
	var title, body string
	switch completed {
	case domain.ModeFocus:
		title, body = "Focus complete", "Good work. Time for a break."
	case domain.ModeBreak:
		title, body = "Break over", "Back to focus."
	case domain.ModeLongBreak:
		title, body = "Long break over", "Ready for a fresh cycle."
	}

	e.mu.Lock()
	notifier := e.notifier
	e.mu.Unlock()
	if notifier == nil {
		return
	}

	sound := e.settings.SoundEnabled()
	go func() {
		if err := notifier.Notify(ctx, title, body, sound); err != nil {
			e.log.Error("engine: notify: %v", err)
		}
	}()
}
