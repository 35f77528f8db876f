// Package clock implements the timekeeping worker: one independent
// once-per-second countdown per mode, reporting updates and completion
// through an event channel. The worker owns its counters outright; the
// engine keeps its own copy synchronized through Update events, so the
// two sides never share memory.
package clock

import (
	"time"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
)

// Option configures the worker.
type Option func(*Worker)

// WithTickInterval overrides the 1s tick. Tests use a fast tick.
func WithTickInterval(d time.Duration) Option {
	return func(w *Worker) {
		w.tick = d
	}
}

type cmdKind int

const (
	cmdStart cmdKind = iota
	cmdPause
	cmdResume
	cmdReset
	cmdSetTime
)

type command struct {
	kind    cmdKind
	mode    domain.Mode
	seconds int
}

// tickMsg is posted by a mode's ticker goroutine back into the
// dispatch loop. gen identifies the countdown run it belongs to;
// stale ticks from a cancelled run are dropped.
type tickMsg struct {
	mode domain.Mode
	gen  int
}

// modeState is the worker-side counter for one mode. Touched only by
// the dispatch goroutine.
type modeState struct {
	remaining int
	duration  int // as requested by the last Start/Reset/SetTime
	running   bool
	gen       int
	stop      chan struct{}
}

// Worker runs the per-mode countdowns. Commands are fire-and-forget
// messages; results come back asynchronously on Events. All internal
// state is owned by a single dispatch goroutine, so there is no lock.
type Worker struct {
	log    *logger.Logger
	tick   time.Duration
	inbox  chan any
	events chan Event
	done   chan struct{}
}

// New creates a worker and starts its dispatch loop. Call Stop to shut
// it down; the Events channel is closed once the loop exits.
func New(log *logger.Logger, opts ...Option) *Worker {
	w := &Worker{
		log:    log,
		tick:   time.Second,
		inbox:  make(chan any, 16),
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	go w.run()
	return w
}

// Events returns the worker's outbound event stream.
func (w *Worker) Events() <-chan Event { return w.events }

// Start (re)starts mode's countdown from seconds, cancelling any
// existing tick loop for that mode first.
func (w *Worker) Start(mode domain.Mode, seconds int) {
	w.post(command{kind: cmdStart, mode: mode, seconds: seconds})
}

// Pause stops mode's tick loop without losing the remaining value.
func (w *Worker) Pause(mode domain.Mode) {
	w.post(command{kind: cmdPause, mode: mode})
}

// Resume restarts mode's tick loop from its stored remaining value.
// Ignored when nothing is left to count down.
func (w *Worker) Resume(mode domain.Mode) {
	w.post(command{kind: cmdResume, mode: mode})
}

// Reset stops mode's tick loop and resets remaining to seconds.
func (w *Worker) Reset(mode domain.Mode, seconds int) {
	w.post(command{kind: cmdReset, mode: mode, seconds: seconds})
}

// SetTime stops mode's tick loop and overwrites remaining to seconds.
// Used when a configured duration changes.
func (w *Worker) SetTime(mode domain.Mode, seconds int) {
	w.post(command{kind: cmdSetTime, mode: mode, seconds: seconds})
}

// Stop shuts the worker down. All tick loops exit and Events is closed.
func (w *Worker) Stop() {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
}

func (w *Worker) post(msg any) {
	select {
	case w.inbox <- msg:
	case <-w.done:
		w.log.Debug("clock: command dropped, worker stopped")
	}
}

// run is the dispatch loop. It is the only goroutine that touches the
// per-mode counters.
func (w *Worker) run() {
	defer close(w.events)

	states := make(map[domain.Mode]*modeState, len(domain.Modes))
	for _, m := range domain.Modes {
		states[m] = &modeState{}
	}

	for {
		select {
		case <-w.done:
			for _, st := range states {
				w.stopLoop(st)
			}
			return
		case msg := <-w.inbox:
			switch msg := msg.(type) {
			case command:
				w.handleCommand(states[msg.mode], msg)
			case tickMsg:
				w.handleTick(states[msg.mode], msg)
			default:
				w.log.Warn("clock: unknown message %T ignored", msg)
			}
		}
	}
}

func (w *Worker) handleCommand(st *modeState, cmd command) {
	switch cmd.kind {
	case cmdStart:
		w.stopLoop(st)
		if cmd.seconds <= 0 {
			w.log.Warn("clock: start %s with %ds ignored", cmd.mode, cmd.seconds)
			return
		}
		st.remaining = cmd.seconds
		st.duration = cmd.seconds
		w.startLoop(st, cmd.mode)
	case cmdPause:
		w.stopLoop(st)
	case cmdResume:
		if st.running {
			return
		}
		if st.remaining <= 0 {
			w.log.Debug("clock: resume %s ignored, nothing remaining", cmd.mode)
			return
		}
		w.startLoop(st, cmd.mode)
	case cmdReset, cmdSetTime:
		w.stopLoop(st)
		st.remaining = cmd.seconds
		st.duration = cmd.seconds
	default:
		w.log.Warn("clock: unknown command %d ignored", cmd.kind)
	}
}

func (w *Worker) handleTick(st *modeState, msg tickMsg) {
	// A tick from a cancelled run arrives after its loop was replaced
	// or stopped. Drop it.
	if !st.running || st.gen != msg.gen {
		return
	}

	st.remaining--
	if st.remaining > 0 {
		w.emit(Event{Type: EventUpdate, Mode: msg.mode, Remaining: st.remaining})
		return
	}

	// Reached zero: stop the loop before emitting, so a run produces
	// at most one Complete.
	st.remaining = 0
	w.stopLoop(st)
	w.emit(Event{Type: EventUpdate, Mode: msg.mode, Remaining: 0})
	w.emit(Event{Type: EventComplete, Mode: msg.mode, Duration: st.duration})
	w.log.Debug("clock: %s completed (%ds)", msg.mode, st.duration)
}

func (w *Worker) startLoop(st *modeState, mode domain.Mode) {
	st.gen++
	st.running = true
	st.stop = make(chan struct{})

	gen := st.gen
	stop := st.stop
	go func() {
		ticker := time.NewTicker(w.tick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-w.done:
				return
			case <-ticker.C:
				select {
				case w.inbox <- tickMsg{mode: mode, gen: gen}:
				case <-stop:
					return
				case <-w.done:
					return
				}
			}
		}
	}()
}

func (w *Worker) stopLoop(st *modeState) {
	if !st.running {
		return
	}
	st.running = false
	close(st.stop)
	st.stop = nil
}

func (w *Worker) emit(ev Event) {
	select {
	case w.events <- ev:
	case <-w.done:
	}
}
