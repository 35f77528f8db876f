package engine

import (
	"testing"
	"time"

	"github.com/hammamikhairi/tomatick/internal/clock"
	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// rebuild constructs a second engine over the same store, as a process
// restart would.
func rebuild(t *testing.T, f *fixture) *Engine {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	return New(&mockClock{}, f.settings, f.store, f.notifier, f.recorder, log,
		WithGraceDelay(20*time.Millisecond))
}

func TestRestoreRecoversInterruptedCountdown(t *testing.T) {
	f := setup(t)

	f.eng.StartPause()
	f.eng.handleUpdate(clock500())

	eng := rebuild(t, f)
	snap := eng.Snapshot()
	if got := snap.Timers[domain.ModeFocus].Remaining; got != 500 {
		t.Fatalf("expected recovered remaining 500, got %d", got)
	}
	if snap.Timers[domain.ModeFocus].Running {
		t.Fatal("recovered mode must come back paused")
	}
	if snap.Cycle != 1 {
		t.Fatalf("expected recovered cycle 1, got %d", snap.Cycle)
	}
}

func TestRestoreIgnoresStaleIdleCountdown(t *testing.T) {
	f := setup(t)

	f.eng.StartPause()
	f.eng.handleUpdate(clock500())
	f.eng.StartPause() // pause: wasRunning persists as false

	eng := rebuild(t, f)
	if got := eng.Snapshot().Timers[domain.ModeFocus].Remaining; got != 1500 {
		t.Fatalf("idle countdown must reset to full duration, got %d", got)
	}
}

func TestRestoreWithStaleValueButNoRunningFlag(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewTyped(storage.NewMemoryStore(), log)

	// A stale remaining value without the wasRunning flag.
	store.SetInt(storage.KeyTimeLeft(domain.ModeFocus), 500)
	store.SetBool(storage.KeyWasRunning(domain.ModeFocus), false)

	eng := New(&mockClock{}, defaultMockSettings(), store, &mockNotifier{}, &mockRecorder{}, log)
	if got := eng.Snapshot().Timers[domain.ModeFocus].Remaining; got != 1500 {
		t.Fatalf("expected full duration regardless of stale value, got %d", got)
	}
}

func TestRestoreActiveModeAndCorruptValues(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		wantMode domain.Mode
	}{
		{"persisted long break", "longBreak", domain.ModeLongBreak},
		{"persisted break", "break", domain.ModeBreak},
		{"corrupt mode falls back to focus", "pomodoro?!", domain.ModeFocus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := logger.New(logger.LevelOff, nil)
			store := storage.NewTyped(storage.NewMemoryStore(), log)
			store.SetString(storage.KeyCurrentMode, tt.mode)

			eng := New(&mockClock{}, defaultMockSettings(), store, &mockNotifier{}, &mockRecorder{}, log)
			if got := eng.Snapshot().ActiveMode; got != tt.wantMode {
				t.Fatalf("expected %s, got %s", tt.wantMode, got)
			}
		})
	}
}

// clock500 is an update tick leaving 500s on the focus countdown.
func clock500() clock.Event {
	return clock.Event{Type: clock.EventUpdate, Mode: domain.ModeFocus, Remaining: 500}
}
