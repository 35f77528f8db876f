package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

func newProvider(t *testing.T, configYAML string) (*Provider, *storage.Typed) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	store := storage.NewTyped(storage.NewMemoryStore(), log)

	configPath := ""
	if configYAML != "" {
		configPath = filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewProvider(store, configPath, log), store
}

func TestClampDuration(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"zero clamps to minimum", 0, 60},
		{"below minimum", 59, 60},
		{"at minimum", 60, 60},
		{"in range", 1500, 1500},
		{"at maximum", 7200, 7200},
		{"above maximum", 10000, 7200},
		{"negative", -5, 60},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampDuration(tt.in); got != tt.want {
				t.Fatalf("ClampDuration(%d) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuiltInDefaults(t *testing.T) {
	p, _ := newProvider(t, "")

	if got := p.Duration(domain.ModeFocus); got != DefaultFocusSeconds {
		t.Fatalf("focus default: %d", got)
	}
	if got := p.Duration(domain.ModeBreak); got != DefaultBreakSeconds {
		t.Fatalf("break default: %d", got)
	}
	if got := p.Duration(domain.ModeLongBreak); got != DefaultLongBreakSeconds {
		t.Fatalf("long break default: %d", got)
	}
	if got := p.CycleCount(); got != DefaultCycleCount {
		t.Fatalf("cycle count default: %d", got)
	}
	if !p.AutoSwitch() || !p.AutoStart() || !p.SoundEnabled() || !p.AutoSkipNotification() {
		t.Fatal("flags default to enabled")
	}
}

func TestConfigFileSeedsDefaults(t *testing.T) {
	p, _ := newProvider(t, `
focus_minutes: 50
break_minutes: 10
cycle_count: 5
auto_start: false
`)

	if got := p.Duration(domain.ModeFocus); got != 50*60 {
		t.Fatalf("focus from config: %d", got)
	}
	if got := p.Duration(domain.ModeBreak); got != 10*60 {
		t.Fatalf("break from config: %d", got)
	}
	// Unset key keeps the built-in default.
	if got := p.Duration(domain.ModeLongBreak); got != DefaultLongBreakSeconds {
		t.Fatalf("long break: %d", got)
	}
	if got := p.CycleCount(); got != 5 {
		t.Fatalf("cycle count: %d", got)
	}
	if p.AutoStart() {
		t.Fatal("auto-start disabled by config")
	}
	if !p.AutoSwitch() {
		t.Fatal("auto-switch keeps default")
	}
}

func TestStoredValueOverridesConfig(t *testing.T) {
	p, store := newProvider(t, "focus_minutes: 50\n")

	store.SetInt(storage.KeyFocusSeconds, 1800)
	if got := p.Duration(domain.ModeFocus); got != 1800 {
		t.Fatalf("stored value must win: %d", got)
	}
}

func TestSetDurationClampsAndNotifies(t *testing.T) {
	p, store := newProvider(t, "")

	var gotMode domain.Mode
	var gotSeconds int
	p.OnDurationChange(func(m domain.Mode, s int) {
		gotMode, gotSeconds = m, s
	})

	p.SetDuration(domain.ModeFocus, 10000)

	if gotMode != domain.ModeFocus || gotSeconds != MaxDurationSeconds {
		t.Fatalf("listener got %s/%d", gotMode, gotSeconds)
	}
	if got := store.GetInt(storage.KeyFocusSeconds, 0); got != MaxDurationSeconds {
		t.Fatalf("persisted %d", got)
	}
}

func TestMalformedStoredDurationIsClamped(t *testing.T) {
	p, store := newProvider(t, "")

	store.SetInt(storage.KeyBreakSeconds, 5)
	if got := p.Duration(domain.ModeBreak); got != MinDurationSeconds {
		t.Fatalf("expected clamp to minimum, got %d", got)
	}
}

func TestBrokenConfigFileFallsBack(t *testing.T) {
	p, _ := newProvider(t, "focus_minutes: [not a number\n")

	if got := p.Duration(domain.ModeFocus); got != DefaultFocusSeconds {
		t.Fatalf("expected built-in default, got %d", got)
	}
}

func TestSetFlagPersists(t *testing.T) {
	p, _ := newProvider(t, "")

	p.SetFlag(storage.KeySoundEnabled, false)
	if p.SoundEnabled() {
		t.Fatal("expected sound disabled")
	}
	p.SetFlag(storage.KeySoundEnabled, true)
	if !p.SoundEnabled() {
		t.Fatal("expected sound enabled")
	}
}
