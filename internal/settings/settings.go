// Package settings supplies the configured durations and behavior
// flags. Precedence: values persisted in the store, then the YAML
// config file, then built-in defaults. Durations are clamped to the
// supported range rather than rejected.
package settings

import (
	"sync"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// Duration bounds, in seconds (1 to 120 minutes).
const (
	MinDurationSeconds = 60
	MaxDurationSeconds = 7200
)

// Built-in defaults.
const (
	DefaultFocusSeconds     = 25 * 60
	DefaultBreakSeconds     = 5 * 60
	DefaultLongBreakSeconds = 15 * 60
	DefaultCycleCount       = 4
)

// ClampDuration forces seconds into the supported range. Out-of-range
// values from malformed storage or user input are clamped, never
// surfaced as errors.
func ClampDuration(seconds int) int {
	if seconds < MinDurationSeconds {
		return MinDurationSeconds
	}
	if seconds > MaxDurationSeconds {
		return MaxDurationSeconds
	}
	return seconds
}

// DurationListener observes configured-duration changes.
type DurationListener func(mode domain.Mode, seconds int)

// Compile-time interface check.
var _ domain.SettingsSource = (*Provider)(nil)

// Provider is the settings source. Safe for concurrent reads; writes
// persist immediately and notify registered listeners.
type Provider struct {
	store *storage.Typed
	log   *logger.Logger

	mu        sync.RWMutex
	defaults  map[domain.Mode]int
	cycleDef  int
	flagDefs  map[string]bool
	listeners []DurationListener
}

// NewProvider builds a provider over the store, seeding defaults from
// the YAML config at configPath (may be empty). A broken config file
// is logged and ignored.
func NewProvider(store *storage.Typed, configPath string, log *logger.Logger) *Provider {
	p := &Provider{
		store: store,
		log:   log,
		defaults: map[domain.Mode]int{
			domain.ModeFocus:     DefaultFocusSeconds,
			domain.ModeBreak:     DefaultBreakSeconds,
			domain.ModeLongBreak: DefaultLongBreakSeconds,
		},
		cycleDef: DefaultCycleCount,
		flagDefs: map[string]bool{
			storage.KeyAutoSwitch:     true,
			storage.KeyAutoStart:      true,
			storage.KeySoundEnabled:   true,
			storage.KeyAutoSkipNotify: true,
		},
	}

	cfg, err := loadFileConfig(configPath)
	if err != nil {
		log.Warn("settings: %v (using built-in defaults)", err)
		return p
	}
	if cfg.FocusMinutes > 0 {
		p.defaults[domain.ModeFocus] = ClampDuration(cfg.FocusMinutes * 60)
	}
	if cfg.BreakMinutes > 0 {
		p.defaults[domain.ModeBreak] = ClampDuration(cfg.BreakMinutes * 60)
	}
	if cfg.LongBreakMinutes > 0 {
		p.defaults[domain.ModeLongBreak] = ClampDuration(cfg.LongBreakMinutes * 60)
	}
	if cfg.CycleCount > 0 {
		p.cycleDef = cfg.CycleCount
	}
	if cfg.AutoSwitch != nil {
		p.flagDefs[storage.KeyAutoSwitch] = *cfg.AutoSwitch
	}
	if cfg.AutoStart != nil {
		p.flagDefs[storage.KeyAutoStart] = *cfg.AutoStart
	}
	if cfg.Sound != nil {
		p.flagDefs[storage.KeySoundEnabled] = *cfg.Sound
	}
	if cfg.AutoSkipNotify != nil {
		p.flagDefs[storage.KeyAutoSkipNotify] = *cfg.AutoSkipNotify
	}
	return p
}

// OnDurationChange registers a listener invoked after a configured
// duration changes.
func (p *Provider) OnDurationChange(fn DurationListener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func durationKey(m domain.Mode) string {
	switch m {
	case domain.ModeBreak:
		return storage.KeyBreakSeconds
	case domain.ModeLongBreak:
		return storage.KeyLongBreakSeconds
	default:
		return storage.KeyFocusSeconds
	}
}

// Duration returns the configured full duration for a mode, clamped.
func (p *Provider) Duration(m domain.Mode) int {
	p.mu.RLock()
	fallback := p.defaults[m]
	p.mu.RUnlock()
	return ClampDuration(p.store.GetInt(durationKey(m), fallback))
}

// Durations returns all configured durations.
func (p *Provider) Durations() map[domain.Mode]int {
	out := make(map[domain.Mode]int, len(domain.Modes))
	for _, m := range domain.Modes {
		out[m] = p.Duration(m)
	}
	return out
}

// SetDuration clamps, persists, and announces a new duration for a
// mode.
func (p *Provider) SetDuration(m domain.Mode, seconds int) {
	clamped := ClampDuration(seconds)
	if clamped != seconds {
		p.log.Debug("settings: %s duration %ds clamped to %ds", m, seconds, clamped)
	}
	p.store.SetInt(durationKey(m), clamped)

	p.mu.RLock()
	listeners := append([]DurationListener(nil), p.listeners...)
	p.mu.RUnlock()
	for _, fn := range listeners {
		fn(m, clamped)
	}
}

// CycleCount returns how many focus sessions gate a long break.
func (p *Provider) CycleCount() int {
	p.mu.RLock()
	fallback := p.cycleDef
	p.mu.RUnlock()
	n := p.store.GetInt(storage.KeyCycleCount, fallback)
	if n < 1 {
		n = 1
	}
	return n
}

// SetCycleCount persists the long-break gate.
func (p *Provider) SetCycleCount(n int) {
	if n < 1 {
		n = 1
	}
	p.store.SetInt(storage.KeyCycleCount, n)
}

func (p *Provider) flag(key string) bool {
	p.mu.RLock()
	fallback := p.flagDefs[key]
	p.mu.RUnlock()
	return p.store.GetBool(key, fallback)
}

// AutoSwitch reports whether completion advances to the next mode.
func (p *Provider) AutoSwitch() bool { return p.flag(storage.KeyAutoSwitch) }

// AutoStart reports whether a newly entered mode starts counting
// immediately after an automatic switch.
func (p *Provider) AutoStart() bool { return p.flag(storage.KeyAutoStart) }

// SoundEnabled reports whether completion alerts play a chime.
func (p *Provider) SoundEnabled() bool { return p.flag(storage.KeySoundEnabled) }

// AutoSkipNotification reports whether the post-completion transition
// uses the fixed grace delay instead of waiting for an acknowledgment.
func (p *Provider) AutoSkipNotification() bool { return p.flag(storage.KeyAutoSkipNotify) }

// SetFlag persists one of the behavior flags by storage key.
func (p *Provider) SetFlag(key string, value bool) {
	p.store.SetBool(key, value)
}
