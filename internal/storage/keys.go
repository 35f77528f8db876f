package storage

import "github.com/hammamikhairi/tomatick/internal/domain"

// Persisted key space. Flat string keys, stringified primitive or JSON
// values. Every mutation of timer state writes through these keys so a
// process exit at any point leaves a recoverable snapshot.
const (
	KeyAutoSwitch     = "autoSwitchEnabled"
	KeyAutoStart      = "autoStartEnabled"
	KeySoundEnabled   = "soundEnabled"
	KeyAutoSkipNotify = "autoSkipNotification"

	KeyFocusSeconds     = "customFocusSeconds"
	KeyBreakSeconds     = "customBreakSeconds"
	KeyLongBreakSeconds = "customLongBreakSeconds"
	KeyCycleCount       = "pomodoroCycleCount"

	KeyCurrentMode = "currentMode"
	KeyCycle       = "pomodoroCycle"

	KeyFocusHistory = "focusHistory"
)

// KeyTimeLeft returns the per-mode remaining-seconds key.
func KeyTimeLeft(m domain.Mode) string { return "timeLeft." + m.String() }

// KeyRunning returns the per-mode running-flag key.
func KeyRunning(m domain.Mode) string { return "running." + m.String() }

// KeyWasRunning returns the per-mode reload-recovery flag key. It is
// only consulted when reconstructing state after a restart: a stale
// remaining value is honored only if the mode was running when the
// process last wrote it.
func KeyWasRunning(m domain.Mode) string { return "wasRunning." + m.String() }
