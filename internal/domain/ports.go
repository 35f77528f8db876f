package domain

import "context"

// Store is a flat string-keyed persistence adapter. Implementations
// must contain their own failures: a storage error degrades durability,
// never in-memory operation, so Set and Remove do not return errors.
// Get reports presence, not failure; a corrupt or missing value reads
// as absent.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Remove(key string)
	// Clear wipes every key. Used by the "clear all data" operation.
	Clear()
}

// Notifier delivers completion alerts to the user. Implementations can
// print to the terminal, call the desktop notification service, or
// play a chime.
type Notifier interface {
	Notify(ctx context.Context, title, body string, playSound bool) error
}

// SessionRecorder consumes completed focus intervals for statistics.
// Called exactly once per completed (or skipped-as-completed) focus
// interval. Reset drops accumulated statistics as part of the
// clear-all-data operation.
type SessionRecorder interface {
	RecordFocusCompletion(durationSeconds int)
	Reset()
}

// SettingsSource supplies the configured durations and behavior flags.
// The engine reads it reactively; values may change at runtime.
type SettingsSource interface {
	Durations() map[Mode]int
	AutoSwitch() bool
	AutoStart() bool
	SoundEnabled() bool
	// AutoSkipNotification selects the fixed grace delay over the
	// acknowledgment prompt for post-completion transitions.
	AutoSkipNotification() bool
	CycleCount() int
}
