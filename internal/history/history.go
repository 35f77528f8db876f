// Package history records completed focus intervals into per-day
// statistics and answers the queries the UI surfaces (today's total,
// recent-day summaries).
package history

import (
	"sync"
	"time"

	"github.com/hammamikhairi/tomatick/internal/domain"
	"github.com/hammamikhairi/tomatick/internal/logger"
	"github.com/hammamikhairi/tomatick/internal/storage"
)

// Compile-time interface check.
var _ domain.SessionRecorder = (*Recorder)(nil)

// Recorder accumulates focus time per calendar day, persisting after
// every completion. Safe for concurrent use.
type Recorder struct {
	store *storage.Typed
	log   *logger.Logger
	now   func() time.Time

	mu      sync.Mutex
	history domain.FocusHistory
}

// Option configures the recorder.
type Option func(*Recorder)

// WithNow overrides the clock. Tests pin completion times.
func WithNow(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// NewRecorder loads persisted history from the store. Corrupt history
// is logged and replaced with an empty document.
func NewRecorder(store *storage.Typed, log *logger.Logger, opts ...Option) *Recorder {
	r := &Recorder{
		store: store,
		log:   log,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if !store.GetJSON(storage.KeyFocusHistory, &r.history) {
		r.history = domain.FocusHistory{}
	}
	return r
}

// RecordFocusCompletion adds one completed focus interval to today's
// record and persists the document.
func (r *Recorder) RecordFocusCompletion(durationSeconds int) {
	if durationSeconds <= 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	date := now.Format("2006-01-02")

	rec := r.dayLocked(date)
	rec.TotalDurationSeconds += durationSeconds
	rec.SessionCount++
	rec.HourlyDistribution[now.Hour()] += durationSeconds
	r.history.LastUpdated = now.UnixMilli()

	r.store.SetJSON(storage.KeyFocusHistory, &r.history)
	r.log.Debug("history: recorded %ds focus on %s (today=%ds over %d sessions)",
		durationSeconds, date, rec.TotalDurationSeconds, rec.SessionCount)
}

// dayLocked finds or appends the record for date.
func (r *Recorder) dayLocked(date string) *domain.DayRecord {
	for i := range r.history.Records {
		if r.history.Records[i].Date == date {
			return &r.history.Records[i]
		}
	}
	r.history.Records = append(r.history.Records, domain.DayRecord{Date: date})
	return &r.history.Records[len(r.history.Records)-1]
}

// Today returns today's record (zero value when nothing is recorded).
func (r *Recorder) Today() domain.DayRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	date := r.now().Format("2006-01-02")
	for _, rec := range r.history.Records {
		if rec.Date == date {
			return rec
		}
	}
	return domain.DayRecord{Date: date}
}

// LastDays returns up to n most recent day records, newest first.
func (r *Recorder) LastDays(n int) []domain.DayRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.DayRecord, 0, n)
	for i := len(r.history.Records) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.history.Records[i])
	}
	return out
}

// Reset drops all recorded history. Part of the clear-all-data flow.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = domain.FocusHistory{}
	r.store.Remove(storage.KeyFocusHistory)
}
