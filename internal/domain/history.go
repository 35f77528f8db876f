package domain

// DayRecord aggregates focus time for one calendar day.
type DayRecord struct {
	// Date in YYYY-MM-DD form, local time.
	Date string `json:"date"`
	// TotalDurationSeconds is the summed length of completed focus
	// intervals on that day.
	TotalDurationSeconds int `json:"totalDurationSeconds"`
	// SessionCount is how many focus intervals completed.
	SessionCount int `json:"sessionCount"`
	// HourlyDistribution spreads the focus seconds across the 24
	// hours of the day, indexed by completion hour.
	HourlyDistribution [24]int `json:"hourlyDistribution"`
}

// FocusHistory is the persisted statistics document.
type FocusHistory struct {
	Records     []DayRecord `json:"records"`
	LastUpdated int64       `json:"lastUpdated"` // epoch millis
}
