package domain

// DaySummary is the per-day calendar projection: entry count, effective
// duration and the groups that saw any activity. It is derived on read for
// month-view rendering and is never persisted.
type DaySummary struct {
	Date   string  `json:"date"`
	Count  int     `json:"count"`
	Sec    int     `json:"sec"`
	Groups []Group `json:"groups,omitempty"`
}

// Summarize reduces a day-document to its calendar summary.
func Summarize(l *WorkoutLog) DaySummary {
	return DaySummary{
		Date:   l.Date,
		Count:  len(l.Entries),
		Sec:    l.EffectiveDurationSec(),
		Groups: l.ActiveGroups(),
	}
}
