// Package window computes the time intervals used to bucket entries:
// local calendar days for the one-entry-per-day gate, and flat rolling
// windows for statistics.
package window

import "time"

// Day returns the half-open local-calendar-day interval [start, end)
// containing t. Boundaries are rebuilt from calendar components rather than
// by adding 24h, so they stay on midnight across DST transitions.
func Day(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

// RollingStart returns the open-ended lower bound now - days*24h.
// Rolling windows are duration-based on purpose and do not realign to
// midnight.
func RollingStart(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}
