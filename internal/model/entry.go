package model

import "time"

// TimeEntry is one recorded span of work on a task. An entry with a nil End
// is still running.
type TimeEntry struct {
	Task  string     `json:"task"`
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
	Note  *string    `json:"note,omitempty"`
}

// IsOpen reports whether the entry has not been stopped yet.
func (e TimeEntry) IsOpen() bool {
	return e.End == nil
}

// Duration returns End-Start, using now as the end of an open entry.
// The result is negative when the end lies before the start.
func (e TimeEntry) Duration(now time.Time) time.Duration {
	end := now
	if e.End != nil {
		end = *e.End
	}
	return end.Sub(e.Start)
}

// Log is the full ordered sequence of entries, in insertion order.
type Log []TimeEntry

// LastOpenIndex scans from the most recent entry backward and returns the
// index of the first open entry, or -1 if every entry is closed.
// If more than one entry is open, the latest one wins.
func (l Log) LastOpenIndex() int {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].IsOpen() {
			return i
		}
	}
	return -1
}
