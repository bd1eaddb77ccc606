package domain

import "time"

// DefaultRescanInterval is used when a rescan task carries no interval.
const DefaultRescanInterval = time.Hour

// RescanTask holds the periodic-rescan schedule for one source.
// Sources whose connector cannot watch fall back to interval rescans;
// the task persists enough state to survive restarts.
type RescanTask struct {
	// SourceID identifies the source this task rescans.
	SourceID string

	// Interval defines how often the rescan should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// Due reports whether the task should run at the given instant.
// A task with no recorded NextRun is due immediately.
func (t *RescanTask) Due(now time.Time) bool {
	if !t.Enabled {
		return false
	}
	return !now.Before(t.NextRun)
}

// Advance records a completed run and schedules the next one.
func (t *RescanTask) Advance(ran time.Time, runErr error) {
	t.LastRun = ran
	if runErr != nil {
		t.LastError = runErr.Error()
	} else {
		t.LastError = ""
		t.LastSuccess = ran
	}
	interval := t.Interval
	if interval <= 0 {
		interval = DefaultRescanInterval
	}
	t.NextRun = ran.Add(interval)
}

// RescanResult records the outcome of one rescan execution.
type RescanResult struct {
	// SourceID identifies which source was rescanned.
	SourceID string

	// StartedAt is when the rescan started.
	StartedAt time.Time

	// EndedAt is when the rescan completed.
	EndedAt time.Time

	// Success indicates whether the rescan completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// RecordsIndexed counts implementor records written by the run.
	RecordsIndexed int
}
