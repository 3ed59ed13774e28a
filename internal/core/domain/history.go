package domain

import "time"

// MergeRun is a persisted record of one merge.
type MergeRun struct {
	ID        string
	Input     string
	Outputs   map[Variant]string
	Excluded  int
	Passes    int
	Skipped   bool
	Error     string
	StartedAt time.Time
	Duration  time.Duration
}

// Succeeded reports whether the run finished without error.
func (r *MergeRun) Succeeded() bool {
	return r.Error == ""
}
