package task

import (
	"time"

	"goassoc/domain/core"
	"goassoc/domain/stats"
)

// Status is the lifecycle state of a task. Terminal states are absorbing.
type Status string

const (
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Terminal reports whether the status is absorbing.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

// Record tracks one analysis run end-to-end. A record is write-owned by the
// background goroutine running the task; pollers only ever see snapshots.
type Record struct {
	ID             core.TaskID
	Status         Status
	Progress       float64
	StepsCompleted []string
	// ETA is the estimated seconds remaining. Nil until the first stage
	// completes, zero once the task succeeds.
	ETA       *float64
	StartTime time.Time

	// Terminal payload: exactly one of Bundle (success) or Message (error)
	// is set. ErrorLogs accumulates stage-local degradations either way.
	Bundle    *stats.ResultsBundle
	Message   string
	ErrorLogs []string
}

// Snapshot returns a deep copy safe to hand to a concurrent reader.
func (r *Record) Snapshot() Record {
	out := *r
	out.StepsCompleted = append([]string(nil), r.StepsCompleted...)
	out.ErrorLogs = append([]string(nil), r.ErrorLogs...)
	if r.ETA != nil {
		eta := *r.ETA
		out.ETA = &eta
	}
	// The bundle is immutable once finalized, sharing it is safe.
	return out
}
