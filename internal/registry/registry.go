package registry

import (
	"log"
	"sync"
	"time"

	"goassoc/domain/core"
	"goassoc/domain/stats"
	"goassoc/domain/task"
)

// TaskRegistry is the thread-safe mapping from task ID to its current
// record. It is the only state shared across concurrent tasks; every read
// and write goes through its single mutex, and readers receive snapshots.
type TaskRegistry struct {
	mu    sync.RWMutex
	tasks map[core.TaskID]*task.Record
	now   core.Clock
}

// New creates an empty registry backed by the system clock.
func New() *TaskRegistry {
	return NewWithClock(core.SystemClock)
}

// NewWithClock creates a registry with an injected clock for tests.
func NewWithClock(now core.Clock) *TaskRegistry {
	return &TaskRegistry{
		tasks: make(map[core.TaskID]*task.Record),
		now:   now,
	}
}

// Create allocates a new task in the processing state and returns its ID.
func (r *TaskRegistry) Create() core.TaskID {
	id := core.NewTaskID()
	r.mu.Lock()
	r.tasks[id] = &task.Record{
		ID:             id,
		Status:         task.StatusProcessing,
		Progress:       0,
		StepsCompleted: []string{},
		StartTime:      r.now(),
	}
	r.mu.Unlock()
	return id
}

// UpdateProgress appends a completed stage name and recomputes progress as a
// single atomic mutation. Lost updates are impossible under the registry
// lock even when unrelated tasks complete stages concurrently.
func (r *TaskRegistry) UpdateProgress(id core.TaskID, stageName string, completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.Status.Terminal() {
		return
	}
	rec.StepsCompleted = append(rec.StepsCompleted, stageName)
	rec.Progress = float64(completed) / float64(total) * 100
	log.Printf("[TaskRegistry] Task %s: completed %s (%.2f%%)", id, stageName, rec.Progress)
}

// UpdateETA records the estimated seconds remaining.
func (r *TaskRegistry) UpdateETA(id core.TaskID, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.Status.Terminal() {
		return
	}
	eta := seconds
	rec.ETA = &eta
}

// FinalizeSuccess transitions the task to its terminal success state with
// the aggregated results and whatever stage-local errors accumulated.
func (r *TaskRegistry) FinalizeSuccess(id core.TaskID, bundle *stats.ResultsBundle, errorLogs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.Status.Terminal() {
		return
	}
	rec.Status = task.StatusSuccess
	rec.Progress = 100
	zero := 0.0
	rec.ETA = &zero
	rec.Bundle = bundle
	rec.ErrorLogs = append([]string(nil), errorLogs...)
}

// FinalizeError transitions the task to its terminal error state, keeping
// the stage names that completed before the failure.
func (r *TaskRegistry) FinalizeError(id core.TaskID, message string, errorLogs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.tasks[id]
	if !ok || rec.Status.Terminal() {
		return
	}
	rec.Status = task.StatusError
	rec.Message = message
	rec.ErrorLogs = append([]string(nil), errorLogs...)
}

// Get returns a consistent snapshot of the task record.
func (r *TaskRegistry) Get(id core.TaskID) (task.Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.tasks[id]
	if !ok {
		return task.Record{}, false
	}
	return rec.Snapshot(), true
}

// Prune removes terminal records older than maxAge and returns how many
// were dropped. Records still processing are never pruned.
func (r *TaskRegistry) Prune(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, rec := range r.tasks {
		if rec.Status.Terminal() && rec.StartTime.Before(cutoff) {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked tasks.
func (r *TaskRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}
