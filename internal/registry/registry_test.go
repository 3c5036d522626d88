package registry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassoc/domain/core"
	"goassoc/domain/stats"
	"goassoc/domain/task"
)

func TestCreateAndGet(t *testing.T) {
	reg := New()
	id := reg.Create()
	require.False(t, id.IsEmpty())

	rec, ok := reg.Get(id)
	require.True(t, ok)
	assert.Equal(t, task.StatusProcessing, rec.Status)
	assert.Equal(t, 0.0, rec.Progress)
	assert.Empty(t, rec.StepsCompleted)
	assert.Nil(t, rec.ETA)
	assert.False(t, rec.StartTime.IsZero())
}

func TestGetUnknownID(t *testing.T) {
	reg := New()
	_, ok := reg.Get(core.TaskID("no-such-task"))
	assert.False(t, ok)
}

func TestProgressIsMonotonic(t *testing.T) {
	reg := New()
	id := reg.Create()

	stageNames := []string{"one", "two", "three", "four"}
	last := -1.0
	for i, name := range stageNames {
		reg.UpdateProgress(id, name, i+1, len(stageNames))
		rec, _ := reg.Get(id)
		assert.Greater(t, rec.Progress, last)
		assert.InDelta(t, float64(i+1)/float64(len(stageNames))*100, rec.Progress, 1e-9)
		last = rec.Progress
	}

	rec, _ := reg.Get(id)
	assert.Equal(t, stageNames, rec.StepsCompleted)
	assert.Equal(t, 100.0, rec.Progress)
}

func TestUpdateETA(t *testing.T) {
	reg := New()
	id := reg.Create()
	reg.UpdateETA(id, 42.5)
	rec, _ := reg.Get(id)
	require.NotNil(t, rec.ETA)
	assert.Equal(t, 42.5, *rec.ETA)
}

func TestFinalizeSuccess(t *testing.T) {
	reg := New()
	id := reg.Create()
	bundle := stats.NewResultsBundle()
	reg.FinalizeSuccess(id, bundle, []string{"one degraded stage"})

	rec, _ := reg.Get(id)
	assert.Equal(t, task.StatusSuccess, rec.Status)
	assert.Equal(t, 100.0, rec.Progress)
	require.NotNil(t, rec.ETA)
	assert.Equal(t, 0.0, *rec.ETA)
	assert.Same(t, bundle, rec.Bundle)
	assert.Equal(t, []string{"one degraded stage"}, rec.ErrorLogs)

	// Terminal states are absorbing.
	reg.UpdateProgress(id, "late stage", 1, 2)
	reg.FinalizeError(id, "too late", nil)
	rec, _ = reg.Get(id)
	assert.Equal(t, task.StatusSuccess, rec.Status)
	assert.NotContains(t, rec.StepsCompleted, "late stage")
}

func TestFinalizeError(t *testing.T) {
	reg := New()
	id := reg.Create()
	reg.UpdateProgress(id, "Preprocessing Data", 1, 7)
	reg.FinalizeError(id, "boom", []string{"partial log"})

	rec, _ := reg.Get(id)
	assert.Equal(t, task.StatusError, rec.Status)
	assert.Equal(t, "boom", rec.Message)
	assert.Equal(t, []string{"Preprocessing Data"}, rec.StepsCompleted,
		"stage names completed before failure are retained")
	assert.Equal(t, []string{"partial log"}, rec.ErrorLogs)
}

func TestSnapshotIsolation(t *testing.T) {
	reg := New()
	id := reg.Create()
	reg.UpdateProgress(id, "one", 1, 2)

	snap, _ := reg.Get(id)
	snap.StepsCompleted[0] = "mutated"

	rec, _ := reg.Get(id)
	assert.Equal(t, "one", rec.StepsCompleted[0])
}

func TestConcurrentTasksNoLostUpdates(t *testing.T) {
	reg := New()
	const tasks = 16
	const stages = 25

	ids := make([]core.TaskID, tasks)
	for i := range ids {
		ids[i] = reg.Create()
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id core.TaskID) {
			defer wg.Done()
			for s := 1; s <= stages; s++ {
				reg.UpdateProgress(id, "stage", s, stages)
			}
		}(id)
	}
	wg.Wait()

	for _, id := range ids {
		rec, _ := reg.Get(id)
		assert.Len(t, rec.StepsCompleted, stages)
		assert.Equal(t, 100.0, rec.Progress)
	}
}

func TestPrune(t *testing.T) {
	now := time.Unix(5000, 0)
	reg := NewWithClock(func() time.Time { return now })

	stale := reg.Create()
	reg.FinalizeSuccess(stale, stats.NewResultsBundle(), nil)
	running := reg.Create()

	now = now.Add(48 * time.Hour)
	fresh := reg.Create()
	reg.FinalizeError(fresh, "x", nil)

	removed := reg.Prune(24 * time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := reg.Get(stale)
	assert.False(t, ok)
	_, ok = reg.Get(running)
	assert.True(t, ok, "processing records are never pruned")
	_, ok = reg.Get(fresh)
	assert.True(t, ok)
	assert.Equal(t, 2, reg.Len())
}
