package analysis

import (
	"context"
	"log"
	"runtime"
	"sync"

	"golang.org/x/sync/semaphore"

	"goassoc/domain/core"
)

// DefaultBatchSize is the number of work items dispatched per batch.
const DefaultBatchSize = 20

// Scheduler partitions a work list into fixed-size batches and fans each
// batch out over a bounded worker pool. Batches run sequentially; items
// within a batch run concurrently. After every batch the cumulative
// throughput is turned into an ETA and reported through OnETA.
type Scheduler struct {
	BatchSize int
	Workers   int
	// OnETA receives the estimated seconds remaining after each batch.
	// Nil callbacks are skipped.
	OnETA func(secondsRemaining float64)

	now core.Clock
}

// NewScheduler creates a scheduler with the given batch size and worker
// count. Zero or negative arguments fall back to DefaultBatchSize and the
// available parallelism.
func NewScheduler(batchSize, workers int) *Scheduler {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Scheduler{BatchSize: batchSize, Workers: workers, now: core.SystemClock}
}

// WithClock replaces the scheduler's clock, for scripted-time tests.
func (s *Scheduler) WithClock(now core.Clock) *Scheduler {
	s.now = now
	return s
}

// Run processes total work items identified by index. The process function
// owns per-item error handling: a failing item must record its own absent
// result and return, it can never abort sibling items. Panics in one item
// are contained the same way.
func (s *Scheduler) Run(ctx context.Context, total int, process func(ctx context.Context, index int)) {
	if total <= 0 {
		return
	}
	sem := semaphore.NewWeighted(int64(s.Workers))
	start := s.now()
	processed := 0

	for offset := 0; offset < total; offset += s.BatchSize {
		end := offset + s.BatchSize
		if end > total {
			end = total
		}

		var wg sync.WaitGroup
		for i := offset; i < end; i++ {
			if err := sem.Acquire(ctx, 1); err != nil {
				// Context cancelled; stop dispatching, finish in-flight items.
				break
			}
			wg.Add(1)
			go func(index int) {
				defer wg.Done()
				defer sem.Release(1)
				defer func() {
					if r := recover(); r != nil {
						log.Printf("[Scheduler] item %d panicked: %v", index, r)
					}
				}()
				process(ctx, index)
			}(i)
		}
		wg.Wait()

		processed = end
		if s.OnETA != nil {
			elapsed := s.now().Sub(start).Seconds()
			avgPerItem := elapsed / float64(processed)
			s.OnETA(avgPerItem * float64(total-processed))
		}
		if ctx.Err() != nil {
			return
		}
	}
}
