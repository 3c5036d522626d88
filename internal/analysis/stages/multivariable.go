package stages

import (
	"context"
	"log"
	"sort"

	"goassoc/domain/dataset"
	"goassoc/domain/stats"
	"goassoc/internal/analysis"
)

// MultiVariableAssociations enumerates cross-group column combinations and
// tests each with the multi-way chi-square, batched through the scheduler.
// Combinations whose collapsed table degenerates are skipped.
func MultiVariableAssociations(ctx context.Context, engine *analysis.Engine, sched *analysis.Scheduler, frame *dataset.Dataset, groupFn analysis.GroupFunc, errLog *ErrorLog) []stats.MultiResult {
	columns := frame.Names()
	if len(columns) < 2 {
		errLog.Append("Not enough variables for multi-variable analysis.")
		return []stats.MultiResult{}
	}

	combos := analysis.MultiCombinations(columns, groupFn)
	if len(combos) == 0 {
		return []stats.MultiResult{}
	}

	slots := make([]*stats.Association, len(combos))
	sched.Run(ctx, len(combos), func(ctx context.Context, i int) {
		names := combos[i]
		values := make([][]string, len(names))
		for j, name := range names {
			values[j] = frame.Column(name)
		}
		assoc, err := engine.ComputeJoint(names, values)
		if err != nil {
			return
		}
		slots[i] = assoc
	})

	results := make([]stats.MultiResult, 0, len(slots))
	for _, assoc := range slots {
		if assoc == nil {
			continue
		}
		results = append(results, stats.MultiResult{
			Variables:      assoc.Variables,
			ChiSquare:      assoc.ChiSquare,
			PValue:         assoc.PValue,
			CramersV:       assoc.CramersV,
			Interpretation: assoc.Interpretation,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CramersV > results[j].CramersV
	})
	log.Printf("[Stages] Multi-variable analysis completed: %d of %d combinations computable", len(results), len(combos))
	return results
}
