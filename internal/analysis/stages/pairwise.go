package stages

import (
	"context"
	"log"
	"sort"

	"goassoc/domain/dataset"
	"goassoc/domain/stats"
	"goassoc/internal/analysis"
)

// PairwiseAssociations runs the chi-square test over every unordered column
// pair of the frame, batched through the scheduler. Items within a batch
// complete in arbitrary order; the final list is re-sorted by strength
// descending (stable on ties) so unordered completion never leaks into the
// output. Degenerate pairs yield no entry.
func PairwiseAssociations(ctx context.Context, engine *analysis.Engine, sched *analysis.Scheduler, frame *dataset.Dataset, errLog *ErrorLog) []stats.PairResult {
	columns := frame.Names()
	if len(columns) < 2 {
		errLog.Append("Not enough variables for chi-square tests.")
		return []stats.PairResult{}
	}

	pairs := analysis.Pairs(columns)
	slots := make([]*stats.Association, len(pairs))
	sched.Run(ctx, len(pairs), func(ctx context.Context, i int) {
		a, b := pairs[i][0], pairs[i][1]
		assoc, err := engine.Compute(a, b, frame.Column(a), frame.Column(b))
		if err != nil {
			// Item-local failure: this slot stays absent, siblings proceed.
			return
		}
		slots[i] = assoc
	})

	results := make([]stats.PairResult, 0, len(slots))
	for _, assoc := range slots {
		if assoc == nil {
			continue
		}
		results = append(results, stats.PairResult{
			Variable1:      assoc.Variables[0],
			Variable2:      assoc.Variables[1],
			ChiSquare:      assoc.ChiSquare,
			PValue:         assoc.PValue,
			CramersV:       assoc.CramersV,
			Interpretation: assoc.Interpretation,
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CramersV > results[j].CramersV
	})
	log.Printf("[Stages] Chi-square tests completed: %d of %d pairs computable", len(results), len(pairs))
	return results
}
