package stages

import (
	"fmt"
	"sort"

	"goassoc/domain/dataset"
	"goassoc/domain/stats"
	"goassoc/ports"
)

// ModelAccuracy scores every column of the frame as a classification target
// against the remaining columns as predictors, using the injected scorer.
// Results are sorted by accuracy descending. A scorer failure degrades the
// whole stage to an empty list with the reason logged.
func ModelAccuracy(scorer ports.ModelScorer, frame *dataset.Dataset, errLog *ErrorLog) []stats.ModelResult {
	columns := frame.Names()
	results := make([]stats.ModelResult, 0, len(columns))

	for _, target := range columns {
		predictors := make([]string, 0, len(columns)-1)
		for _, col := range columns {
			if col != target {
				predictors = append(predictors, col)
			}
		}
		score, err := scorer.Score(frame, target, predictors)
		if err != nil {
			errLog.Append(fmt.Sprintf("Error during %s analysis: %v.", scorer.Name(), err))
			return []stats.ModelResult{}
		}
		results = append(results, stats.ModelResult{
			Target:         target,
			Predictors:     predictors,
			Accuracy:       score,
			Interpretation: stats.InterpretModelAccuracy(score),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Accuracy > results[j].Accuracy
	})
	return results
}
