package stages

import (
	"log"

	mstats "github.com/montanaflynn/stats"

	"goassoc/domain/dataset"
	"goassoc/domain/stats"
	"goassoc/internal/analysis"
)

// MaxUniqueValues caps the cardinality a column may have to take part in
// the average-strength aggregate. High-cardinality columns produce sparse
// tables that drown the summary.
const MaxUniqueValues = 10

// AverageStrength computes the mean Cramér's V over all valid column pairs
// of the frame, restricted to columns with at most MaxUniqueValues distinct
// values. Degenerate and not-computable pairs are excluded from the mean,
// never counted as zero. A nil result means no aggregate could be formed;
// the reason is appended to errLog.
func AverageStrength(engine *analysis.Engine, frame *dataset.Dataset, errLog *ErrorLog) *stats.AverageStrength {
	var usable []string
	for _, name := range frame.Names() {
		if frame.UniqueCount(name) <= MaxUniqueValues {
			usable = append(usable, name)
		}
	}
	if len(usable) < 2 {
		errLog.Append("Not enough variables for correlation analysis after filtering.")
		return nil
	}

	var strengths []float64
	for _, pair := range analysis.Pairs(usable) {
		assoc, err := engine.Compute(pair[0], pair[1], frame.Column(pair[0]), frame.Column(pair[1]))
		if err != nil {
			continue
		}
		strengths = append(strengths, assoc.CramersV)
	}
	if len(strengths) == 0 {
		errLog.Append("No valid pairs for computing average Cramér's V.")
		return nil
	}

	mean, err := mstats.Mean(strengths)
	if err != nil {
		errLog.Append("Error computing average Cramér's V: " + err.Error())
		return nil
	}
	log.Printf("[Stages] Average Cramér's V computed over %d valid pairs: %.4f", len(strengths), mean)
	return &stats.AverageStrength{
		Value:          mean,
		Interpretation: stats.InterpretCramersV(mean),
	}
}
