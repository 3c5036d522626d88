package preprocess

import (
	"goassoc/domain/dataset"
	"goassoc/ports"
)

// DefaultRareShareThreshold is the relative frequency below which a
// category is folded into "Other".
const DefaultRareShareThreshold = 0.05

// Imputer is the default preprocessor: it restricts the dataset to the
// selected columns, fills missing cells forward then backward, and reduces
// cardinality by folding rare categories into "Other". These are schema
// heuristics, not pipeline architecture, which is why the pipeline takes
// them through the ports.Preprocessor interface.
type Imputer struct {
	RareShareThreshold float64
}

// NewImputer creates the default preprocessor.
func NewImputer() *Imputer {
	return &Imputer{RareShareThreshold: DefaultRareShareThreshold}
}

var _ ports.Preprocessor = (*Imputer)(nil)

// Preprocess derives the working frame for a pipeline run.
func (p *Imputer) Preprocess(ds *dataset.Dataset, selection []string) (*dataset.Dataset, error) {
	cols := make(map[string][]string, len(selection))
	for _, name := range selection {
		values := fillMissing(ds.Column(name))
		values = p.reduceCardinality(values)
		cols[name] = values
	}
	return dataset.FromColumns(selection, cols), nil
}

// fillMissing forward-fills missing cells, then backward-fills any leading
// run that had no earlier value.
func fillMissing(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	for i := 1; i < len(out); i++ {
		if out[i] == dataset.Missing {
			out[i] = out[i-1]
		}
	}
	for i := len(out) - 2; i >= 0; i-- {
		if out[i] == dataset.Missing {
			out[i] = out[i+1]
		}
	}
	return out
}

// reduceCardinality folds categories whose share of the column is below the
// threshold into "Other".
func (p *Imputer) reduceCardinality(values []string) []string {
	if len(values) == 0 || p.RareShareThreshold <= 0 {
		return values
	}
	counts := make(map[string]int)
	for _, v := range values {
		counts[v]++
	}
	total := float64(len(values))
	out := make([]string, len(values))
	for i, v := range values {
		if float64(counts[v])/total < p.RareShareThreshold {
			out[i] = "Other"
		} else {
			out[i] = v
		}
	}
	return out
}
