package ports

import (
	"context"

	"goassoc/domain/dataset"
	"goassoc/domain/task"
)

// Preprocessor derives the working frame a pipeline run operates on. The
// encoding and imputation heuristics behind it are collaborator territory;
// the pipeline only cares that it yields a frame over the selected columns.
type Preprocessor interface {
	Preprocess(ds *dataset.Dataset, selection []string) (*dataset.Dataset, error)
}

// ModelScorer scores how well the predictor columns explain the target
// column, as a training accuracy in [0,1]. The concrete classifier behind a
// scorer is swappable; the pipeline treats it as an opaque stage function.
type ModelScorer interface {
	Name() string
	Score(frame *dataset.Dataset, target string, predictors []string) (float64, error)
}

// Archive persists finalized task records for audit. Archiving is
// write-only and optional; task-state correctness never depends on it.
type Archive interface {
	SaveResult(ctx context.Context, rec task.Record) error
}
