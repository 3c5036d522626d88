package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"goassoc/domain/core"
	"goassoc/domain/dataset"
	"goassoc/domain/stats"
	"goassoc/internal/analysis"
	"goassoc/internal/analysis/stages"
	"goassoc/internal/errors"
	"goassoc/internal/registry"
	"goassoc/ports"
)

// Stage names are part of the polling contract: clients render
// steps_completed verbatim.
const (
	StagePreprocess    = "Preprocessing Data"
	StageAverage       = "Computing Average Cramér's V"
	StageLogistic      = "Logistic Regression Analysis"
	StageDecisionTree  = "Decision Tree Analysis"
	StageRandomForest  = "Random Forest Analysis"
	StageChiSquare     = "Chi-Square Tests"
	StageMultiVariable = "Multi-Variable Analysis"
)

// StageSequence is the fixed, ordered list of stages every task runs.
var StageSequence = []string{
	StagePreprocess,
	StageAverage,
	StageLogistic,
	StageDecisionTree,
	StageRandomForest,
	StageChiSquare,
	StageMultiVariable,
}

// Orchestrator runs the analysis pipeline for one task at a time and
// advances the shared task record after each stage. Failure policy is
// two-tier: input validation failures abort the task immediately, while
// analytical stage failures degrade that stage to an empty result and the
// pipeline continues.
type Orchestrator struct {
	registry     *registry.TaskRegistry
	engine       *analysis.Engine
	preprocessor ports.Preprocessor
	logistic     ports.ModelScorer
	decisionTree ports.ModelScorer
	randomForest ports.ModelScorer
	archive      ports.Archive
	groupFn      analysis.GroupFunc

	batchSize int
	workers   int
	now       core.Clock
}

// Options configures an Orchestrator beyond its required collaborators.
type Options struct {
	BatchSize int
	Workers   int
	GroupFn   analysis.GroupFunc
	Archive   ports.Archive
	Clock     core.Clock
}

// New creates a pipeline orchestrator.
func New(reg *registry.TaskRegistry, pre ports.Preprocessor, logistic, tree, forest ports.ModelScorer, opts Options) *Orchestrator {
	o := &Orchestrator{
		registry:     reg,
		engine:       analysis.NewEngine(),
		preprocessor: pre,
		logistic:     logistic,
		decisionTree: tree,
		randomForest: forest,
		archive:      opts.Archive,
		groupFn:      opts.GroupFn,
		batchSize:    opts.BatchSize,
		workers:      opts.Workers,
		now:          opts.Clock,
	}
	if o.groupFn == nil {
		o.groupFn = analysis.PrefixGroup
	}
	if o.now == nil {
		o.now = core.SystemClock
	}
	return o
}

// Run executes the full stage sequence for the given task and finalizes its
// record. It is designed to be launched on a dedicated goroutine per task;
// it never returns an error because every outcome, including a panic,
// terminates in the task record.
func (o *Orchestrator) Run(ctx context.Context, id core.TaskID, ds *dataset.Dataset, selection []string) {
	errLog := &stages.ErrorLog{}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline] Task %s: panic: %v", id, r)
			o.registry.FinalizeError(id, fmt.Sprintf("internal error: %v", r), errLog.Entries())
		}
		o.archiveResult(ctx, id)
	}()

	selection = dataset.NormalizeSelection(selection)
	if err := o.validate(ds, selection); err != nil {
		log.Printf("[Pipeline] Task %s: validation failed: %v", id, err)
		o.registry.FinalizeError(id, err.Error(), errLog.Entries())
		return
	}

	start := o.now()
	total := len(StageSequence)
	bundle := stats.NewResultsBundle()
	completed := 0

	advance := func(name string) {
		completed++
		o.registry.UpdateProgress(id, name, completed, total)
		elapsed := o.now().Sub(start)
		eta := elapsed.Seconds() / float64(completed) * float64(total-completed)
		o.registry.UpdateETA(id, eta)
	}

	// Stage 1: preprocessing. Every later stage receives this frame, not
	// the prior stage's output.
	frame := o.runPreprocess(ds, selection, errLog)
	advance(StagePreprocess)

	o.runStage(StageAverage, errLog, func() {
		bundle.AverageCramersV = stages.AverageStrength(o.engine, frame, errLog)
	})
	advance(StageAverage)

	o.runStage(StageLogistic, errLog, func() {
		bundle.LogisticRegression = stages.ModelAccuracy(o.logistic, frame, errLog)
	})
	advance(StageLogistic)

	o.runStage(StageDecisionTree, errLog, func() {
		bundle.DecisionTree = stages.ModelAccuracy(o.decisionTree, frame, errLog)
	})
	advance(StageDecisionTree)

	o.runStage(StageRandomForest, errLog, func() {
		bundle.RandomForest = stages.ModelAccuracy(o.randomForest, frame, errLog)
	})
	advance(StageRandomForest)

	o.runStage(StageChiSquare, errLog, func() {
		bundle.ChiSquare = stages.PairwiseAssociations(ctx, o.engine, o.newScheduler(id), frame, errLog)
	})
	advance(StageChiSquare)

	o.runStage(StageMultiVariable, errLog, func() {
		bundle.MultiVariable = stages.MultiVariableAssociations(ctx, o.engine, o.newScheduler(id), frame, o.groupFn, errLog)
	})
	advance(StageMultiVariable)

	o.registry.FinalizeSuccess(id, bundle, errLog.Entries())
	log.Printf("[Pipeline] Task %s: completed in %s", id, o.now().Sub(start).Round(time.Millisecond))
}

// validate enforces the fatal tier of the failure policy. It runs even when
// the HTTP boundary already checked, since tasks can also come from the CLI.
func (o *Orchestrator) validate(ds *dataset.Dataset, selection []string) error {
	if err := dataset.ValidateSelection(ds, selection); err != nil {
		return err
	}
	if len(selection) < 2 {
		return errors.ValidationError("At least two selected columns are required for association analysis.")
	}
	return nil
}

// runPreprocess applies the injected preprocessor, degrading to a plain
// column selection of the raw dataset when it fails.
func (o *Orchestrator) runPreprocess(ds *dataset.Dataset, selection []string, errLog *stages.ErrorLog) *dataset.Dataset {
	frame, err := o.preprocessor.Preprocess(ds, selection)
	if err != nil || frame == nil {
		if err != nil {
			errLog.Append(fmt.Sprintf("Error processing dataframe: %v", err))
		}
		return ds.Select(selection)
	}
	return frame
}

// runStage contains one analytical stage: a panic inside the stage body is
// recorded as that stage's degradation and the sequence continues.
func (o *Orchestrator) runStage(name string, errLog *stages.ErrorLog, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Pipeline] Stage %q failed: %v", name, r)
			errLog.Append(fmt.Sprintf("Error during %s: %v.", name, r))
		}
	}()
	fn()
}

// newScheduler builds the batch scheduler for one association stage, wiring
// its per-batch ETA side channel back into the task record.
func (o *Orchestrator) newScheduler(id core.TaskID) *analysis.Scheduler {
	sched := analysis.NewScheduler(o.batchSize, o.workers).WithClock(o.now)
	sched.OnETA = func(seconds float64) {
		o.registry.UpdateETA(id, seconds)
	}
	return sched
}

// archiveResult writes the terminal record to the archive when one is
// configured. Best-effort: the task outcome never depends on it.
func (o *Orchestrator) archiveResult(ctx context.Context, id core.TaskID) {
	if o.archive == nil {
		return
	}
	rec, ok := o.registry.Get(id)
	if !ok || !rec.Status.Terminal() {
		return
	}
	if err := o.archive.SaveResult(ctx, rec); err != nil {
		log.Printf("[Pipeline] Task %s: archive write failed: %v", id, err)
	}
}
