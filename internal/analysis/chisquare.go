package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"goassoc/domain/stats"
)

// ErrDegenerateTable marks a contingency table whose smaller dimension is 1,
// leaving the strength formula undefined. Callers must exclude the pair
// from averages and rankings, never coerce it to zero.
var ErrDegenerateTable = errors.New("contingency table is degenerate")

// ErrNotComputable marks a statistic that evaluated to NaN, which can occur
// with zero-variance columns. Treated exactly like a degenerate table.
var ErrNotComputable = errors.New("association strength is not computable")

// Engine computes chi-square association statistics over categorical
// columns. The zero value is ready to use.
type Engine struct{}

// NewEngine creates a new association statistics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute runs the chi-square test of independence between two value
// sequences and derives the normalized association strength.
func (e *Engine) Compute(nameA, nameB string, valuesA, valuesB []string) (*stats.Association, error) {
	return e.fromTable([]string{nameA, nameB}, Crosstab(valuesA, valuesB))
}

// ComputeJoint runs the same test over k >= 2 columns: rows are grouped on
// the first k-1 columns and the k-th is unstacked as table columns.
func (e *Engine) ComputeJoint(names []string, columns [][]string) (*stats.Association, error) {
	if len(names) != len(columns) || len(names) < 2 {
		return nil, ErrNotComputable
	}
	return e.fromTable(names, CrosstabJoint(columns))
}

func (e *Engine) fromTable(names []string, table *Contingency) (*stats.Association, error) {
	if table.Total == 0 || table.Degenerate() {
		return nil, ErrDegenerateTable
	}

	chi2, dof := chiSquareStatistic(table)
	minDim := table.Rows()
	if table.Cols() < minDim {
		minDim = table.Cols()
	}
	v := math.Sqrt(chi2 / (float64(table.Total) * float64(minDim-1)))
	if math.IsNaN(v) {
		return nil, ErrNotComputable
	}

	p := chiSquarePValue(chi2, dof)

	return &stats.Association{
		Variables:      append([]string(nil), names...),
		ChiSquare:      chi2,
		PValue:         p,
		DOF:            dof,
		N:              table.Total,
		CramersV:       v,
		Interpretation: stats.InterpretCramersV(v),
	}, nil
}

// chiSquareStatistic computes the Pearson chi-square statistic and degrees
// of freedom of a contingency table. Cells with zero expected count are
// skipped; no continuity correction is applied.
func chiSquareStatistic(table *Contingency) (float64, int) {
	rows, cols := table.Rows(), table.Cols()
	rowTotals := make([]float64, rows)
	colTotals := make([]float64, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rowTotals[i] += table.Counts[i][j]
			colTotals[j] += table.Counts[i][j]
		}
	}

	total := float64(table.Total)
	chi2 := 0.0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			expected := rowTotals[i] * colTotals[j] / total
			if expected > 0 {
				diff := table.Counts[i][j] - expected
				chi2 += diff * diff / expected
			}
		}
	}
	return chi2, (rows - 1) * (cols - 1)
}

// chiSquarePValue is the survival function of the chi-squared distribution
// at the observed statistic.
func chiSquarePValue(chi2 float64, dof int) float64 {
	if dof <= 0 {
		return 1
	}
	dist := distuv.ChiSquared{K: float64(dof)}
	return dist.Survival(chi2)
}
