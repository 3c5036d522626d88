package analysis

import (
	"sort"
	"strings"
)

// jointKeySep joins the values of the leading k-1 columns of a multi-way
// table into one row key. A non-printing separator keeps distinct value
// tuples from colliding on concatenation.
const jointKeySep = "\x1f"

// Contingency is a cross-tabulation of joint category counts. Row and
// column keys are sorted for deterministic iteration.
type Contingency struct {
	RowKeys []string
	ColKeys []string
	Counts  [][]float64
	Total   int
}

// Rows returns the number of row categories.
func (c *Contingency) Rows() int { return len(c.RowKeys) }

// Cols returns the number of column categories.
func (c *Contingency) Cols() int { return len(c.ColKeys) }

// Degenerate reports whether the table's smaller dimension leaves the
// strength formula undefined (min(rows, cols) - 1 == 0).
func (c *Contingency) Degenerate() bool {
	min := c.Rows()
	if c.Cols() < min {
		min = c.Cols()
	}
	return min-1 <= 0
}

// Crosstab builds the contingency table of two value sequences. Sequences
// are truncated to their common length.
func Crosstab(a, b []string) *Contingency {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	return crosstabKeyed(a[:n], b[:n])
}

// CrosstabJoint builds a multi-way frequency table collapsed into two
// dimensions: rows are the joint values of the first k-1 columns, columns
// the values of the k-th. For k=2 this matches Crosstab.
func CrosstabJoint(columns [][]string) *Contingency {
	if len(columns) < 2 {
		return &Contingency{}
	}
	n := len(columns[0])
	for _, col := range columns[1:] {
		if len(col) < n {
			n = len(col)
		}
	}
	rowVals := make([]string, n)
	for i := 0; i < n; i++ {
		parts := make([]string, len(columns)-1)
		for j := 0; j < len(columns)-1; j++ {
			parts[j] = columns[j][i]
		}
		rowVals[i] = strings.Join(parts, jointKeySep)
	}
	last := columns[len(columns)-1]
	return crosstabKeyed(rowVals, last[:n])
}

func crosstabKeyed(rowVals, colVals []string) *Contingency {
	counts := make(map[string]map[string]float64)
	colSeen := make(map[string]bool)
	for i := range rowVals {
		rv, cv := rowVals[i], colVals[i]
		if counts[rv] == nil {
			counts[rv] = make(map[string]float64)
		}
		counts[rv][cv]++
		colSeen[cv] = true
	}

	rowKeys := make([]string, 0, len(counts))
	for k := range counts {
		rowKeys = append(rowKeys, k)
	}
	sort.Strings(rowKeys)

	colKeys := make([]string, 0, len(colSeen))
	for k := range colSeen {
		colKeys = append(colKeys, k)
	}
	sort.Strings(colKeys)

	table := &Contingency{
		RowKeys: rowKeys,
		ColKeys: colKeys,
		Counts:  make([][]float64, len(rowKeys)),
		Total:   len(rowVals),
	}
	for i, rk := range rowKeys {
		table.Counts[i] = make([]float64, len(colKeys))
		for j, ck := range colKeys {
			table.Counts[i][j] = counts[rk][ck]
		}
	}
	return table
}
