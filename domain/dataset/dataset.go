package dataset

import (
	"math"
	"sort"
	"strconv"
)

// Missing is the canonical marker for an absent cell value. Preprocessing
// fills it; any cell still equal to Missing is treated as its own category.
const Missing = ""

// Dataset is a column-major view over one submitted table. It is immutable
// once built; pipeline stages derive working copies via Select.
type Dataset struct {
	names []string
	cols  map[string][]string
	rows  int
}

// FromRows builds a Dataset from row-oriented records, as deserialized from a
// JSON request body. Cell values are normalized to their categorical string
// form; the column set is the union of all row keys, sorted for determinism.
func FromRows(rows []map[string]any) *Dataset {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		for name := range row {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	cols := make(map[string][]string, len(names))
	for _, name := range names {
		values := make([]string, len(rows))
		for i, row := range rows {
			values[i] = NormalizeValue(row[name])
		}
		cols[name] = values
	}
	return &Dataset{names: names, cols: cols, rows: len(rows)}
}

// FromColumns builds a Dataset from already-normalized column vectors. All
// columns must have equal length; names fixes the column order.
func FromColumns(names []string, cols map[string][]string) *Dataset {
	rows := 0
	if len(names) > 0 {
		rows = len(cols[names[0]])
	}
	copied := make(map[string][]string, len(names))
	ordered := make([]string, len(names))
	copy(ordered, names)
	for _, name := range names {
		values := make([]string, len(cols[name]))
		copy(values, cols[name])
		copied[name] = values
	}
	return &Dataset{names: ordered, cols: copied, rows: rows}
}

// NormalizeValue converts a heterogeneous cell value into its categorical
// string form. Numbers are rendered without a trailing ".0" so that JSON
// float decoding does not split one category into two.
func NormalizeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return Missing
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if math.IsNaN(val) {
			return Missing
		}
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'g', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return ""
	}
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return d.rows
}

// Names returns the ordered column names.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Has reports whether the named column exists.
func (d *Dataset) Has(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the values of the named column, or nil if absent.
func (d *Dataset) Column(name string) []string {
	return d.cols[name]
}

// Select derives a working copy restricted to the given columns, in the
// given order. Unknown names are skipped; callers validate beforehand.
func (d *Dataset) Select(names []string) *Dataset {
	cols := make(map[string][]string, len(names))
	var kept []string
	for _, name := range names {
		src, ok := d.cols[name]
		if !ok {
			continue
		}
		values := make([]string, len(src))
		copy(values, src)
		cols[name] = values
		kept = append(kept, name)
	}
	return &Dataset{names: kept, cols: cols, rows: d.rows}
}

// UniqueCount returns the number of distinct values in the named column.
func (d *Dataset) UniqueCount(name string) int {
	seen := make(map[string]bool)
	for _, v := range d.cols[name] {
		seen[v] = true
	}
	return len(seen)
}
