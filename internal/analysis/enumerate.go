package analysis

import "strings"

// GroupFunc assigns a column to a named group for multi-variable
// enumeration. Grouping is an assumption about the dataset's naming schema,
// so it is injected rather than hard-coded.
type GroupFunc func(column string) string

// PrefixGroup groups columns by the prefix before the first underscore.
// This is the default convention: "school_decile" and "school_region"
// belong to the "school" group.
func PrefixGroup(column string) string {
	if i := strings.Index(column, "_"); i >= 0 {
		return column[:i]
	}
	return column
}

// Pairs enumerates all C(n,2) unordered column pairs, each exactly once and
// in selection order. (A,B) and (B,A) are the same pair.
func Pairs(columns []string) [][2]string {
	var out [][2]string
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			out = append(out, [2]string{columns[i], columns[j]})
		}
	}
	return out
}

// MultiCombinations enumerates the multi-variable work list: columns are
// partitioned into groups by groupFn, and for every subset (size >= 2) of
// the distinct group keys the cross-product of the member columns is
// emitted, one combination per tuple. Tuples whose constituents span fewer
// than two distinct groups are discarded.
func MultiCombinations(columns []string, groupFn GroupFunc) [][]string {
	if groupFn == nil {
		groupFn = PrefixGroup
	}

	// Group keys keep first-appearance order so enumeration is stable.
	members := make(map[string][]string)
	var keys []string
	for _, col := range columns {
		key := groupFn(col)
		if _, ok := members[key]; !ok {
			keys = append(keys, key)
		}
		members[key] = append(members[key], col)
	}

	var out [][]string
	for _, subset := range subsets(keys, 2) {
		groups := make([][]string, len(subset))
		for i, key := range subset {
			groups[i] = members[key]
		}
		for _, tuple := range crossProduct(groups) {
			if distinctGroups(tuple, groupFn) < 2 {
				continue
			}
			out = append(out, tuple)
		}
	}
	return out
}

// subsets returns every subset of keys with at least minSize elements,
// preserving element order within each subset.
func subsets(keys []string, minSize int) [][]string {
	var out [][]string
	for size := minSize; size <= len(keys); size++ {
		out = append(out, combinations(keys, size)...)
	}
	return out
}

func combinations(keys []string, size int) [][]string {
	var out [][]string
	pick := make([]string, 0, size)
	var walk func(start int)
	walk = func(start int) {
		if len(pick) == size {
			out = append(out, append([]string(nil), pick...))
			return
		}
		for i := start; i <= len(keys)-(size-len(pick)); i++ {
			pick = append(pick, keys[i])
			walk(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	walk(0)
	return out
}

func crossProduct(groups [][]string) [][]string {
	var out [][]string
	tuple := make([]string, 0, len(groups))
	var walk func(depth int)
	walk = func(depth int) {
		if depth == len(groups) {
			out = append(out, append([]string(nil), tuple...))
			return
		}
		for _, col := range groups[depth] {
			tuple = append(tuple, col)
			walk(depth + 1)
			tuple = tuple[:len(tuple)-1]
		}
	}
	walk(0)
	return out
}

func distinctGroups(tuple []string, groupFn GroupFunc) int {
	seen := make(map[string]bool, len(tuple))
	for _, col := range tuple {
		seen[groupFn(col)] = true
	}
	return len(seen)
}
