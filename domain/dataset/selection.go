package dataset

import (
	"fmt"
	"strings"

	"goassoc/internal/errors"
)

// NormalizeSelection trims and deduplicates a column selection while
// preserving its order. Pair (A,B) and (B,A) style duplicates are a caller
// concern; this only removes repeated names.
func NormalizeSelection(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, name := range names {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
	}
	return out
}

// ValidateSelection checks the boundary contract for a submitted analysis:
// non-empty dataset, non-empty selection, every selected column present.
// Violations are fatal validation errors, never degraded.
func ValidateSelection(d *Dataset, selection []string) error {
	if d == nil || d.Len() == 0 {
		return errors.ValidationError("Input data is empty or not properly formatted.")
	}
	if len(selection) == 0 {
		return errors.ValidationError("Selected columns are missing or not in the correct format.")
	}
	for _, name := range selection {
		if !d.Has(name) {
			return errors.ValidationError(fmt.Sprintf("Selected column %q does not exist in the dataset.", name))
		}
	}
	return nil
}
