package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeValue(t *testing.T) {
	assert.Equal(t, "hello", NormalizeValue("hello"))
	assert.Equal(t, "true", NormalizeValue(true))
	assert.Equal(t, "3", NormalizeValue(3.0), "JSON floats render without trailing .0")
	assert.Equal(t, "3.5", NormalizeValue(3.5))
	assert.Equal(t, "7", NormalizeValue(7))
	assert.Equal(t, Missing, NormalizeValue(nil))
}

func TestFromRows(t *testing.T) {
	ds := FromRows([]map[string]any{
		{"a": "x", "b": 1.0},
		{"a": "y", "b": 2.0},
		{"a": "x"},
	})
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"a", "b"}, ds.Names())
	assert.Equal(t, []string{"x", "y", "x"}, ds.Column("a"))
	assert.Equal(t, []string{"1", "2", Missing}, ds.Column("b"))
	assert.Equal(t, 2, ds.UniqueCount("a"))
}

func TestSelectIsACopy(t *testing.T) {
	ds := FromRows([]map[string]any{{"a": "x", "b": "y"}})
	working := ds.Select([]string{"b"})
	require.Equal(t, []string{"b"}, working.Names())
	working.Column("b")[0] = "mutated"
	assert.Equal(t, "y", ds.Column("b")[0], "selection must not alias the source dataset")
}

func TestNormalizeSelection(t *testing.T) {
	got := NormalizeSelection([]string{" a ", "b", "a", "", "b"})
	assert.Equal(t, []string{"a", "b"}, got)
}

func TestValidateSelection(t *testing.T) {
	ds := FromRows([]map[string]any{{"a": "x", "b": "y"}})

	require.NoError(t, ValidateSelection(ds, []string{"a", "b"}))
	assert.Error(t, ValidateSelection(nil, []string{"a"}))
	assert.Error(t, ValidateSelection(ds, nil))
	assert.Error(t, ValidateSelection(ds, []string{"a", "missing"}))
	assert.Error(t, ValidateSelection(FromRows(nil), []string{"a"}))
}
