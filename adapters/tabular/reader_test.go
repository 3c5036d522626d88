package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goassoc/domain/dataset"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadCSV(t *testing.T) {
	path := writeCSV(t, "school_decile,region\n5,North\n7,South\n5,North\n")
	ds, err := NewReader(path).Read()
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"school_decile", "region"}, ds.Names())
	assert.Equal(t, []string{"5", "7", "5"}, ds.Column("school_decile"))
	assert.Equal(t, []string{"North", "South", "North"}, ds.Column("region"))
}

func TestReadCSVShortRows(t *testing.T) {
	path := writeCSV(t, "a,b\nx\ny,z\n")
	ds, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{dataset.Missing, "z"}, ds.Column("b"))
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeCSV(t, "a,b\n")
	_, err := NewReader(path).Read()
	assert.Error(t, err)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.csv")).Read()
	assert.Error(t, err)
}

func TestBlankHeaderGetsPositionalName(t *testing.T) {
	path := writeCSV(t, "a,,c\n1,2,3\n")
	ds, err := NewReader(path).Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "column_2", "c"}, ds.Names())
}
