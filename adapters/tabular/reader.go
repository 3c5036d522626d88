package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"goassoc/domain/dataset"
)

// Reader loads a tabular file (xlsx or csv) into a Dataset. The first row
// is the header; every cell value is kept as its categorical string form.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a reader for the given file, picking the format from
// its extension.
func NewReader(filePath string) *Reader {
	fileType := "xlsx"
	if strings.ToLower(filepath.Ext(filePath)) == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Dataset.
func (r *Reader) Read() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}
	switch r.fileType {
	case "csv":
		return r.readCSV()
	default:
		return r.readExcel()
	}
}

func (r *Reader) readExcel() (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	log.Printf("[Tabular] Read %d rows from %s (sheet %s)", len(rows), r.filePath, sheet)
	return fromRecords(rows)
}

func (r *Reader) readCSV() (*dataset.Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[Tabular] Read %d rows from %s", len(rows), r.filePath)
	return fromRecords(rows)
}

// fromRecords converts header + data rows into a column-major Dataset.
// Short rows are padded with missing cells.
func fromRecords(rows [][]string) (*dataset.Dataset, error) {
	if len(rows) < 2 {
		return nil, fmt.Errorf("file must have a header row and at least one data row")
	}
	header := rows[0]
	names := make([]string, 0, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column_%d", i+1)
		}
		names = append(names, name)
	}

	cols := make(map[string][]string, len(names))
	for _, name := range names {
		cols[name] = make([]string, len(rows)-1)
	}
	for i, row := range rows[1:] {
		for j, name := range names {
			if j < len(row) {
				cols[name][i] = strings.TrimSpace(row[j])
			} else {
				cols[name][i] = dataset.Missing
			}
		}
	}
	return dataset.FromColumns(names, cols), nil
}
