package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ReportTable is a rendered report: ordered columns plus rows keyed by
// column name. Missing cells render empty.
type ReportTable struct {
	Columns []string
	Rows    []map[string]string
}

// CSVExporter renders report tables for spreadsheet download.
type CSVExporter struct{}

// NewCSVExporter constructs CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the table as CSV, columns first.
func (e *CSVExporter) Render(table ReportTable) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("report table has no columns")
	}
	records := make([][]string, 0, len(table.Rows)+1)
	records = append(records, table.Columns)
	for _, row := range table.Rows {
		cells := make([]string, len(table.Columns))
		for i, column := range table.Columns {
			cells[i] = row[column]
		}
		records = append(records, cells)
	}
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, fmt.Errorf("encode report csv: %w", err)
	}
	return buf.Bytes(), nil
}
