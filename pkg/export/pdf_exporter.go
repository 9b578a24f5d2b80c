package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders report tables as printable documents. Landscape A4
// keeps the wide mark columns readable.
type PDFExporter struct{}

// NewPDFExporter constructs PDFExporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out the titled table with a generation date under the heading.
func (e *PDFExporter) Render(table ReportTable, title string) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("report table has no columns")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(12, 14, 12)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Helvetica", "B", 15)
		pdf.CellFormat(0, 9, title, "", 1, "C", false, 0, "")
	}
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, "Generated on "+time.Now().Format("02 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(len(table.Columns))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(228, 228, 228)
	for _, column := range table.Columns {
		pdf.CellFormat(colWidth, 8, column, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range table.Rows {
		for _, column := range table.Columns {
			pdf.CellFormat(colWidth, 7, row[column], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report pdf: %w", err)
	}
	return buf.Bytes(), nil
}
