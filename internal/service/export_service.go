package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
	"github.com/OAtulA/student-epr/pkg/export"
)

type lowPerformerSource interface {
	LowPerformers(ctx context.Context, teacherID, assignmentID string) (*models.LowPerformerReport, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportService renders low-performer reports as CSV or PDF downloads.
type ExportService struct {
	reports lowPerformerSource
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
}

// NewExportService constructs ExportService.
func NewExportService(reports lowPerformerSource, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{reports: reports, csv: csv, pdf: pdf, logger: logger}
}

// LowPerformers renders the teacher's low-performer report in the requested
// format, csv or pdf.
func (s *ExportService) LowPerformers(ctx context.Context, teacherID, assignmentID, format string) (*ExportFile, error) {
	report, err := s.reports.LowPerformers(ctx, teacherID, assignmentID)
	if err != nil {
		return nil, err
	}
	table := lowPerformerTable(report)

	switch format {
	case "csv":
		content, err := s.csv.Render(table)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{FileName: "low-performers.csv", ContentType: "text/csv", Content: content}, nil
	case "pdf":
		content, err := s.pdf.Render(table, "Low Performer Report")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{FileName: "low-performers.pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func lowPerformerTable(report *models.LowPerformerReport) export.ReportTable {
	columns := []string{"Enroll No", "Name", "Batch", "Subject", "Mid Sem", "End Sem", "Total", "Improvement Needed", "Needs Attention"}
	rows := make([]map[string]string, 0, len(report.LowPerformers))
	for _, performer := range report.LowPerformers {
		attention := "no"
		if performer.NeedsAttention {
			attention = "yes"
		}
		rows = append(rows, map[string]string{
			"Enroll No":          performer.EnrollNo,
			"Name":               performer.Name,
			"Batch":              performer.Batch,
			"Subject":            performer.SubjectCode,
			"Mid Sem":            scoreCell(performer.MidSem),
			"End Sem":            scoreCell(performer.EndSem),
			"Total":              strconv.Itoa(performer.Total),
			"Improvement Needed": strconv.Itoa(performer.ImprovementNeeded),
			"Needs Attention":    attention,
		})
	}
	return export.ReportTable{Columns: columns, Rows: rows}
}

func scoreCell(score *int) string {
	if score == nil {
		return "-"
	}
	return strconv.Itoa(*score)
}
