package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
	"github.com/OAtulA/student-epr/pkg/export"
)

type stubLowPerformerSource struct {
	report models.LowPerformerReport
}

func (s *stubLowPerformerSource) LowPerformers(ctx context.Context, teacherID, assignmentID string) (*models.LowPerformerReport, error) {
	return &s.report, nil
}

func exportFixture() *ExportService {
	mid := 10
	source := &stubLowPerformerSource{report: models.LowPerformerReport{
		LowPerformers: []models.LowPerformer{
			{
				EnrollNo:          "004CS2023",
				Name:              "Ravi Kumar",
				Batch:             "2023-2027",
				SubjectCode:       "CS301",
				MidSem:            &mid,
				Total:             10,
				NeedsAttention:    true,
				ImprovementNeeded: 30,
			},
		},
	}}
	return NewExportService(source, export.NewCSVExporter(), export.NewPDFExporter(), nil)
}

func TestExportServiceLowPerformersCSV(t *testing.T) {
	svc := exportFixture()

	file, err := svc.LowPerformers(context.Background(), "teacher-1", "", "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "low-performers.csv", file.FileName)

	content := string(file.Content)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Enroll No")
	assert.Contains(t, lines[1], "004CS2023")
	assert.Contains(t, lines[1], "yes")
	// Missing end sem renders as a dash.
	assert.Contains(t, lines[1], "-")
}

func TestExportServiceLowPerformersPDF(t *testing.T) {
	svc := exportFixture()

	file, err := svc.LowPerformers(context.Background(), "teacher-1", "", "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.Content)
}

func TestExportServiceLowPerformersUnknownFormat(t *testing.T) {
	svc := exportFixture()

	_, err := svc.LowPerformers(context.Background(), "teacher-1", "", "xlsx")
	require.Error(t, err)
}
