package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
)

func record(studentID, assignmentID, subjectCode, batch string, total int) models.MarkRecord {
	return models.MarkRecord{
		StudentID:    studentID,
		StudentName:  "Student " + studentID,
		EnrollNo:     "001CS" + batch[:4],
		Batch:        batch,
		Discipline:   "Computer Science",
		AssignmentID: assignmentID,
		SubjectCode:  subjectCode,
		SubjectName:  subjectCode + " name",
		Total:        &total,
	}
}

func TestPerformanceServiceReport(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 30),
	}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		record("student-1", "assign-1", "CS301", "2023-2027", 85),
		record("student-2", "assign-1", "CS301", "2023-2027", 45),
		record("student-3", "assign-1", "CS301", "2023-2027", 20),
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.Report(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	assert.Equal(t, 3, report.TotalStudents)
	assert.Equal(t, 2, report.PassedStudents)
	assert.Equal(t, 1, report.DistinctionStudents)
	assert.Equal(t, 50.0, report.AverageMarks)

	require.Len(t, report.SubjectWise, 1)
	stat := report.SubjectWise[0]
	assert.Equal(t, "CS301", stat.Code)
	assert.Equal(t, 85, stat.Highest)
	assert.Equal(t, 20, stat.Lowest)
	assert.InDelta(t, 200.0/3.0, stat.PassPercentage, 1e-9)

	require.Len(t, report.MarkDistribution, 5)
	assert.Equal(t, 1, report.MarkDistribution[0].Count)
	assert.Equal(t, 0, report.MarkDistribution[1].Count)
	assert.Equal(t, 1, report.MarkDistribution[2].Count)
	assert.Equal(t, 0, report.MarkDistribution[3].Count)
	assert.Equal(t, 1, report.MarkDistribution[4].Count)
}

func TestPerformanceServiceReportBoundaryBuckets(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 30),
	}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		record("student-1", "assign-1", "CS301", "2023-2027", 0),
		record("student-2", "assign-1", "CS301", "2023-2027", 20),
		record("student-3", "assign-1", "CS301", "2023-2027", 21),
		record("student-4", "assign-1", "CS301", "2023-2027", 40),
		record("student-5", "assign-1", "CS301", "2023-2027", 100),
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.Report(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	assert.Equal(t, 2, report.MarkDistribution[0].Count)
	assert.Equal(t, 2, report.MarkDistribution[1].Count)
	assert.Equal(t, 1, report.MarkDistribution[4].Count)

	// Total 40 passes, 20 and below does not.
	assert.Equal(t, 2, report.PassedStudents)
}

func TestPerformanceServiceReportBatchComparison(t *testing.T) {
	assignA := testAssignment("assign-1", "teacher-1", 1, 30)
	assignB := testAssignment("assign-2", "teacher-1", 1, 30)
	assignB.Batch = "2022-2026"
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{assignA, assignB}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		record("student-1", "assign-1", "CS301", "2023-2027", 60),
		record("student-2", "assign-1", "CS301", "2023-2027", 65),
		record("student-3", "assign-2", "CS301", "2022-2026", 50),
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.Report(context.Background(), "teacher-1", "assign-1")
	require.NoError(t, err)
	assert.Equal(t, "assign-1", report.AssignmentID)
	require.Len(t, report.BatchComparison, 2)
	assert.Equal(t, "2022-2026", report.BatchComparison[0].Batch)
	assert.Equal(t, 50.0, report.BatchComparison[0].Average)
	assert.Equal(t, "CS301", report.BatchComparison[0].Subject)
	assert.Equal(t, "2023-2027", report.BatchComparison[1].Batch)
	assert.Equal(t, 62.5, report.BatchComparison[1].Average)
}

func TestPerformanceServiceReportBatchComparisonCollapsesSubjects(t *testing.T) {
	assignA := testAssignment("assign-1", "teacher-1", 1, 30)
	assignB := testAssignment("assign-2", "teacher-1", 1, 30)
	assignB.SubjectID = "subject-2"
	assignB.SubjectCode = "MA201"
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{assignA, assignB}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		record("student-1", "assign-1", "CS301", "2023-2027", 60),
		record("student-2", "assign-2", "MA201", "2023-2027", 40),
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.Report(context.Background(), "teacher-1", "")
	require.NoError(t, err)

	// One row per batch even when the scope spans subjects.
	require.Len(t, report.BatchComparison, 1)
	assert.Equal(t, "2023-2027", report.BatchComparison[0].Batch)
	assert.Equal(t, "Overall", report.BatchComparison[0].Subject)
	assert.Equal(t, 50.0, report.BatchComparison[0].Average)
}

func TestPerformanceServiceReportEmptyScope(t *testing.T) {
	assignments := &stubAssignmentReader{}
	svc := NewPerformanceService(assignments, &stubMarkReader{}, nil, nil, 0, nil)

	report, err := svc.Report(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalStudents)
	assert.Equal(t, 0.0, report.AverageMarks)
	assert.Len(t, report.MarkDistribution, 5)
	assert.Empty(t, report.SubjectWise)
}

func TestPerformanceServiceLowPerformers(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 30),
	}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		record("student-1", "assign-1", "CS301", "2023-2027", 25),
		record("student-2", "assign-1", "CS301", "2023-2027", 39),
		record("student-3", "assign-1", "CS301", "2023-2027", 40),
		// Duplicate (student, subject) pair must be reported once.
		record("student-1", "assign-1", "CS301", "2023-2027", 25),
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.LowPerformers(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	require.Len(t, report.LowPerformers, 2)

	worst := report.LowPerformers[0]
	assert.Equal(t, "student-1", worst.ID)
	assert.Equal(t, 25, worst.Total)
	assert.Equal(t, 15, worst.ImprovementNeeded)
	assert.True(t, worst.NeedsAttention)

	second := report.LowPerformers[1]
	assert.Equal(t, 39, second.Total)
	assert.Equal(t, 1, second.ImprovementNeeded)
	assert.False(t, second.NeedsAttention)

	assert.Equal(t, 2, report.LowPerformerCount)
	assert.InDelta(t, 32.25, report.AveragePerformance, 1e-9)
	assert.Equal(t, []string{"CS301"}, report.Subjects)
	assert.Equal(t, "all", report.FilteredBy)
}

func TestPerformanceServiceLowPerformersMissingTotalIsZero(t *testing.T) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 30),
	}}
	marks := &stubMarkReader{records: []models.MarkRecord{
		{StudentID: "student-1", StudentName: "Student", EnrollNo: "001CS2023", Batch: "2023-2027",
			Discipline: "Computer Science", AssignmentID: "assign-1", SubjectCode: "CS301", SubjectName: "OS"},
	}}
	svc := NewPerformanceService(assignments, marks, nil, nil, 0, nil)

	report, err := svc.LowPerformers(context.Background(), "teacher-1", "")
	require.NoError(t, err)
	require.Len(t, report.LowPerformers, 1)
	assert.Equal(t, 0, report.LowPerformers[0].Total)
	assert.Equal(t, 40, report.LowPerformers[0].ImprovementNeeded)
}
