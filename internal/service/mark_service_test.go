package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type stubMarkRepo struct {
	stored     map[string]models.Mark
	bulkCalled bool
}

func (s *stubMarkRepo) key(mark *models.Mark) string {
	return mark.StudentID + "|" + mark.AssignmentID
}

func (s *stubMarkRepo) Upsert(ctx context.Context, mark *models.Mark) (*models.Mark, error) {
	if s.stored == nil {
		s.stored = make(map[string]models.Mark)
	}
	merged := *mark
	if existing, ok := s.stored[s.key(mark)]; ok {
		if merged.MidSem == nil {
			merged.MidSem = existing.MidSem
		}
		if merged.EndSem == nil {
			merged.EndSem = existing.EndSem
		}
		if merged.Internal == nil {
			merged.Internal = existing.Internal
		}
	}
	merged.Total = models.ComputeTotal(merged.MidSem, merged.EndSem, merged.Internal)
	s.stored[s.key(mark)] = merged
	return &merged, nil
}

func (s *stubMarkRepo) BulkUpsert(ctx context.Context, marks []*models.Mark) ([]models.Mark, error) {
	s.bulkCalled = true
	out := make([]models.Mark, 0, len(marks))
	for _, mark := range marks {
		stored, err := s.Upsert(ctx, mark)
		if err != nil {
			return nil, err
		}
		out = append(out, *stored)
	}
	return out, nil
}

func (s *stubMarkRepo) ListByAssignmentIDs(ctx context.Context, assignmentIDs []string) ([]models.MarkRecord, error) {
	return nil, nil
}

type stubStudentFinder struct {
	students map[string]models.Student
}

func (s *stubStudentFinder) FindByID(ctx context.Context, id string) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

func newMarkFixture() (*MarkService, *stubMarkRepo) {
	assignments := &stubAssignmentReader{assignments: []models.AssignmentDetail{
		testAssignment("assign-1", "teacher-1", 1, 10),
	}}
	students := &stubStudentFinder{students: map[string]models.Student{
		"student-1": testStudent("student-1", "005CS2023"),
		"student-2": testStudent("student-2", "011CS2023"),
	}}
	marks := &stubMarkRepo{}
	coverage := NewRosterService(nil, nil, nil, nil)
	return NewMarkService(marks, assignments, students, coverage, nil, nil, nil), marks
}

func TestMarkServiceUpsertMergesPartialScores(t *testing.T) {
	svc, repo := newMarkFixture()
	mid := 18

	first, err := svc.Upsert(context.Background(), "teacher-1", UpsertMarkRequest{
		AssignmentID: "assign-1",
		StudentID:    "student-1",
		MidSem:       &mid,
	})
	require.NoError(t, err)
	require.NotNil(t, first.Total)
	assert.Equal(t, 18, *first.Total)

	end := 40
	second, err := svc.Upsert(context.Background(), "teacher-1", UpsertMarkRequest{
		AssignmentID: "assign-1",
		StudentID:    "student-1",
		EndSem:       &end,
	})
	require.NoError(t, err)
	require.NotNil(t, second.MidSem)
	assert.Equal(t, 18, *second.MidSem)
	require.NotNil(t, second.Total)
	assert.Equal(t, 58, *second.Total)
	assert.Len(t, repo.stored, 1)
}

func TestMarkServiceUpsertRejectsUncoveredStudent(t *testing.T) {
	svc, _ := newMarkFixture()
	mid := 18

	_, err := svc.Upsert(context.Background(), "teacher-1", UpsertMarkRequest{
		AssignmentID: "assign-1",
		StudentID:    "student-2",
		MidSem:       &mid,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the assigned roll range")
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestMarkServiceUpsertRejectsForeignAssignment(t *testing.T) {
	svc, _ := newMarkFixture()
	mid := 18

	_, err := svc.Upsert(context.Background(), "teacher-2", UpsertMarkRequest{
		AssignmentID: "assign-1",
		StudentID:    "student-1",
		MidSem:       &mid,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another teacher")
	assert.Equal(t, 401, appErrors.FromError(err).Status)
}

func TestMarkServiceUpsertValidatesScoreBounds(t *testing.T) {
	svc, _ := newMarkFixture()
	tooHigh := 120

	_, err := svc.Upsert(context.Background(), "teacher-1", UpsertMarkRequest{
		AssignmentID: "assign-1",
		StudentID:    "student-1",
		EndSem:       &tooHigh,
	})
	require.Error(t, err)
}

func TestMarkServiceBulkUpsertPartialOnError(t *testing.T) {
	svc, repo := newMarkFixture()
	mid := 15

	result, err := svc.BulkUpsert(context.Background(), "teacher-1", BulkMarksRequest{
		AssignmentID: "assign-1",
		Items: []BulkMarkItem{
			{StudentID: "student-1", MidSem: &mid},
			{StudentID: "student-2", MidSem: &mid},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "student-2", result.Failures[0].StudentID)
	assert.False(t, repo.bulkCalled)
}

func TestMarkServiceBulkUpsertAtomicFailsWhole(t *testing.T) {
	svc, repo := newMarkFixture()
	mid := 15

	_, err := svc.BulkUpsert(context.Background(), "teacher-1", BulkMarksRequest{
		AssignmentID: "assign-1",
		Mode:         "atomic",
		Items: []BulkMarkItem{
			{StudentID: "student-1", MidSem: &mid},
			{StudentID: "student-2", MidSem: &mid},
		},
	})
	require.Error(t, err)
	assert.Empty(t, repo.stored)
}

func TestMarkServiceBulkUpsertAtomicSuccess(t *testing.T) {
	svc, repo := newMarkFixture()
	mid := 15

	result, err := svc.BulkUpsert(context.Background(), "teacher-1", BulkMarksRequest{
		AssignmentID: "assign-1",
		Mode:         "atomic",
		Items: []BulkMarkItem{
			{StudentID: "student-1", MidSem: &mid},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
	assert.True(t, repo.bulkCalled)
}
