package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type stubAssignmentRepo struct {
	created     *models.Assignment
	conflictErr error
}

func (s *stubAssignmentRepo) ListAll(ctx context.Context) ([]models.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentRepo) ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentRepo) ListByTeacherAndSubject(ctx context.Context, teacherID, subjectID string) ([]models.AssignmentDetail, error) {
	return nil, nil
}

func (s *stubAssignmentRepo) FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error) {
	detail := testAssignment(id, "teacher-1", 1, 10)
	return &detail, nil
}

func (s *stubAssignmentRepo) CreateExclusive(ctx context.Context, assignment *models.Assignment) error {
	if s.conflictErr != nil {
		return s.conflictErr
	}
	assignment.ID = "assign-new"
	s.created = assignment
	return nil
}

type stubTeacherFinder struct{}

func (s *stubTeacherFinder) FindByID(ctx context.Context, id string) (*models.Teacher, error) {
	return &models.Teacher{ID: id, TeacherID: "T-101", Name: "Asha Verma"}, nil
}

type stubSubjectFinder struct{}

func (s *stubSubjectFinder) FindByID(ctx context.Context, id string) (*models.SubjectDetail, error) {
	return &models.SubjectDetail{
		Subject:        models.Subject{ID: id, Code: "CS301", Name: "Operating Systems", Semester: 5, Batch: "2023-2027"},
		DisciplineName: "Computer Science",
	}, nil
}

func TestAssignmentServiceCreate(t *testing.T) {
	repo := &stubAssignmentRepo{}
	svc := NewAssignmentService(repo, &stubTeacherFinder{}, &stubSubjectFinder{}, nil, nil)

	detail, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TeacherID: "teacher-1",
		SubjectID: "subject-1",
		Batch:     "2023-2027",
		StartRoll: 1,
		EndRoll:   30,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, 1, repo.created.StartRoll)
	assert.Equal(t, 30, repo.created.EndRoll)
	assert.NotNil(t, detail)
}

func TestAssignmentServiceCreateRejectsInvertedRange(t *testing.T) {
	svc := NewAssignmentService(&stubAssignmentRepo{}, &stubTeacherFinder{}, &stubSubjectFinder{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TeacherID: "teacher-1",
		SubjectID: "subject-1",
		Batch:     "2023-2027",
		StartRoll: 30,
		EndRoll:   10,
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
}

func TestAssignmentServiceCreateRejectsMalformedBatch(t *testing.T) {
	svc := NewAssignmentService(&stubAssignmentRepo{}, &stubTeacherFinder{}, &stubSubjectFinder{}, nil, nil)

	// A bare admission year is not a cohort label.
	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TeacherID: "teacher-1",
		SubjectID: "subject-1",
		Batch:     "2023",
		StartRoll: 1,
		EndRoll:   30,
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, typed.Code)
	assert.Contains(t, typed.Message, "YYYY-YYYY")
}

func TestAssignmentServiceCreateSingleRollRange(t *testing.T) {
	repo := &stubAssignmentRepo{}
	svc := NewAssignmentService(repo, &stubTeacherFinder{}, &stubSubjectFinder{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TeacherID: "teacher-1",
		SubjectID: "subject-1",
		Batch:     "2023-2027",
		StartRoll: 7,
		EndRoll:   7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, repo.created.StartRoll)
	assert.Equal(t, 7, repo.created.EndRoll)
}

func TestAssignmentServiceCreateSurfacesRangeConflict(t *testing.T) {
	repo := &stubAssignmentRepo{conflictErr: appErrors.ErrRangeConflict}
	svc := NewAssignmentService(repo, &stubTeacherFinder{}, &stubSubjectFinder{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateAssignmentRequest{
		TeacherID: "teacher-1",
		SubjectID: "subject-1",
		Batch:     "2023-2027",
		StartRoll: 5,
		EndRoll:   15,
	})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrRangeConflict.Code, typed.Code)
	assert.Equal(t, 400, typed.Status)
}

func TestAssignmentOverlaps(t *testing.T) {
	base := models.Assignment{StartRoll: 10, EndRoll: 20}
	cases := []struct {
		name  string
		other models.Assignment
		want  bool
	}{
		{"disjointBefore", models.Assignment{StartRoll: 1, EndRoll: 9}, false},
		{"disjointAfter", models.Assignment{StartRoll: 21, EndRoll: 30}, false},
		{"touchingStart", models.Assignment{StartRoll: 5, EndRoll: 10}, true},
		{"touchingEnd", models.Assignment{StartRoll: 20, EndRoll: 25}, true},
		{"contained", models.Assignment{StartRoll: 12, EndRoll: 18}, true},
		{"containing", models.Assignment{StartRoll: 1, EndRoll: 40}, true},
		{"identical", models.Assignment{StartRoll: 10, EndRoll: 20}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, base.Overlaps(tc.other))
			assert.Equal(t, tc.want, tc.other.Overlaps(base))
		})
	}
}
