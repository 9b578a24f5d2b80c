package service

import (
	"context"
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type studentProfileRepo interface {
	FindByUserID(ctx context.Context, userID string) (*models.Student, error)
}

type studentResultReader interface {
	ListByStudent(ctx context.Context, studentID string) ([]models.StudentResult, error)
}

type disciplineSubjectLister interface {
	ListByDiscipline(ctx context.Context, disciplineName string) ([]models.SubjectDetail, error)
}

// StudentSubjects is the curriculum view for a student, centered on the
// batch's running semester.
type StudentSubjects struct {
	Subjects        []models.SubjectDetail `json:"subjects"`
	CurrentSemester int                    `json:"current_semester"`
}

// StudentResults is the marks view for a student.
type StudentResults struct {
	Results         []models.StudentResult `json:"results"`
	CurrentSemester int                    `json:"current_semester"`
}

// StudentService serves the student-facing curriculum and results views.
type StudentService struct {
	students studentProfileRepo
	subjects disciplineSubjectLister
	marks    studentResultReader
	logger   *zap.Logger
	now      func() time.Time
}

// NewStudentService constructs StudentService.
func NewStudentService(students studentProfileRepo, subjects disciplineSubjectLister, marks studentResultReader, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{students: students, subjects: subjects, marks: marks, logger: logger, now: time.Now}
}

// Profile resolves the student record of an authenticated user.
func (s *StudentService) Profile(ctx context.Context, userID string) (*models.Student, error) {
	student, err := s.students.FindByUserID(ctx, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student profile not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// Subjects returns the student's discipline curriculum with the batch's
// running semester.
func (s *StudentService) Subjects(ctx context.Context, student *models.Student) (*StudentSubjects, error) {
	subjects, err := s.subjects.ListByDiscipline(ctx, student.Discipline)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return &StudentSubjects{
		Subjects:        subjects,
		CurrentSemester: CurrentSemester(student.Batch, s.now()),
	}, nil
}

// Results returns the student's marks ordered by semester then subject code.
func (s *StudentService) Results(ctx context.Context, student *models.Student) (*StudentResults, error) {
	results, err := s.marks.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list results")
	}
	return &StudentResults{
		Results:         results,
		CurrentSemester: CurrentSemester(student.Batch, s.now()),
	}, nil
}
