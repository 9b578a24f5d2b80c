package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type assignmentRepo interface {
	ListAll(ctx context.Context) ([]models.AssignmentDetail, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error)
	ListByTeacherAndSubject(ctx context.Context, teacherID, subjectID string) ([]models.AssignmentDetail, error)
	FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error)
	CreateExclusive(ctx context.Context, assignment *models.Assignment) error
}

type teacherFinder interface {
	FindByID(ctx context.Context, id string) (*models.Teacher, error)
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.SubjectDetail, error)
}

// CreateAssignmentRequest allocates a teacher to a roll range of a batch for
// one subject.
type CreateAssignmentRequest struct {
	TeacherID string `json:"teacher_id" validate:"required"`
	SubjectID string `json:"subject_id" validate:"required"`
	Batch     string `json:"batch" validate:"required"`
	StartRoll int    `json:"start_roll" validate:"required,min=1"`
	EndRoll   int    `json:"end_roll" validate:"required,gtefield=StartRoll"`
}

// AssignmentService manages teacher-subject-batch allocations.
type AssignmentService struct {
	assignments assignmentRepo
	teachers    teacherFinder
	subjects    subjectFinder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssignmentService constructs AssignmentService.
func NewAssignmentService(assignments assignmentRepo, teachers teacherFinder, subjects subjectFinder, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{assignments: assignments, teachers: teachers, subjects: subjects, validator: validate, logger: logger}
}

// ListAll returns every assignment for the admin overview.
func (s *AssignmentService) ListAll(ctx context.Context) ([]models.AssignmentDetail, error) {
	assignments, err := s.assignments.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// ListByTeacher returns the authenticated teacher's assignments.
func (s *AssignmentService) ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error) {
	assignments, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}
	return assignments, nil
}

// Create allocates a roll range. The non-overlap invariant is held per
// (subject, batch) pair; an overlapping request fails with a range conflict.
// The batch on the allocation may differ from the subject's own batch so a
// catalog entry can be reused across cohorts.
func (s *AssignmentService) Create(ctx context.Context, req CreateAssignmentRequest) (*models.AssignmentDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	if !models.ValidBatch(req.Batch) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch must be in YYYY-YYYY format")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	assignment := &models.Assignment{
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		Batch:     req.Batch,
		StartRoll: req.StartRoll,
		EndRoll:   req.EndRoll,
	}
	if err := s.assignments.CreateExclusive(ctx, assignment); err != nil {
		var typed *appErrors.Error
		if ok := asAppError(err, &typed); ok && typed.Code == appErrors.ErrRangeConflict.Code {
			return nil, typed
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	detail, err := s.assignments.FindByID(ctx, assignment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	s.logger.Info("assignment created",
		zap.String("subject_id", assignment.SubjectID),
		zap.String("batch", assignment.Batch),
		zap.Int("start_roll", assignment.StartRoll),
		zap.Int("end_roll", assignment.EndRoll))
	return detail, nil
}
