package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type markRepo interface {
	Upsert(ctx context.Context, mark *models.Mark) (*models.Mark, error)
	BulkUpsert(ctx context.Context, marks []*models.Mark) ([]models.Mark, error)
	ListByAssignmentIDs(ctx context.Context, assignmentIDs []string) ([]models.MarkRecord, error)
}

type studentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

type coverageChecker interface {
	Covers(assignment *models.AssignmentDetail, student *models.Student) bool
}

type cacheInvalidator interface {
	InvalidateTeacher(ctx context.Context, teacherID string)
}

// UpsertMarkRequest enters or merges one student's scores. Omitted score
// fields keep their stored value.
type UpsertMarkRequest struct {
	AssignmentID string `json:"assignment_id" validate:"required"`
	StudentID    string `json:"student_id" validate:"required"`
	MidSem       *int   `json:"mid_sem" validate:"omitempty,min=0,max=50"`
	EndSem       *int   `json:"end_sem" validate:"omitempty,min=0,max=100"`
	Internal     *int   `json:"internal" validate:"omitempty,min=0,max=50"`
}

// BulkMarkItem is one entry of a bulk upload.
type BulkMarkItem struct {
	StudentID string `json:"student_id" validate:"required"`
	MidSem    *int   `json:"mid_sem" validate:"omitempty,min=0,max=50"`
	EndSem    *int   `json:"end_sem" validate:"omitempty,min=0,max=100"`
	Internal  *int   `json:"internal" validate:"omitempty,min=0,max=50"`
}

// BulkMarksRequest uploads many entries for one assignment, atomically or
// tolerating per-item failures.
type BulkMarksRequest struct {
	AssignmentID string         `json:"assignment_id" validate:"required"`
	Mode         string         `json:"mode" validate:"omitempty,oneof=atomic partialOnError"`
	Items        []BulkMarkItem `json:"items" validate:"required,min=1,dive"`
}

// BulkMarksResult summarises a bulk upload.
type BulkMarksResult struct {
	SuccessCount int               `json:"success_count"`
	Failures     []BulkMarkFailure `json:"failures,omitempty"`
}

// BulkMarkFailure captures one rejected entry.
type BulkMarkFailure struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// MarkService handles score entry against assignment coverage.
type MarkService struct {
	marks       markRepo
	assignments rosterAssignmentReader
	students    studentFinder
	coverage    coverageChecker
	cache       cacheInvalidator
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewMarkService constructs MarkService.
func NewMarkService(marks markRepo, assignments rosterAssignmentReader, students studentFinder, coverage coverageChecker, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{
		marks:       marks,
		assignments: assignments,
		students:    students,
		coverage:    coverage,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// Upsert enters one student's scores. The assignment must belong to the
// requesting teacher and its roll range must cover the student.
func (s *MarkService) Upsert(ctx context.Context, teacherID string, req UpsertMarkRequest) (*models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid mark payload")
	}
	assignment, err := s.ownedAssignment(ctx, teacherID, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if err := s.checkCovered(ctx, assignment, req.StudentID); err != nil {
		return nil, err
	}
	mark, err := s.marks.Upsert(ctx, &models.Mark{
		StudentID:    req.StudentID,
		AssignmentID: req.AssignmentID,
		MidSem:       req.MidSem,
		EndSem:       req.EndSem,
		Internal:     req.Internal,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store mark")
	}
	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, teacherID)
	}
	return mark, nil
}

// BulkUpsert uploads many entries for one assignment. Atomic mode applies
// all entries in one transaction; partialOnError (the default) applies each
// valid entry and reports per-item failures.
func (s *MarkService) BulkUpsert(ctx context.Context, teacherID string, req BulkMarksRequest) (*BulkMarksResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk payload")
	}
	assignment, err := s.ownedAssignment(ctx, teacherID, req.AssignmentID)
	if err != nil {
		return nil, err
	}

	atomic := req.Mode == "atomic"
	result := &BulkMarksResult{}
	var pending []*models.Mark
	for _, item := range req.Items {
		if err := s.checkCovered(ctx, assignment, item.StudentID); err != nil {
			if atomic {
				return nil, err
			}
			result.Failures = append(result.Failures, BulkMarkFailure{StudentID: item.StudentID, Reason: err.Error()})
			continue
		}
		mark := &models.Mark{
			StudentID:    item.StudentID,
			AssignmentID: req.AssignmentID,
			MidSem:       item.MidSem,
			EndSem:       item.EndSem,
			Internal:     item.Internal,
		}
		if atomic {
			pending = append(pending, mark)
			continue
		}
		if _, err := s.marks.Upsert(ctx, mark); err != nil {
			result.Failures = append(result.Failures, BulkMarkFailure{StudentID: item.StudentID, Reason: "failed to store mark"})
			continue
		}
		result.SuccessCount++
	}
	if atomic {
		stored, err := s.marks.BulkUpsert(ctx, pending)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store marks")
		}
		result.SuccessCount = len(stored)
	}
	if s.cache != nil {
		s.cache.InvalidateTeacher(ctx, teacherID)
	}
	s.logger.Info("marks uploaded",
		zap.String("assignment_id", req.AssignmentID),
		zap.Int("success", result.SuccessCount),
		zap.Int("failed", len(result.Failures)))
	return result, nil
}

// ListByAssignment returns the mark rows of one assignment, ordered by
// enrollment number.
func (s *MarkService) ListByAssignment(ctx context.Context, teacherID, assignmentID string) ([]models.MarkRecord, error) {
	if _, err := s.ownedAssignment(ctx, teacherID, assignmentID); err != nil {
		return nil, err
	}
	records, err := s.marks.ListByAssignmentIDs(ctx, []string{assignmentID})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list marks")
	}
	return records, nil
}

func (s *MarkService) ownedAssignment(ctx context.Context, teacherID, assignmentID string) (*models.AssignmentDetail, error) {
	assignment, err := s.assignments.FindByID(ctx, assignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if assignment.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "assignment belongs to another teacher")
	}
	return assignment, nil
}

func (s *MarkService) checkCovered(ctx context.Context, assignment *models.AssignmentDetail, studentID string) error {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", studentID))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if !s.coverage.Covers(assignment, student) {
		return appErrors.Clone(appErrors.ErrUnauthorized, fmt.Sprintf("student %s is outside the assigned roll range", student.EnrollNo))
	}
	return nil
}
