package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type subjectRepo interface {
	List(ctx context.Context) ([]models.SubjectDetail, error)
	ListByDiscipline(ctx context.Context, disciplineName string) ([]models.SubjectDetail, error)
	FindByID(ctx context.Context, id string) (*models.SubjectDetail, error)
	ExistsByScope(ctx context.Context, code, disciplineID string, semester int, batch string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
}

type disciplineFinder interface {
	FindByID(ctx context.Context, id string) (*models.Discipline, error)
}

// CreateSubjectRequest registers a subject in a discipline scope.
type CreateSubjectRequest struct {
	Code         string `json:"code" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Semester     int    `json:"semester" validate:"required,min=1,max=8"`
	DisciplineID string `json:"discipline_id" validate:"required"`
	Batch        string `json:"batch" validate:"required"`
}

// SubjectService manages the subject catalog.
type SubjectService struct {
	subjects    subjectRepo
	disciplines disciplineFinder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewSubjectService constructs SubjectService.
func NewSubjectService(subjects subjectRepo, disciplines disciplineFinder, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{subjects: subjects, disciplines: disciplines, validator: validate, logger: logger}
}

// List returns the full subject catalog for admins.
func (s *SubjectService) List(ctx context.Context) ([]models.SubjectDetail, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// ListByDiscipline returns the subjects a student's discipline offers.
func (s *SubjectService) ListByDiscipline(ctx context.Context, disciplineName string) ([]models.SubjectDetail, error) {
	subjects, err := s.subjects.ListByDiscipline(ctx, disciplineName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Create registers a subject. The code must be unique within its
// discipline+semester+batch scope; the same code may repeat across scopes.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload")
	}
	if !models.ValidBatch(req.Batch) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "batch must be in YYYY-YYYY format")
	}
	if _, err := s.disciplines.FindByID(ctx, req.DisciplineID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "discipline not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load discipline")
	}
	exists, err := s.subjects.ExistsByScope(ctx, req.Code, req.DisciplineID, req.Semester, req.Batch)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject scope")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject already exists for this scope")
	}
	subject := &models.Subject{
		Code:         req.Code,
		Name:         req.Name,
		Semester:     req.Semester,
		DisciplineID: req.DisciplineID,
		Batch:        req.Batch,
	}
	if err := s.subjects.Create(ctx, subject); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	s.logger.Info("subject created", zap.String("code", subject.Code), zap.String("batch", subject.Batch))
	return subject, nil
}
