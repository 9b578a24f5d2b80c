package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

type disciplineRepo interface {
	List(ctx context.Context) ([]models.Discipline, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, discipline *models.Discipline) error
}

// CreateDisciplineRequest registers a new academic program.
type CreateDisciplineRequest struct {
	Name string `json:"name" validate:"required"`
}

// DisciplineService manages academic programs.
type DisciplineService struct {
	disciplines disciplineRepo
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewDisciplineService constructs DisciplineService.
func NewDisciplineService(disciplines disciplineRepo, validate *validator.Validate, logger *zap.Logger) *DisciplineService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DisciplineService{disciplines: disciplines, validator: validate, logger: logger}
}

// List returns all disciplines.
func (s *DisciplineService) List(ctx context.Context) ([]models.Discipline, error) {
	disciplines, err := s.disciplines.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list disciplines")
	}
	return disciplines, nil
}

// Create registers a discipline with a unique name.
func (s *DisciplineService) Create(ctx context.Context, req CreateDisciplineRequest) (*models.Discipline, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid discipline payload")
	}
	exists, err := s.disciplines.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check discipline name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "discipline already exists")
	}
	discipline := &models.Discipline{Name: req.Name}
	if err := s.disciplines.Create(ctx, discipline); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create discipline")
	}
	s.logger.Info("discipline created", zap.String("name", discipline.Name))
	return discipline, nil
}
