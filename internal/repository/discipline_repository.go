package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/OAtulA/student-epr/internal/models"
)

// DisciplineRepository persists academic disciplines.
type DisciplineRepository struct {
	db *sqlx.DB
}

// NewDisciplineRepository constructs the repository.
func NewDisciplineRepository(db *sqlx.DB) *DisciplineRepository {
	return &DisciplineRepository{db: db}
}

// List returns all disciplines ordered by name.
func (r *DisciplineRepository) List(ctx context.Context) ([]models.Discipline, error) {
	const query = `SELECT id, name, created_at FROM disciplines ORDER BY name ASC`
	var disciplines []models.Discipline
	if err := r.db.SelectContext(ctx, &disciplines, query); err != nil {
		return nil, fmt.Errorf("list disciplines: %w", err)
	}
	return disciplines, nil
}

// FindByID returns the discipline with the given id.
func (r *DisciplineRepository) FindByID(ctx context.Context, id string) (*models.Discipline, error) {
	const query = `SELECT id, name, created_at FROM disciplines WHERE id = $1`
	var discipline models.Discipline
	if err := r.db.GetContext(ctx, &discipline, query, id); err != nil {
		return nil, err
	}
	return &discipline, nil
}

// ExistsByName reports whether a discipline with the name exists.
func (r *DisciplineRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	const query = `SELECT 1 FROM disciplines WHERE name = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check discipline name: %w", err)
	}
	return true, nil
}

// Create inserts a new discipline.
func (r *DisciplineRepository) Create(ctx context.Context, discipline *models.Discipline) error {
	if discipline.ID == "" {
		discipline.ID = uuid.NewString()
	}
	if discipline.CreatedAt.IsZero() {
		discipline.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO disciplines (id, name, created_at) VALUES (:id, :name, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, discipline); err != nil {
		return fmt.Errorf("create discipline: %w", err)
	}
	return nil
}
