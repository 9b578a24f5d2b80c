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

// SubjectRepository persists subjects.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository constructs the repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// List returns all subjects with discipline names, ordered for the admin
// listing (discipline, semester, code).
func (r *SubjectRepository) List(ctx context.Context) ([]models.SubjectDetail, error) {
	const query = `
SELECT s.id, s.code, s.name, s.semester, s.discipline_id, s.batch, s.created_at,
       d.name AS discipline_name
FROM subjects s
JOIN disciplines d ON d.id = s.discipline_id
ORDER BY d.name ASC, s.semester ASC, s.code ASC`
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListByDiscipline returns the subjects of a discipline ordered by semester
// then code, as shown to students.
func (r *SubjectRepository) ListByDiscipline(ctx context.Context, disciplineName string) ([]models.SubjectDetail, error) {
	const query = `
SELECT s.id, s.code, s.name, s.semester, s.discipline_id, s.batch, s.created_at,
       d.name AS discipline_name
FROM subjects s
JOIN disciplines d ON d.id = s.discipline_id
WHERE d.name = $1
ORDER BY s.semester ASC, s.code ASC`
	var subjects []models.SubjectDetail
	if err := r.db.SelectContext(ctx, &subjects, query, disciplineName); err != nil {
		return nil, fmt.Errorf("list subjects by discipline: %w", err)
	}
	return subjects, nil
}

// FindByID returns the subject with its discipline name.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.SubjectDetail, error) {
	const query = `
SELECT s.id, s.code, s.name, s.semester, s.discipline_id, s.batch, s.created_at,
       d.name AS discipline_name
FROM subjects s
JOIN disciplines d ON d.id = s.discipline_id
WHERE s.id = $1`
	var subject models.SubjectDetail
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

// ExistsByScope reports whether a subject with the code exists for the
// discipline+semester+batch scope.
func (r *SubjectRepository) ExistsByScope(ctx context.Context, code, disciplineID string, semester int, batch string) (bool, error) {
	const query = `SELECT 1 FROM subjects WHERE code = $1 AND discipline_id = $2 AND semester = $3 AND batch = $4 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, code, disciplineID, semester, batch); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check subject scope: %w", err)
	}
	return true, nil
}

// Create inserts a new subject.
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	if subject.CreatedAt.IsZero() {
		subject.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO subjects (id, code, name, semester, discipline_id, batch, created_at)
		VALUES (:id, :code, :name, :semester, :discipline_id, :batch, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}
	return nil
}
