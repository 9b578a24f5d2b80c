package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/OAtulA/student-epr/internal/models"
)

// StudentRepository reads student profiles.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns all students ordered by enrollment number.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, enroll_no, name, batch, discipline, user_id, created_at FROM students ORDER BY enroll_no ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListByBatchAndDiscipline returns the students of one cohort ordered by
// enrollment number.
func (r *StudentRepository) ListByBatchAndDiscipline(ctx context.Context, batch, discipline string) ([]models.Student, error) {
	const query = `SELECT id, enroll_no, name, batch, discipline, user_id, created_at
		FROM students WHERE batch = $1 AND discipline = $2 ORDER BY enroll_no ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, batch, discipline); err != nil {
		return nil, fmt.Errorf("list students by cohort: %w", err)
	}
	return students, nil
}

// FindByID returns the student with the given id.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	const query = `SELECT id, enroll_no, name, batch, discipline, user_id, created_at FROM students WHERE id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByUserID resolves the student profile of an authenticated user.
func (r *StudentRepository) FindByUserID(ctx context.Context, userID string) (*models.Student, error) {
	const query = `SELECT id, enroll_no, name, batch, discipline, user_id, created_at FROM students WHERE user_id = $1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		return nil, err
	}
	return &student, nil
}

// ExistsByEnrollNo reports whether a student with the enrollment number
// exists.
func (r *StudentRepository) ExistsByEnrollNo(ctx context.Context, enrollNo string) (bool, error) {
	const query = `SELECT 1 FROM students WHERE enroll_no = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, enrollNo); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check enroll no: %w", err)
	}
	return true, nil
}
