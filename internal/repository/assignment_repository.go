package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/OAtulA/student-epr/internal/models"
	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

// AssignmentRepository persists teacher-subject-batch roll-range assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

const assignmentDetailColumns = `
SELECT ts.id, ts.teacher_id, ts.subject_id, ts.batch, ts.start_roll, ts.end_roll, ts.created_at,
       t.name AS teacher_name, t.teacher_id AS teacher_code,
       s.code AS subject_code, s.name AS subject_name, s.semester,
       d.name AS discipline_name
FROM teacher_subjects ts
JOIN teachers t ON t.id = ts.teacher_id
JOIN subjects s ON s.id = ts.subject_id
JOIN disciplines d ON d.id = s.discipline_id`

// ListAll returns every assignment for the admin overview, newest batches
// first.
func (r *AssignmentRepository) ListAll(ctx context.Context) ([]models.AssignmentDetail, error) {
	query := assignmentDetailColumns + `
ORDER BY ts.batch DESC, s.code ASC`
	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// ListByTeacher returns assignments owned by the teacher.
func (r *AssignmentRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.AssignmentDetail, error) {
	query := assignmentDetailColumns + `
WHERE ts.teacher_id = $1
ORDER BY ts.batch DESC, s.code ASC`
	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}

// ListByTeacherAndSubject returns the teacher's assignments for one subject,
// used for batch comparison.
func (r *AssignmentRepository) ListByTeacherAndSubject(ctx context.Context, teacherID, subjectID string) ([]models.AssignmentDetail, error) {
	query := assignmentDetailColumns + `
WHERE ts.teacher_id = $1 AND ts.subject_id = $2
ORDER BY ts.batch DESC`
	var assignments []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &assignments, query, teacherID, subjectID); err != nil {
		return nil, fmt.Errorf("list subject assignments: %w", err)
	}
	return assignments, nil
}

// FindByID returns one assignment with descriptive fields.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.AssignmentDetail, error) {
	query := assignmentDetailColumns + `
WHERE ts.id = $1`
	var assignment models.AssignmentDetail
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// CreateExclusive inserts an assignment while holding the non-overlap
// invariant for its (subject, batch) pair. The existing rows are locked and
// re-checked inside a serializable transaction so concurrent creates cannot
// both pass the check.
func (r *AssignmentRepository) CreateExclusive(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin assignment tx: %w", err)
	}

	const lockQuery = `SELECT id, teacher_id, subject_id, batch, start_roll, end_roll, created_at
		FROM teacher_subjects
		WHERE subject_id = $1 AND batch = $2
		FOR UPDATE`
	var existing []models.Assignment
	if err := tx.SelectContext(ctx, &existing, lockQuery, assignment.SubjectID, assignment.Batch); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("lock assignments: %w", err)
	}

	for _, other := range existing {
		if assignment.Overlaps(other) {
			tx.Rollback() //nolint:errcheck
			return appErrors.ErrRangeConflict
		}
	}

	const insertQuery = `INSERT INTO teacher_subjects (id, teacher_id, subject_id, batch, start_roll, end_roll, created_at)
		VALUES (:id, :teacher_id, :subject_id, :batch, :start_roll, :end_roll, :created_at)`
	if _, err := tx.NamedExecContext(ctx, insertQuery, assignment); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assignment: %w", err)
	}
	return nil
}
