package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/OAtulA/student-epr/internal/models"
)

// MarkRepository persists mark entries keyed by (student, assignment).
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository constructs the repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// Fields omitted from an upsert keep their stored value; total is recomputed
// from the merged sub-scores in the same statement so concurrent upserts for
// one key serialize at the row.
const markUpsertQuery = `INSERT INTO marks (id, student_id, assignment_id, mid_sem, end_sem, internal, total, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (student_id, assignment_id) DO UPDATE SET
    mid_sem  = COALESCE(EXCLUDED.mid_sem, marks.mid_sem),
    end_sem  = COALESCE(EXCLUDED.end_sem, marks.end_sem),
    internal = COALESCE(EXCLUDED.internal, marks.internal),
    total    = CASE WHEN COALESCE(EXCLUDED.mid_sem, marks.mid_sem) IS NULL
                     AND COALESCE(EXCLUDED.end_sem, marks.end_sem) IS NULL
                     AND COALESCE(EXCLUDED.internal, marks.internal) IS NULL
               THEN NULL
               ELSE COALESCE(EXCLUDED.mid_sem, marks.mid_sem, 0)
                  + COALESCE(EXCLUDED.end_sem, marks.end_sem, 0)
                  + COALESCE(EXCLUDED.internal, marks.internal, 0)
               END,
    updated_at = EXCLUDED.updated_at
RETURNING id, student_id, assignment_id, mid_sem, end_sem, internal, total, created_at, updated_at`

// Upsert inserts or merges a mark entry and returns the stored row.
func (r *MarkRepository) Upsert(ctx context.Context, mark *models.Mark) (*models.Mark, error) {
	prepareMark(mark)
	var stored models.Mark
	if err := r.db.QueryRowxContext(ctx, markUpsertQuery,
		mark.ID, mark.StudentID, mark.AssignmentID,
		mark.MidSem, mark.EndSem, mark.Internal, mark.Total,
		mark.CreatedAt, mark.UpdatedAt,
	).StructScan(&stored); err != nil {
		return nil, fmt.Errorf("upsert mark: %w", err)
	}
	return &stored, nil
}

// BulkUpsert merges multiple marks in one transaction; either all entries
// apply or none do.
func (r *MarkRepository) BulkUpsert(ctx context.Context, marks []*models.Mark) ([]models.Mark, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin marks tx: %w", err)
	}
	stored := make([]models.Mark, 0, len(marks))
	for _, mark := range marks {
		prepareMark(mark)
		var row models.Mark
		if err := tx.QueryRowxContext(ctx, markUpsertQuery,
			mark.ID, mark.StudentID, mark.AssignmentID,
			mark.MidSem, mark.EndSem, mark.Internal, mark.Total,
			mark.CreatedAt, mark.UpdatedAt,
		).StructScan(&row); err != nil {
			tx.Rollback() //nolint:errcheck
			return nil, fmt.Errorf("bulk upsert mark: %w", err)
		}
		stored = append(stored, row)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit marks: %w", err)
	}
	return stored, nil
}

func prepareMark(mark *models.Mark) {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = now
	}
	mark.UpdatedAt = now
	mark.Total = models.ComputeTotal(mark.MidSem, mark.EndSem, mark.Internal)
}

// FindByStudentAndAssignment returns the mark row for one key.
func (r *MarkRepository) FindByStudentAndAssignment(ctx context.Context, studentID, assignmentID string) (*models.Mark, error) {
	const query = `SELECT id, student_id, assignment_id, mid_sem, end_sem, internal, total, created_at, updated_at
		FROM marks WHERE student_id = $1 AND assignment_id = $2`
	var mark models.Mark
	if err := r.db.GetContext(ctx, &mark, query, studentID, assignmentID); err != nil {
		return nil, err
	}
	return &mark, nil
}

const markRecordColumns = `
SELECT m.id AS mark_id, m.student_id, st.name AS student_name, st.enroll_no,
       st.batch, st.discipline,
       m.assignment_id, ts.subject_id, s.code AS subject_code, s.name AS subject_name,
       m.mid_sem, m.end_sem, m.internal, m.total
FROM marks m
JOIN students st ON st.id = m.student_id
JOIN teacher_subjects ts ON ts.id = m.assignment_id
JOIN subjects s ON s.id = ts.subject_id`

// ListByAssignmentIDs returns mark records joined with student and subject
// context for the given assignments.
func (r *MarkRepository) ListByAssignmentIDs(ctx context.Context, assignmentIDs []string) ([]models.MarkRecord, error) {
	if len(assignmentIDs) == 0 {
		return []models.MarkRecord{}, nil
	}
	placeholders := make([]string, len(assignmentIDs))
	args := make([]interface{}, len(assignmentIDs))
	for i, id := range assignmentIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}
	query := fmt.Sprintf(markRecordColumns+`
WHERE m.assignment_id IN (%s)
ORDER BY st.enroll_no ASC`, strings.Join(placeholders, ","))
	var records []models.MarkRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list mark records: %w", err)
	}
	return records, nil
}

// ListByStudent returns a student's marks joined with subject detail for the
// results page, ordered by semester then code.
func (r *MarkRepository) ListByStudent(ctx context.Context, studentID string) ([]models.StudentResult, error) {
	const query = `
SELECT s.code AS subject_code, s.name AS subject_name, s.semester,
       m.mid_sem, m.end_sem, m.internal, m.total
FROM marks m
JOIN teacher_subjects ts ON ts.id = m.assignment_id
JOIN subjects s ON s.id = ts.subject_id
WHERE m.student_id = $1
ORDER BY s.semester ASC, s.code ASC`
	var results []models.StudentResult
	if err := r.db.SelectContext(ctx, &results, query, studentID); err != nil {
		return nil, fmt.Errorf("list student results: %w", err)
	}
	return results, nil
}
