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

// AdviceRepository persists peer advice and its likes.
type AdviceRepository struct {
	db *sqlx.DB
}

// NewAdviceRepository constructs the repository.
func NewAdviceRepository(db *sqlx.DB) *AdviceRepository {
	return &AdviceRepository{db: db}
}

// Create stores a new advice entry.
func (r *AdviceRepository) Create(ctx context.Context, advice *models.Advice) error {
	if advice.ID == "" {
		advice.ID = uuid.NewString()
	}
	if advice.CreatedAt.IsZero() {
		advice.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO advice (id, student_id, subject_id, is_general, advice, created_at)
		VALUES (:id, :student_id, :subject_id, :is_general, :advice, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, advice); err != nil {
		return fmt.Errorf("create advice: %w", err)
	}
	return nil
}

// ListForDiscipline returns advice visible to a student of the discipline,
// newest first, with like counts and the viewer's like flag resolved in the
// same query.
func (r *AdviceRepository) ListForDiscipline(ctx context.Context, discipline, viewerStudentID string) ([]models.AdviceDetail, error) {
	const query = `
SELECT a.id, a.student_id, a.subject_id, a.is_general, a.advice, a.created_at,
       s.code AS subject_code, s.name AS subject_name,
       st.name AS student_name, st.batch AS student_batch,
       COUNT(al.student_id) AS likes,
       BOOL_OR(al.student_id = $2) IS TRUE AS is_liked
FROM advice a
JOIN students st ON st.id = a.student_id
LEFT JOIN subjects s ON s.id = a.subject_id
LEFT JOIN advice_likes al ON al.advice_id = a.id
WHERE st.discipline = $1
GROUP BY a.id, a.student_id, a.subject_id, a.is_general, a.advice, a.created_at,
         s.code, s.name, st.name, st.batch
ORDER BY a.created_at DESC`
	var advice []models.AdviceDetail
	if err := r.db.SelectContext(ctx, &advice, query, discipline, viewerStudentID); err != nil {
		return nil, fmt.Errorf("list advice: %w", err)
	}
	return advice, nil
}

// CountForDiscipline returns the number of advice entries authored by
// students of the discipline.
func (r *AdviceRepository) CountForDiscipline(ctx context.Context, discipline string) (int, error) {
	const query = `SELECT COUNT(*) FROM advice a JOIN students st ON st.id = a.student_id WHERE st.discipline = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, discipline); err != nil {
		return 0, fmt.Errorf("count advice: %w", err)
	}
	return count, nil
}

// FindByID returns one advice entry.
func (r *AdviceRepository) FindByID(ctx context.Context, id string) (*models.Advice, error) {
	const query = `SELECT id, student_id, subject_id, is_general, advice, created_at FROM advice WHERE id = $1`
	var advice models.Advice
	if err := r.db.GetContext(ctx, &advice, query, id); err != nil {
		return nil, err
	}
	return &advice, nil
}

// ToggleLike records or withdraws a student's like on an advice entry and
// reports whether the entry is liked after the call.
func (r *AdviceRepository) ToggleLike(ctx context.Context, adviceID, studentID string) (bool, error) {
	const deleteQuery = `DELETE FROM advice_likes WHERE advice_id = $1 AND student_id = $2`
	result, err := r.db.ExecContext(ctx, deleteQuery, adviceID, studentID)
	if err != nil {
		return false, fmt.Errorf("unlike advice: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlike advice: %w", err)
	}
	if affected > 0 {
		return false, nil
	}

	const insertQuery = `INSERT INTO advice_likes (advice_id, student_id, created_at) VALUES ($1, $2, $3)
		ON CONFLICT (advice_id, student_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insertQuery, adviceID, studentID, time.Now().UTC()); err != nil {
		return false, fmt.Errorf("like advice: %w", err)
	}
	return true, nil
}

// CountLikes returns the like count for one advice entry.
func (r *AdviceRepository) CountLikes(ctx context.Context, adviceID string) (int, error) {
	const query = `SELECT COUNT(*) FROM advice_likes WHERE advice_id = $1`
	var count int
	if err := r.db.GetContext(ctx, &count, query, adviceID); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return count, nil
}
