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

// UserRepository persists portal users and their role profiles.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository constructs the repository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns the user with the given email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByEmail reports whether a user with the email exists.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT 1 FROM users WHERE email = $1 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check user email: %w", err)
	}
	return true, nil
}

// CreateTeacher inserts a user and its teacher profile in one transaction.
func (r *UserRepository) CreateTeacher(ctx context.Context, user *models.User, teacher *models.Teacher) error {
	return r.createWithProfile(ctx, user, func(tx *sqlx.Tx) error {
		if teacher.ID == "" {
			teacher.ID = uuid.NewString()
		}
		teacher.UserID = user.ID
		teacher.CreatedAt = user.CreatedAt
		const query = `INSERT INTO teachers (id, teacher_id, name, joining_date, user_id, created_at)
			VALUES (:id, :teacher_id, :name, :joining_date, :user_id, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, teacher); err != nil {
			return fmt.Errorf("create teacher profile: %w", err)
		}
		return nil
	})
}

// CreateStudent inserts a user and its student profile in one transaction.
func (r *UserRepository) CreateStudent(ctx context.Context, user *models.User, student *models.Student) error {
	return r.createWithProfile(ctx, user, func(tx *sqlx.Tx) error {
		if student.ID == "" {
			student.ID = uuid.NewString()
		}
		student.UserID = user.ID
		student.CreatedAt = user.CreatedAt
		const query = `INSERT INTO students (id, enroll_no, name, batch, discipline, user_id, created_at)
			VALUES (:id, :enroll_no, :name, :batch, :discipline, :user_id, :created_at)`
		if _, err := tx.NamedExecContext(ctx, query, student); err != nil {
			return fmt.Errorf("create student profile: %w", err)
		}
		return nil
	})
}

func (r *UserRepository) createWithProfile(ctx context.Context, user *models.User, profile func(tx *sqlx.Tx) error) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin user tx: %w", err)
	}
	const query = `INSERT INTO users (id, email, password_hash, role, created_at, updated_at)
		VALUES (:id, :email, :password_hash, :role, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, user); err != nil {
		tx.Rollback() //nolint:errcheck
		return fmt.Errorf("create user: %w", err)
	}
	if profile != nil {
		if err := profile(tx); err != nil {
			tx.Rollback() //nolint:errcheck
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user: %w", err)
	}
	return nil
}
