package models

import "time"

// Teacher represents a faculty member linked to a portal user.
type Teacher struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	Name        string    `db:"name" json:"name"`
	JoiningDate time.Time `db:"joining_date" json:"joining_date"`
	UserID      string    `db:"user_id" json:"user_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
