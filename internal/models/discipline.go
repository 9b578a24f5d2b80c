package models

import "time"

// Discipline is an academic program such as CSE or ECE.
type Discipline struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
