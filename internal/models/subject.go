package models

import "time"

// Subject represents a course offered to a discipline in a given semester.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	Code         string    `db:"code" json:"code"`
	Name         string    `db:"name" json:"name"`
	Semester     int       `db:"semester" json:"semester"`
	DisciplineID string    `db:"discipline_id" json:"discipline_id"`
	Batch        string    `db:"batch" json:"batch"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// SubjectDetail enriches a subject with its discipline name.
type SubjectDetail struct {
	Subject
	DisciplineName string `db:"discipline_name" json:"discipline_name"`
}
