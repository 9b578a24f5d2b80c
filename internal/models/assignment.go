package models

import "time"

// Assignment allocates a teacher to teach a subject to a contiguous roll
// range of a batch. For any (subject, batch) pair the roll ranges of its
// assignments never overlap.
type Assignment struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	SubjectID string    `db:"subject_id" json:"subject_id"`
	Batch     string    `db:"batch" json:"batch"`
	StartRoll int       `db:"start_roll" json:"start_roll"`
	EndRoll   int       `db:"end_roll" json:"end_roll"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Overlaps reports whether two closed roll ranges intersect. This is the
// general interval condition, covering containment in either direction.
func (a Assignment) Overlaps(other Assignment) bool {
	return a.StartRoll <= other.EndRoll && other.StartRoll <= a.EndRoll
}

// AssignmentDetail enriches an assignment with descriptive fields.
type AssignmentDetail struct {
	Assignment
	TeacherName    string `db:"teacher_name" json:"teacher_name"`
	TeacherCode    string `db:"teacher_code" json:"teacher_code"`
	SubjectCode    string `db:"subject_code" json:"subject_code"`
	SubjectName    string `db:"subject_name" json:"subject_name"`
	Semester       int    `db:"semester" json:"semester"`
	DisciplineName string `db:"discipline_name" json:"discipline_name"`
}
