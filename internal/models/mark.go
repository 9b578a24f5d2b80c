package models

import "time"

// Mark stores the scores of one student under one assignment. At most one
// row exists per (student, assignment) pair; partial uploads merge into it.
// Total is derived from whichever sub-scores are present and is never taken
// from client input.
type Mark struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	AssignmentID string    `db:"assignment_id" json:"assignment_id"`
	MidSem       *int      `db:"mid_sem" json:"mid_sem,omitempty"`
	EndSem       *int      `db:"end_sem" json:"end_sem,omitempty"`
	Internal     *int      `db:"internal" json:"internal,omitempty"`
	Total        *int      `db:"total" json:"total,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ComputeTotal sums the present sub-scores, returning nil when none are set.
func ComputeTotal(midSem, endSem, internal *int) *int {
	if midSem == nil && endSem == nil && internal == nil {
		return nil
	}
	sum := 0
	for _, v := range []*int{midSem, endSem, internal} {
		if v != nil {
			sum += *v
		}
	}
	return &sum
}

// MarkRecord is a mark row joined with its student and assignment context,
// used by the performance aggregator and mark listings.
type MarkRecord struct {
	MarkID       string `db:"mark_id" json:"mark_id"`
	StudentID    string `db:"student_id" json:"student_id"`
	StudentName  string `db:"student_name" json:"student_name"`
	EnrollNo     string `db:"enroll_no" json:"enroll_no"`
	Batch        string `db:"batch" json:"batch"`
	Discipline   string `db:"discipline" json:"discipline"`
	AssignmentID string `db:"assignment_id" json:"assignment_id"`
	SubjectID    string `db:"subject_id" json:"subject_id"`
	SubjectCode  string `db:"subject_code" json:"subject_code"`
	SubjectName  string `db:"subject_name" json:"subject_name"`
	MidSem       *int   `db:"mid_sem" json:"mid_sem,omitempty"`
	EndSem       *int   `db:"end_sem" json:"end_sem,omitempty"`
	Internal     *int   `db:"internal" json:"internal,omitempty"`
	Total        *int   `db:"total" json:"total,omitempty"`
}

// TotalOrZero treats an absent total as 0, the convention used across the
// aggregation endpoints.
func (r MarkRecord) TotalOrZero() int {
	if r.Total == nil {
		return 0
	}
	return *r.Total
}

// StudentResult is a mark row joined with subject detail for the student
// results page.
type StudentResult struct {
	SubjectCode string `db:"subject_code" json:"subject_code"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	Semester    int    `db:"semester" json:"semester"`
	MidSem      *int   `db:"mid_sem" json:"mid_sem,omitempty"`
	EndSem      *int   `db:"end_sem" json:"end_sem,omitempty"`
	Internal    *int   `db:"internal" json:"internal,omitempty"`
	Total       *int   `db:"total" json:"total,omitempty"`
}
