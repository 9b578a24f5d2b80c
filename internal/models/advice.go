package models

import "time"

// Advice is a tip shared by a student, either general or tied to a subject.
type Advice struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	SubjectID *string   `db:"subject_id" json:"subject_id,omitempty"`
	IsGeneral bool      `db:"is_general" json:"is_general"`
	Advice    string    `db:"advice" json:"advice"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AdviceDetail joins advice with its author and optional subject.
type AdviceDetail struct {
	Advice
	SubjectCode  *string `db:"subject_code" json:"subject_code,omitempty"`
	SubjectName  *string `db:"subject_name" json:"subject_name,omitempty"`
	StudentName  string  `db:"student_name" json:"student_name"`
	StudentBatch string  `db:"student_batch" json:"student_batch"`
	Likes        int     `db:"likes" json:"likes"`
	IsLiked      bool    `db:"is_liked" json:"is_liked"`
}

// AdviceStats summarises the advice pool visible to a student.
type AdviceStats struct {
	TotalAdvice int       `json:"total_advice"`
	AIReady     bool      `json:"ai_ready"`
	ThemesCount int       `json:"themes_count"`
	LastUpdated time.Time `json:"last_updated"`
}

// AdviceFeed is the advice listing payload with filter values and counts.
type AdviceFeed struct {
	Advice   []AdviceDetail `json:"advice"`
	Subjects []string       `json:"subjects"`
	Batches  []string       `json:"batches"`
	Summary  AdviceSummary  `json:"summary"`
}

// AdviceSummary counts general versus subject-specific advice.
type AdviceSummary struct {
	TotalAdvice   int `json:"total_advice"`
	GeneralAdvice int `json:"general_advice"`
	SubjectAdvice int `json:"subject_advice"`
}
