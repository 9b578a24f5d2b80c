package models

// RangeBucket counts marks falling into one distribution range. Bucket
// boundaries follow the portal convention: 0-20 is closed on both ends, the
// remaining buckets exclude their lower bound and include their upper bound.
type RangeBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// SubjectStat summarises marks for one subject code.
type SubjectStat struct {
	Subject        string  `json:"subject"`
	Code           string  `json:"code"`
	Average        float64 `json:"average"`
	Highest        int     `json:"highest"`
	Lowest         int     `json:"lowest"`
	PassPercentage float64 `json:"pass_percentage"`
}

// BatchStat compares average totals across batches, rounded to one decimal.
type BatchStat struct {
	Batch   string  `json:"batch"`
	Average float64 `json:"average"`
	Subject string  `json:"subject"`
}

// PerformanceReport aggregates descriptive statistics over a mark scope.
type PerformanceReport struct {
	AssignmentID        string        `json:"assignment_id,omitempty"`
	AssignmentName      string        `json:"assignment_name,omitempty"`
	AverageMarks        float64       `json:"average_marks"`
	TotalStudents       int           `json:"total_students"`
	PassedStudents      int           `json:"passed_students"`
	DistinctionStudents int           `json:"distinction_students"`
	SubjectWise         []SubjectStat `json:"subject_wise"`
	MarkDistribution    []RangeBucket `json:"mark_distribution"`
	BatchComparison     []BatchStat   `json:"batch_comparison"`
}

// LowPerformer is a student below the passing threshold in one subject.
type LowPerformer struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	EnrollNo          string `json:"enroll_no"`
	RollNumber        int    `json:"roll_number"`
	Batch             string `json:"batch"`
	Discipline        string `json:"discipline"`
	Subject           string `json:"subject"`
	SubjectCode       string `json:"subject_code"`
	AssignmentID      string `json:"assignment_id"`
	MidSem            *int   `json:"mid_sem,omitempty"`
	EndSem            *int   `json:"end_sem,omitempty"`
	Total             int    `json:"total"`
	NeedsAttention    bool   `json:"needs_attention"`
	ImprovementNeeded int    `json:"improvement_needed"`
}

// LowPerformerReport is the low-performer listing with scope-wide stats.
type LowPerformerReport struct {
	LowPerformers      []LowPerformer `json:"low_performers"`
	TotalStudents      int            `json:"total_students"`
	LowPerformerCount  int            `json:"low_performer_count"`
	AveragePerformance float64        `json:"average_performance"`
	Subjects           []string       `json:"subjects"`
	FilteredBy         string         `json:"filtered_by"`
}

// CoveredStudent is a student resolved as covered by an assignment.
type CoveredStudent struct {
	ID         string `json:"id"`
	EnrollNo   string `json:"enroll_no"`
	Name       string `json:"name"`
	RollNumber int    `json:"roll_number"`
}

// MarkStatus labels how complete a student's mark entry is for an assignment.
type MarkStatus string

const (
	MarkStatusCompleted MarkStatus = "completed"
	MarkStatusPartial   MarkStatus = "partial"
	MarkStatusPending   MarkStatus = "pending"
)

// RosterAssignment is one assignment's view of a roster student, including
// mark progress.
type RosterAssignment struct {
	ID          string     `json:"id"`
	Subject     string     `json:"subject"`
	SubjectCode string     `json:"subject_code"`
	Batch       string     `json:"batch"`
	MidSem      *int       `json:"mid_sem,omitempty"`
	EndSem      *int       `json:"end_sem,omitempty"`
	Total       *int       `json:"total,omitempty"`
	Status      MarkStatus `json:"status"`
}

// RosterStudent is a student covered by at least one of a teacher's
// assignments, with per-assignment status attached.
type RosterStudent struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	EnrollNo    string             `json:"enroll_no"`
	RollNumber  int                `json:"roll_number"`
	Batch       string             `json:"batch"`
	Discipline  string             `json:"discipline"`
	Assignments []RosterAssignment `json:"assignments"`
}

// RosterSummary accompanies the teacher roster payload.
type RosterSummary struct {
	TotalStudents    int `json:"total_students"`
	TotalAssignments int `json:"total_assignments"`
}

// Roster is the reverse-resolver payload for a teacher.
type Roster struct {
	Students []RosterStudent `json:"students"`
	Summary  RosterSummary   `json:"summary"`
}
