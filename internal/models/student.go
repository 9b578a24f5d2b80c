package models

import (
	"strconv"
	"time"
)

// Student represents a learner linked to a portal user. Discipline is stored
// denormalized as the discipline name, mirroring enrollment records.
type Student struct {
	ID         string    `db:"id" json:"id"`
	EnrollNo   string    `db:"enroll_no" json:"enroll_no"`
	Name       string    `db:"name" json:"name"`
	Batch      string    `db:"batch" json:"batch"`
	Discipline string    `db:"discipline" json:"discipline"`
	UserID     string    `db:"user_id" json:"user_id"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RollNumber extracts the roll number encoded in the first three characters
// of the enrollment number. Unparseable prefixes yield 0.
func (s Student) RollNumber() int {
	return ParseRollNumber(s.EnrollNo)
}

// ParseRollNumber parses the three-character roll prefix of an enrollment
// number, returning 0 when the prefix is absent or not numeric.
func ParseRollNumber(enrollNo string) int {
	if len(enrollNo) < 3 {
		return 0
	}
	roll, err := strconv.Atoi(enrollNo[:3])
	if err != nil {
		return 0
	}
	return roll
}
