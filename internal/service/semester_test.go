package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCurrentSemester(t *testing.T) {
	cases := []struct {
		name  string
		batch string
		now   time.Time
		want  int
	}{
		{"secondYearEven", "2022-2026", time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), 4},
		{"thirdYearOdd", "2022-2026", time.Date(2024, time.September, 1, 0, 0, 0, 0, time.UTC), 5},
		{"admissionMonth", "2025-2029", time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC), 1},
		{"beforeAdmission", "2026-2030", time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), 1},
		{"clampedToEight", "2018-2022", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), 8},
		{"unparseableBatch", "20XX-20YY", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), 1},
		{"emptyBatch", "", time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CurrentSemester(tc.batch, tc.now))
		})
	}
}
