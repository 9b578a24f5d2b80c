package service

import (
	"time"

	"github.com/OAtulA/student-epr/internal/models"
)

// CurrentSemester derives a batch's running semester from the admission year,
// taken from the first segment of the "YYYY-YYYY" cohort label. Two semesters
// elapse per academic year and the odd semester starts in August. The result
// is clamped to the eight-semester program; an unparseable batch yields
// semester 1.
func CurrentSemester(batch string, now time.Time) int {
	startYear, ok := models.BatchStartYear(batch)
	if !ok {
		return 1
	}
	semester := (now.Year() - startYear) * 2
	if now.Month() >= time.August {
		semester++
	}
	if semester < 1 {
		return 1
	}
	if semester > 8 {
		return 8
	}
	return semester
}
