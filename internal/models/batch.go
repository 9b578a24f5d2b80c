package models

import (
	"regexp"
	"strconv"
	"strings"
)

// batchPattern matches the cohort label, admission year to graduation year,
// e.g. "2022-2026".
var batchPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// ValidBatch reports whether a batch label is in the YYYY-YYYY form.
func ValidBatch(batch string) bool {
	return batchPattern.MatchString(batch)
}

// BatchStartYear extracts the admission year from a batch label. The second
// value is false when the label does not begin with a four-digit year.
func BatchStartYear(batch string) (int, bool) {
	first, _, _ := strings.Cut(batch, "-")
	if len(first) != 4 {
		return 0, false
	}
	year, err := strconv.Atoi(first)
	if err != nil {
		return 0, false
	}
	return year, true
}
