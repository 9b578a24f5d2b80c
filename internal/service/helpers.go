package service

import (
	"errors"
	"math"

	appErrors "github.com/OAtulA/student-epr/pkg/errors"
)

func asAppError(err error, target **appErrors.Error) bool {
	return errors.As(err, target)
}

// roundHalfUp rounds to one decimal with ties away from zero, the rounding
// used across the reporting endpoints.
func roundHalfUp(v float64) float64 {
	return math.Floor(v*10+0.5) / 10
}
