// Package interval converts a reminder's (interval, unit) pair into the
// elapsed-time threshold the status engine compares against.
package interval

import (
	"errors"
	"fmt"
	"time"

	"github.com/ferrylab/tagmind/internal/model"
)

// ErrInvalidUnit is returned when the unit is not minutes, hours, or days.
// Validated configuration never produces it; seeing it means a programming
// error upstream, and callers are expected to fail loudly rather than treat
// the threshold as zero.
var ErrInvalidUnit = errors.New("invalid interval unit")

// Seconds per unit.
const (
	secondsPerMinute = 60
	secondsPerHour   = 3600
	secondsPerDay    = 86400
)

// Threshold returns the canonical elapsed-time threshold for the given
// interval and unit. The conversion is exact integer arithmetic: the interval
// times the unit's second factor.
func Threshold(n int, unit model.Unit) (time.Duration, error) {
	var factor int64
	switch unit {
	case model.UnitMinutes:
		factor = secondsPerMinute
	case model.UnitHours:
		factor = secondsPerHour
	case model.UnitDays:
		factor = secondsPerDay
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, unit)
	}
	return time.Duration(int64(n)*factor) * time.Second, nil
}
