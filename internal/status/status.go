// Package status derives a reminder's live status from its scan record.
//
// Evaluate is a pure function of its inputs: it performs no I/O, mutates
// nothing, and is safe to call concurrently from any number of readers.
// Snapshots are recomputed on every read and never persisted.
package status

import (
	"math"
	"time"

	"github.com/ferrylab/tagmind/internal/interval"
	"github.com/ferrylab/tagmind/internal/model"
)

// Snapshot is the derived status of a reminder at a single instant.
type Snapshot struct {
	// Scanned is false when the reminder has never been scanned. In that
	// case Elapsed and DaysSince are zero and the tier is good: absence of
	// data is never treated as overdue.
	Scanned bool `json:"scanned"`
	// Elapsed is the time since the last scan, clamped at zero when the
	// stored timestamp is in the future (clock skew).
	Elapsed time.Duration `json:"-"`
	// Percent is progress toward the re-scan threshold, rounded to the
	// nearest integer and clamped to [0, 100].
	Percent int `json:"percent"`
	// DaysSince is the elapsed time in days with one decimal of precision.
	// Percent and DaysSince are independently rounded projections of the
	// same elapsed duration.
	DaysSince float64 `json:"days_since"`
	Tier      model.Tier `json:"tier"`
}

// Tier boundaries, applied to the rounded percentage.
// 49 is good, 50 is warning, 79 is warning, 80 is overdue.
const (
	warningAt = 50
	overdueAt = 80
)

// TierFor classifies a rounded percentage.
func TierFor(percent int) model.Tier {
	switch {
	case percent < warningAt:
		return model.TierGood
	case percent < overdueAt:
		return model.TierWarning
	default:
		return model.TierOverdue
	}
}

// Evaluate computes the status snapshot for a reminder given the current
// time, the last scan instant (nil if never scanned), and the configured
// re-scan interval.
//
// An invalid unit returns interval.ErrInvalidUnit; configuration is validated
// at load time, so that path only fires on programmer error.
func Evaluate(now time.Time, lastScan *time.Time, n int, unit model.Unit) (Snapshot, error) {
	threshold, err := interval.Threshold(n, unit)
	if err != nil {
		return Snapshot{}, err
	}

	if lastScan == nil {
		return Snapshot{Scanned: false, Percent: 0, Tier: model.TierGood}, nil
	}

	elapsed := now.Sub(*lastScan)
	if elapsed < 0 {
		elapsed = 0
	}

	raw := elapsed.Seconds() / threshold.Seconds() * 100
	if raw > 100 {
		raw = 100
	}
	percent := int(math.Round(raw))

	days := elapsed.Seconds() / 86400
	days = math.Round(days*10) / 10

	return Snapshot{
		Scanned:   true,
		Elapsed:   elapsed,
		Percent:   percent,
		DaysSince: days,
		Tier:      TierFor(percent),
	}, nil
}
