package status

import (
	"errors"
	"testing"
	"time"

	"github.com/ferrylab/tagmind/internal/interval"
	"github.com/ferrylab/tagmind/internal/model"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestEvaluate_NeverScanned(t *testing.T) {
	for _, unit := range []model.Unit{model.UnitMinutes, model.UnitHours, model.UnitDays} {
		for _, n := range []int{1, 7, 30} {
			snap, err := Evaluate(now, nil, n, unit)
			if err != nil {
				t.Fatalf("Evaluate(nil, %d, %s): %v", n, unit, err)
			}
			if snap.Scanned {
				t.Errorf("expected Scanned=false for %d %s", n, unit)
			}
			if snap.Percent != 0 {
				t.Errorf("expected percent 0 for never scanned, got %d", snap.Percent)
			}
			if snap.Tier != model.TierGood {
				t.Errorf("expected tier good for never scanned, got %s", snap.Tier)
			}
		}
	}
}

func TestEvaluate_OverdueScenario(t *testing.T) {
	// interval=5 days, last scan 6 days ago: pinned at 100, overdue.
	snap, err := Evaluate(now, ago(6*24*time.Hour), 5, model.UnitDays)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Percent != 100 {
		t.Errorf("percent = %d, want 100", snap.Percent)
	}
	if snap.Tier != model.TierOverdue {
		t.Errorf("tier = %s, want overdue", snap.Tier)
	}
	if snap.DaysSince != 6.0 {
		t.Errorf("days since = %v, want 6.0", snap.DaysSince)
	}
}

func TestEvaluate_WarningScenario(t *testing.T) {
	// interval=7 days, last scan 3.5 days ago: exactly 50%, warning.
	snap, err := Evaluate(now, ago(3*24*time.Hour+12*time.Hour), 7, model.UnitDays)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Percent != 50 {
		t.Errorf("percent = %d, want 50", snap.Percent)
	}
	if snap.Tier != model.TierWarning {
		t.Errorf("tier = %s, want warning", snap.Tier)
	}
	if snap.DaysSince != 3.5 {
		t.Errorf("days since = %v, want 3.5", snap.DaysSince)
	}
}

func TestEvaluate_TierBoundaries(t *testing.T) {
	// 100-minute interval makes 1 minute of elapsed time 1 percent.
	for _, tc := range []struct {
		elapsedMin int
		percent    int
		tier       model.Tier
	}{
		{0, 0, model.TierGood},
		{49, 49, model.TierGood},
		{50, 50, model.TierWarning},
		{79, 79, model.TierWarning},
		{80, 80, model.TierOverdue},
		{100, 100, model.TierOverdue},
		{250, 100, model.TierOverdue},
	} {
		snap, err := Evaluate(now, ago(time.Duration(tc.elapsedMin)*time.Minute), 100, model.UnitMinutes)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Percent != tc.percent {
			t.Errorf("elapsed %dm: percent = %d, want %d", tc.elapsedMin, snap.Percent, tc.percent)
		}
		if snap.Tier != tc.tier {
			t.Errorf("elapsed %dm: tier = %s, want %s", tc.elapsedMin, snap.Tier, tc.tier)
		}
	}
}

func TestEvaluate_RoundingFeedsTier(t *testing.T) {
	// 79.5% rounds to 80, which is overdue (tier applies to the rounded value).
	snap, err := Evaluate(now, ago(79*time.Minute+30*time.Second), 100, model.UnitMinutes)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Percent != 80 {
		t.Errorf("percent = %d, want 80", snap.Percent)
	}
	if snap.Tier != model.TierOverdue {
		t.Errorf("tier = %s, want overdue", snap.Tier)
	}
}

func TestEvaluate_ClockSkewClampsToZero(t *testing.T) {
	// Stored timestamp 2 minutes in the future.
	future := now.Add(2 * time.Minute)
	snap, err := Evaluate(now, &future, 7, model.UnitDays)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", snap.Elapsed)
	}
	if snap.Percent != 0 {
		t.Errorf("percent = %d, want 0", snap.Percent)
	}
	if snap.Tier != model.TierGood {
		t.Errorf("tier = %s, want good", snap.Tier)
	}
}

func TestEvaluate_MonotonicNonDecreasing(t *testing.T) {
	last := now.Add(-time.Minute)
	prev := -1
	for i := 0; i < 200; i++ {
		at := now.Add(time.Duration(i) * time.Hour)
		snap, err := Evaluate(at, &last, 3, model.UnitDays)
		if err != nil {
			t.Fatal(err)
		}
		if snap.Percent < prev {
			t.Fatalf("percent decreased from %d to %d at step %d", prev, snap.Percent, i)
		}
		prev = snap.Percent
	}
	if prev != 100 {
		t.Errorf("expected clamp at 100 once elapsed >= threshold, got %d", prev)
	}
}

func TestEvaluate_InvalidUnit(t *testing.T) {
	_, err := Evaluate(now, ago(time.Hour), 7, "weeks")
	if !errors.Is(err, interval.ErrInvalidUnit) {
		t.Errorf("error = %v, want ErrInvalidUnit", err)
	}
}

func TestTierFor(t *testing.T) {
	for _, tc := range []struct {
		percent int
		want    model.Tier
	}{
		{0, model.TierGood},
		{49, model.TierGood},
		{50, model.TierWarning},
		{79, model.TierWarning},
		{80, model.TierOverdue},
		{100, model.TierOverdue},
	} {
		if got := TierFor(tc.percent); got != tc.want {
			t.Errorf("TierFor(%d) = %s, want %s", tc.percent, got, tc.want)
		}
	}
}
