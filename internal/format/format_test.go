package format

import (
	"testing"
	"time"
)

var now = time.Date(2026, 3, 14, 14, 5, 0, 0, time.UTC)

func ago(d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestRelativeLabel(t *testing.T) {
	for _, tc := range []struct {
		name string
		t    *time.Time
		want string
	}{
		{"nil", nil, "Not scanned"},
		{"just now", ago(0), "Just now"},
		{"59 minutes", ago(59 * time.Minute), "Just now"},
		{"one hour", ago(time.Hour), "1h ago"},
		{"90 minutes floors to 1h", ago(90 * time.Minute), "1h ago"},
		{"23 hours", ago(23 * time.Hour), "23h ago"},
		{"one day", ago(24 * time.Hour), "1d ago"},
		{"47 hours floors to 1d", ago(47 * time.Hour), "1d ago"},
		{"six days", ago(6 * 24 * time.Hour), "6d ago"},
		{"future timestamp clamps", ago(-2 * time.Minute), "Just now"},
	} {
		if got := RelativeLabel(now, tc.t); got != tc.want {
			t.Errorf("%s: RelativeLabel = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestAbsoluteLabel(t *testing.T) {
	if got := AbsoluteLabel(nil); got != "" {
		t.Errorf("AbsoluteLabel(nil) = %q, want empty", got)
	}

	ts := time.Date(2026, 3, 14, 14, 5, 0, 0, time.UTC)
	if got := AbsoluteLabel(&ts); got != "Mar 14, 2026 at 2:05 PM" {
		t.Errorf("AbsoluteLabel = %q", got)
	}

	morning := time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)
	if got := AbsoluteLabel(&morning); got != "Dec 1, 2025 at 9:30 AM" {
		t.Errorf("AbsoluteLabel = %q", got)
	}
}
