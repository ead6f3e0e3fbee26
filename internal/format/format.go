// Package format renders scan timestamps as human-readable labels.
// The output strings are display contracts consumed by the CLI and the
// HTTP API; they are exact, including the floor-division day/hour counts.
package format

import (
	"fmt"
	"time"
)

// absoluteLayout is a short-month, 12-hour clock layout, e.g.
// "Mar 14, 2026 at 2:05 PM".
const absoluteLayout = "Jan 2, 2006 at 3:04 PM"

// RelativeLabel renders how long ago the reminder was scanned relative to
// now. A nil timestamp renders "Not scanned". Day and hour counts use floor
// division: 47 hours is "1d ago", not "2d ago".
func RelativeLabel(now time.Time, t *time.Time) string {
	if t == nil {
		return "Not scanned"
	}
	elapsed := now.Sub(*t)
	if elapsed < 0 {
		elapsed = 0
	}
	switch {
	case elapsed >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours())/24)
	case elapsed >= time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return "Just now"
	}
}

// AbsoluteLabel renders the scan instant as a locale-style absolute time.
// A nil timestamp renders as the empty string.
func AbsoluteLabel(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(absoluteLayout)
}
