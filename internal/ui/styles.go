package ui

import (
	"fmt"

	"github.com/ferrylab/tagmind/internal/model"
)

// ANSI256 color codes for the status tiers.
const (
	colorGood    = 114 // green
	colorWarning = 214 // amber
	colorOverdue = 203 // red
	colorMuted   = 245 // medium gray
)

var noColor bool

// RenderTier returns s colored by the given status tier.
func RenderTier(tier model.Tier, s string) string {
	if noColor {
		return s
	}
	var code int
	switch tier {
	case model.TierOverdue:
		code = colorOverdue
	case model.TierWarning:
		code = colorWarning
	default:
		code = colorGood
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderMuted returns s in the muted (gray) color, used for never-scanned
// reminders and secondary columns.
func RenderMuted(s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", colorMuted, s)
}

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
