package model

import "strings"

// Unit is the interval unit for a reminder's re-scan threshold.
type Unit string

const (
	UnitMinutes Unit = "minutes"
	UnitHours   Unit = "hours"
	UnitDays    Unit = "days"
)

// String returns the string representation of the unit.
func (u Unit) String() string {
	return string(u)
}

// IsValid checks whether the unit is a known value.
func (u Unit) IsValid() bool {
	switch u {
	case UnitMinutes, UnitHours, UnitDays:
		return true
	}
	return false
}

// Tier is the three-level status classification for a reminder.
type Tier string

const (
	TierGood    Tier = "good"
	TierWarning Tier = "warning"
	TierOverdue Tier = "overdue"
)

// String returns the string representation of the tier.
func (t Tier) String() string {
	return string(t)
}

// DefaultInterval and DefaultUnit apply when a reminder's configuration
// omits the re-scan interval.
const (
	DefaultInterval = 7
	DefaultUnit     = UnitDays
)

// Reminder is a named recurring task completed by scanning an NFC tag.
type Reminder struct {
	// Name is the human-chosen display name, unique across all reminders.
	Name string `json:"name" toml:"name"`
	// Tag is the opaque identifier read from the physical NFC tag.
	Tag string `json:"tag" toml:"tag"`
	// Interval is the target re-scan interval, in units of Unit. Must be >= 1.
	Interval int `json:"interval" toml:"interval"`
	Unit     Unit `json:"unit" toml:"unit"`
}

// Key returns the reminder's normalized storage key.
func (r *Reminder) Key() string {
	return NormalizeName(r.Name)
}

// Group fans a single tag identifier out to multiple reminders.
// Groups are static configuration; they are never created at runtime.
type Group struct {
	// Tag is the identifier that triggers the fan-out.
	Tag string `json:"tag"`
	// Members are reminder names, in configuration order.
	Members []string `json:"members"`
}

// NormalizeName converts a human-chosen reminder name into the storage key
// used everywhere internally: lowercase with spaces replaced by underscores.
func NormalizeName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}
