// Package client provides the HTTP client used by the tmc command to talk to
// a tagmindd server.
package client

import (
	"time"

	"github.com/ferrylab/tagmind/internal/model"
	"github.com/ferrylab/tagmind/internal/status"
)

// Reminder is one reminder as returned by the server, with its live status.
type Reminder struct {
	Name     string     `json:"name"`
	Key      string     `json:"key"`
	Tag      string     `json:"tag"`
	Interval int        `json:"interval"`
	Unit     model.Unit `json:"unit"`

	LastScan         *time.Time `json:"last_scan,omitempty"`
	LastScanRelative string     `json:"last_scan_relative"`
	LastScanAbsolute string     `json:"last_scan_absolute,omitempty"`
	Actor            string     `json:"last_scanned_by,omitempty"`
	Count            int64      `json:"scan_count,omitempty"`

	Status status.Snapshot `json:"status"`
}

// ScanResult reports which reminders a submitted scan updated. Reminders is
// empty when the tag matched nothing.
type ScanResult struct {
	TagID     string   `json:"tag_id"`
	Reminders []string `json:"reminders"`
}
