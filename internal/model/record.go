package model

import "time"

// Record is the persisted "last completed" state for one reminder, keyed by
// the reminder's normalized name. It is written only when a scan is routed to
// the reminder; the status engine is a read-only consumer.
type Record struct {
	// LastScan is the instant of the most recent scan, nil if never scanned.
	LastScan *time.Time `json:"last_scan,omitempty"`
	// Count is the total number of recorded scans. Only the file backend
	// maintains it; it is best-effort under duplicate event delivery.
	Count int64 `json:"count"`
	// Actor is who performed the last scan, empty when unknown. Only the
	// external and postgres backends carry actor attribution.
	Actor string `json:"actor,omitempty"`
}

// Scanned reports whether the reminder has ever been scanned.
func (r Record) Scanned() bool {
	return r.LastScan != nil
}
