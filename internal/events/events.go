// Package events carries scan events between the tag readers and the server.
package events

import (
	"context"
	"time"
)

// Topics.
const (
	// TopicTagScanned is emitted by tag readers when a physical tag is read.
	// Delivery is at-least-once; for a single tag, events arrive in the
	// order they were emitted. No ordering holds across different tags.
	TopicTagScanned = "tagmind.tag.scanned"

	// TopicScanApplied is emitted by the server after a scan event has been
	// routed and the matched reminders' records updated.
	TopicScanApplied = "tagmind.scan.applied"
)

// ScanEvent is the payload of TopicTagScanned. It carries the one field the
// core needs (the tag identifier) plus optional attribution and an event ID
// for log correlation.
type ScanEvent struct {
	EventID   string    `json:"event_id,omitempty"`
	TagID     string    `json:"tag_id"`
	ScannedBy string    `json:"scanned_by,omitempty"`
	At        time.Time `json:"at"`
}

// ScanApplied is the payload of TopicScanApplied.
type ScanApplied struct {
	EventID   string    `json:"event_id,omitempty"`
	TagID     string    `json:"tag_id"`
	Reminders []string  `json:"reminders"` // normalized names that were updated
	ScannedBy string    `json:"scanned_by,omitempty"`
	At        time.Time `json:"at"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
