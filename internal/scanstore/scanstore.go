// Package scanstore persists the last-scan record for each reminder.
//
// Three interchangeable backends implement the Store interface: a local JSON
// file, an external state-holder service, and Postgres. The status engine and
// formatter depend only on the interface and never learn which backend is
// active.
package scanstore

import (
	"context"
	"time"

	"github.com/ferrylab/tagmind/internal/model"
)

// Store is the scan record persistence contract.
//
// Get never fails on malformed stored data; a record that cannot be parsed
// degrades to the zero Record, the same as never scanned. Set with the same
// timestamp twice must leave the same observable timestamp, so duplicate
// event delivery is harmless (the file backend's count may drift; it is
// best-effort only).
type Store interface {
	// Get returns the record for the given normalized reminder name.
	Get(ctx context.Context, name string) (model.Record, error)
	// Set records t as the last scan for the given normalized reminder name.
	Set(ctx context.Context, name string, t time.Time) error
	// Delete removes the record when its owning reminder is destroyed.
	Delete(ctx context.Context, name string) error
	// Close releases backend resources.
	Close() error
}

// ActorSetter is implemented by backends that carry actor attribution
// ("who last scanned"). The file backend deliberately does not.
type ActorSetter interface {
	SetActor(ctx context.Context, name, actor string) error
}

// Provisioner is implemented by backends that manage per-reminder storage
// slots with their own lifecycle, created when a reminder is configured and
// removed with Delete when it is destroyed.
type Provisioner interface {
	Ensure(ctx context.Context, name string) error
}
