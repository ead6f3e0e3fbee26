package router

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ferrylab/tagmind/internal/events"
	"github.com/ferrylab/tagmind/internal/registry"
	"github.com/ferrylab/tagmind/internal/scanstore"
)

// Dispatcher routes scan events and applies the resulting record updates.
//
// Writes are serialized per reminder name: duplicate deliveries of the same
// physical scan, or rapid re-scans of one tag, never interleave a reminder's
// record update. Different reminders update concurrently.
type Dispatcher struct {
	reg    *registry.Registry
	store  scanstore.Store
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex // normalized name -> write lock
}

// NewDispatcher creates a dispatcher over the given registry and store.
func NewDispatcher(reg *registry.Registry, store scanstore.Store, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		reg:    reg,
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

// HandleScan routes a scan event and sets each matched reminder's record to
// the event time, exactly once per routed event per reminder. It returns the
// normalized names that were updated; an unmatched tag returns an empty
// slice and no error.
//
// Setting the same timestamp twice is harmless, so at-least-once event
// delivery needs no dedup here.
func (d *Dispatcher) HandleScan(ctx context.Context, ev events.ScanEvent) ([]string, error) {
	names := Route(ev.TagID, d.reg)
	if len(names) == 0 {
		d.logger.Debug("scan did not match any reminder", "tag_id", ev.TagID, "event_id", ev.EventID)
		return nil, nil
	}

	var applied []string
	for _, name := range names {
		if err := d.apply(ctx, name, ev); err != nil {
			// Keep going: one reminder's storage failure must not starve the
			// rest of a group fan-out.
			d.logger.Error("failed to record scan", "name", name, "tag_id", ev.TagID, "err", err)
			continue
		}
		applied = append(applied, name)
	}

	d.logger.Info("scan recorded", "tag_id", ev.TagID, "reminders", applied, "event_id", ev.EventID)
	return applied, nil
}

func (d *Dispatcher) apply(ctx context.Context, name string, ev events.ScanEvent) error {
	lock := d.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if err := d.store.Set(ctx, name, ev.At); err != nil {
		return err
	}
	if ev.ScannedBy != "" {
		if as, ok := d.store.(scanstore.ActorSetter); ok {
			if err := as.SetActor(ctx, name, ev.ScannedBy); err != nil {
				// Attribution is best-effort; the timestamp is the record.
				d.logger.Warn("failed to record scan actor", "name", name, "err", err)
			}
		}
	}
	return nil
}

func (d *Dispatcher) lockFor(name string) *sync.Mutex {
	d.mu.Lock()
	defer d.mu.Unlock()
	lock, ok := d.locks[name]
	if !ok {
		lock = &sync.Mutex{}
		d.locks[name] = lock
	}
	return lock
}
