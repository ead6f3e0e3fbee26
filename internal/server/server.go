// Package server exposes reminder status over HTTP and ingests scan events
// from the bus. Status is computed on read, never on write: the stored scan
// record is the only persistent state.
package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/ferrylab/tagmind/internal/events"
	"github.com/ferrylab/tagmind/internal/idgen"
	"github.com/ferrylab/tagmind/internal/registry"
	"github.com/ferrylab/tagmind/internal/router"
	"github.com/ferrylab/tagmind/internal/scanstore"
)

// Server routes scans and serves reminder status.
type Server struct {
	reg        *registry.Registry
	store      scanstore.Store
	dispatcher *router.Dispatcher
	sseHub     *sseHub
	logger     *slog.Logger

	now func() time.Time // injectable for tests
}

// NewServer creates a server over the given registry and store.
func NewServer(reg *registry.Registry, store scanstore.Store, logger *slog.Logger) *Server {
	return &Server{
		reg:        reg,
		store:      store,
		dispatcher: router.NewDispatcher(reg, store, logger),
		sseHub:     newSSEHub(),
		logger:     logger,
		now:        time.Now,
	}
}

// ApplyScan routes one scan event, updates the matched reminders' records,
// and broadcasts the applied result to SSE consumers. The returned slice is
// never nil; an unmatched tag yields an empty slice.
func (s *Server) ApplyScan(ctx context.Context, ev events.ScanEvent) ([]string, error) {
	if ev.EventID == "" {
		if id, err := idgen.Generate(); err == nil {
			ev.EventID = id
		}
	}
	if ev.At.IsZero() {
		ev.At = s.now()
	}

	applied, err := s.dispatcher.HandleScan(ctx, ev)
	if err != nil {
		return nil, err
	}
	if applied == nil {
		applied = []string{}
	}

	if len(applied) > 0 {
		s.sseHub.broadcast(events.TopicScanApplied, events.ScanApplied{
			EventID:   ev.EventID,
			TagID:     ev.TagID,
			Reminders: applied,
			ScannedBy: ev.ScannedBy,
			At:        ev.At,
		})
	}
	return applied, nil
}
