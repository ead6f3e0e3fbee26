package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ferrylab/tagmind/internal/events"
)

// StartScanSubscriber listens for tag-scan events on the bus and routes them.
// It registers its subscription on entry, deregisters on return, and blocks
// until ctx is cancelled. The bus delivers a single tag's events in emission
// order; duplicates are tolerated because applying a scan is idempotent.
func (s *Server) StartScanSubscriber(ctx context.Context, sub events.Subscriber) error {
	ch, cancel, err := sub.Subscribe(events.TopicTagScanned)
	if err != nil {
		return fmt.Errorf("subscribe to scans: %w", err)
	}
	defer cancel()

	s.logger.Info("scan subscriber started", "topic", events.TopicTagScanned)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scan subscriber stopping")
			return nil
		case raw, ok := <-ch:
			if !ok {
				s.logger.Info("scan subscription channel closed")
				return nil
			}

			var ev events.ScanEvent
			if err := json.Unmarshal(raw, &ev); err != nil {
				s.logger.Warn("bad scan event payload", "err", err)
				continue
			}
			if ev.TagID == "" {
				s.logger.Warn("scan event missing tag_id", "event_id", ev.EventID)
				continue
			}

			if _, err := s.ApplyScan(ctx, ev); err != nil {
				s.logger.Error("failed to apply scan from bus", "tag_id", ev.TagID, "err", err)
			}
		}
	}
}
