// Package snapshot periodically exports all scan records as JSONL for
// off-site backup (S3 or any Destination).
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ferrylab/tagmind/internal/registry"
	"github.com/ferrylab/tagmind/internal/scanstore"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	RecordCount int       `json:"record_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string     `json:"type"`
	Data recordData `json:"data"`
}

type recordData struct {
	Name      string     `json:"name"`
	Tag       string     `json:"tag"`
	LastScan  *time.Time `json:"last_scan,omitempty"`
	Count     int64      `json:"count"`
	Actor     string     `json:"actor,omitempty"`
}

// ExportJSONL writes one line per configured reminder, in configuration
// order, preceded by a header line.
func ExportJSONL(ctx context.Context, reg *registry.Registry, store scanstore.Store, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	reminders := reg.Reminders()
	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		RecordCount: len(reminders),
	}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rem := range reminders {
		key := rem.Key()
		rec, err := store.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("get record %s: %w", key, err)
		}
		if err := enc.Encode(record{
			Type: "record",
			Data: recordData{
				Name:     key,
				Tag:      rem.Tag,
				LastScan: rec.LastScan,
				Count:    rec.Count,
				Actor:    rec.Actor,
			},
		}); err != nil {
			return fmt.Errorf("write record %s: %w", key, err)
		}
	}
	return nil
}
