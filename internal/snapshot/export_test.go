package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ferrylab/tagmind/internal/model"
	"github.com/ferrylab/tagmind/internal/registry"
)

type memStore struct {
	mu      sync.Mutex
	records map[string]model.Record
}

func (m *memStore) Get(ctx context.Context, name string) (model.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.records[name], nil
}

func (m *memStore) Set(ctx context.Context, name string, t time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec := m.records[name]
	rec.LastScan = &t
	rec.Count++
	m.records[name] = rec
	return nil
}

func (m *memStore) Delete(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, name)
	return nil
}

func (m *memStore) Close() error { return nil }

func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := registry.New([]*model.Reminder{
		{Name: "Coffee Machine", Tag: "tag-coffee", Interval: 3, Unit: model.UnitDays},
		{Name: "Plants", Tag: "tag-plants", Interval: 7, Unit: model.UnitDays},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return reg
}

func TestExportJSONL(t *testing.T) {
	reg := testRegistry(t)
	at := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := &memStore{records: map[string]model.Record{
		"coffee_machine": {LastScan: &at, Count: 5},
	}}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), reg, store, &buf); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 records, got %d lines", len(lines))
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatal(err)
	}
	if h.Type != "header" || h.Version != "1" || h.RecordCount != 2 {
		t.Errorf("unexpected header: %+v", h)
	}

	var first record
	if err := json.Unmarshal([]byte(lines[1]), &first); err != nil {
		t.Fatal(err)
	}
	if first.Data.Name != "coffee_machine" || first.Data.Count != 5 {
		t.Errorf("unexpected first record: %+v", first.Data)
	}
	if first.Data.LastScan == nil || !first.Data.LastScan.Equal(at) {
		t.Errorf("last scan = %v, want %v", first.Data.LastScan, at)
	}

	var second record
	if err := json.Unmarshal([]byte(lines[2]), &second); err != nil {
		t.Fatal(err)
	}
	if second.Data.Name != "plants" || second.Data.LastScan != nil {
		t.Errorf("unexpected second record: %+v", second.Data)
	}
}

// memDest captures snapshot payloads in memory.
type memDest struct {
	mu     sync.Mutex
	writes [][]byte
}

func (m *memDest) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.writes = append(m.writes, cp)
	return nil
}

func (m *memDest) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.writes)
}

func TestScheduler_ExportsImmediatelyAndStops(t *testing.T) {
	reg := testRegistry(t)
	store := &memStore{records: map[string]model.Record{}}
	dest := &memDest{}

	s := NewScheduler(reg, store, []Destination{dest}, time.Hour, slog.Default())
	s.Start()

	deadline := time.After(2 * time.Second)
	for dest.count() == 0 {
		select {
		case <-deadline:
			t.Fatal("no initial export within deadline")
		case <-time.After(10 * time.Millisecond):
		}
	}

	s.Stop()
	if dest.count() != 1 {
		t.Errorf("expected exactly the initial export, got %d", dest.count())
	}
}
