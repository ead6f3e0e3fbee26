package scanstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ferrylab/tagmind/internal/model"
)

// fileRecord is the on-disk shape of one reminder's scan state.
// The timestamp is an ISO-8601 string so the file stays hand-editable.
type fileRecord struct {
	Timestamp string `json:"timestamp,omitempty"`
	Count     int64  `json:"count"`
}

// FileStore is the local-cache backend: a JSON file mapping normalized
// reminder names to scan records. It has no actor support. A read
// immediately following a completed write observes that write.
type FileStore struct {
	path   string
	logger *slog.Logger

	mu      sync.Mutex
	records map[string]fileRecord
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (or creates) the record file at path. A missing or
// corrupt file starts empty rather than failing; losing a cache never blocks
// startup.
func NewFileStore(path string, logger *slog.Logger) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		logger:  logger,
		records: make(map[string]fileRecord),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read record file: %w", err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		logger.Warn("record file is corrupt, starting empty", "path", path, "err", err)
		s.records = make(map[string]fileRecord)
	}
	return s, nil
}

func (s *FileStore) Get(ctx context.Context, name string) (model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr, ok := s.records[name]
	if !ok {
		return model.Record{}, nil
	}

	rec := model.Record{Count: fr.Count}
	if fr.Timestamp != "" {
		t, err := time.Parse(time.RFC3339, fr.Timestamp)
		if err != nil {
			// A bad timestamp reads the same as no record.
			s.logger.Warn("unparseable stored timestamp", "name", name, "value", fr.Timestamp)
			return model.Record{}, nil
		}
		rec.LastScan = &t
	}
	return rec, nil
}

func (s *FileStore) Set(ctx context.Context, name string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fr := s.records[name]
	fr.Timestamp = t.Format(time.RFC3339)
	fr.Count++
	s.records[name] = fr

	return s.flushLocked()
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[name]; !ok {
		return nil
	}
	delete(s.records, name)
	return s.flushLocked()
}

func (s *FileStore) Close() error {
	return nil
}

// flushLocked writes the record map atomically via a temp file and rename.
// Callers must hold s.mu.
func (s *FileStore) flushLocked() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tagmind-records-*")
	if err != nil {
		return fmt.Errorf("create temp record file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write record file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close record file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace record file: %w", err)
	}
	return nil
}
