package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gamble-bot/internal/model"
)

// JSONFile stores all records as one flat JSON document keyed by user id and
// rewrites the whole file on every upsert. The write is serialized by a
// single mutex and goes through a temp-file rename so a crash mid-write never
// truncates the document.
type JSONFile struct {
	path    string
	mu      sync.RWMutex
	records map[string]*model.PlayerRecord
}

// NewJSONFile opens (or initializes) the store at path, loading the full
// document into memory. A missing file starts an empty store.
func NewJSONFile(path string) (*JSONFile, error) {
	s := &JSONFile{
		path:    path,
		records: make(map[string]*model.PlayerRecord),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	for id, rec := range s.records {
		rec.UserID = id
	}
	return s, nil
}

// Get returns a copy of the stored record.
func (s *JSONFile) Get(ctx context.Context, userID string) (*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

// Upsert replaces the record and rewrites the file.
func (s *JSONFile) Upsert(ctx context.Context, rec *model.PlayerRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.UserID] = rec.Clone()
	return s.flush()
}

// All returns copies of every stored record.
func (s *JSONFile) All(ctx context.Context) ([]*model.PlayerRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.PlayerRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Clone())
	}
	return out, nil
}

// Close is a no-op; the file is rewritten on every mutation.
func (s *JSONFile) Close() error { return nil }

// flush rewrites the whole document. Caller holds the write lock.
func (s *JSONFile) flush() error {
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".players-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}
