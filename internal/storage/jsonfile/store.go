// Package jsonfile implements the record store as an in-memory map
// persisted to a single JSON file. Every mutation is written to disk
// before it is acknowledged; a failed write rolls the in-memory state
// back so memory and file never diverge.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"paisa/internal/core"
	"paisa/internal/store"
)

// Store is a store.RecordStore backed by a JSON file.
type Store struct {
	mu      sync.Mutex
	path    string
	records map[int64]core.ExpenseRecord
	nextID  int64
}

// Open loads the store from path, creating an empty file if none exists.
// nextID is seeded one above the highest stored id so ids are never
// reused within a file's lifetime.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    path,
		records: make(map[int64]core.ExpenseRecord),
		nextID:  1,
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := s.persistLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var loaded []core.ExpenseRecord
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse data file %s: %w", path, err)
	}
	for _, rec := range loaded {
		s.records[rec.ID] = rec
		if rec.ID >= s.nextID {
			s.nextID = rec.ID + 1
		}
	}
	return s, nil
}

func (s *Store) Close() error { return nil }

// InsertRecord implements store.RecordWriter: assign id, default date,
// mutate, persist, acknowledge. On a persist failure the record is
// removed again and the id is not consumed.
func (s *Store) InsertRecord(_ context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = s.nextID
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}
	s.records[rec.ID] = rec

	if err := s.persistLocked(); err != nil {
		delete(s.records, rec.ID)
		return core.ExpenseRecord{}, fmt.Errorf("persist insert: %w", err)
	}
	s.nextID++
	return rec, nil
}

// ListRecords implements store.RecordLister, sorted by date descending
// with id descending as the tie-break.
func (s *Store) ListRecords(_ context.Context) (core.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(core.Snapshot, 0, len(s.records))
	for _, rec := range s.records {
		snapshot = append(snapshot, rec)
	}
	sort.Slice(snapshot, func(i, j int) bool {
		if !snapshot[i].Date.Equal(snapshot[j].Date) {
			return snapshot[i].Date.After(snapshot[j].Date)
		}
		return snapshot[i].ID > snapshot[j].ID
	})
	return snapshot, nil
}

// GetRecord implements store.RecordGetter.
func (s *Store) GetRecord(_ context.Context, id int64) (core.ExpenseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return core.ExpenseRecord{}, store.ErrNotFound
	}
	return rec, nil
}

// DeleteRecord implements store.RecordDeleter. An unknown id returns
// store.ErrNotFound; a persist failure restores the record.
func (s *Store) DeleteRecord(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return store.ErrNotFound
	}
	delete(s.records, id)

	if err := s.persistLocked(); err != nil {
		s.records[id] = rec
		return fmt.Errorf("persist delete: %w", err)
	}
	return nil
}

// CountRecords returns the number of stored records.
func (s *Store) CountRecords(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.records)), nil
}

// persistLocked writes the full record set to the data file. Amounts
// serialize as integer paise and dates as RFC 3339 timestamps via the
// core JSON marshalers. Written atomically: temp file then rename.
func (s *Store) persistLocked() error {
	out := make([]core.ExpenseRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}

	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace data file: %w", err)
	}
	return nil
}
