// Package backend selects and constructs the record store at process
// start. The store is built once, handed to its consumers by reference,
// and torn down through the returned cleanup func — there is no ambient
// global state.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"paisa/internal/storage"
	"paisa/internal/storage/jsonfile"
	"paisa/internal/store"
)

// Kind names a storage backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSONFile Kind = "jsonfile"
)

// IsValid reports whether the kind is a known backend.
func (k Kind) IsValid() bool {
	switch k {
	case KindSQLite, KindJSONFile:
		return true
	}
	return false
}

func (k Kind) String() string { return string(k) }

// RecordCounter exposes the stored record count for observability.
type RecordCounter interface {
	CountRecords(ctx context.Context) (int64, error)
}

// Store is the full contract a constructed backend satisfies.
type Store interface {
	store.RecordStore
	RecordCounter
}

// Config holds backend construction parameters.
type Config struct {
	Kind         Kind
	SQLiteDBPath string
	JSONDataPath string
}

// Result carries the constructed store and its cleanup function.
type Result struct {
	Store   Store
	Cleanup func() error
}

// New constructs the configured backend.
func New(logger *slog.Logger, cfg Config) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Kind.IsValid() {
		return nil, fmt.Errorf("invalid backend kind: %s", cfg.Kind)
	}

	switch cfg.Kind {
	case KindSQLite:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: repo, Cleanup: repo.Close}, nil

	case KindJSONFile:
		s, err := jsonfile.Open(cfg.JSONDataPath)
		if err != nil {
			return nil, fmt.Errorf("initialize jsonfile backend: %w", err)
		}
		logger.Info("Initialized JSON file backend", "data_path", cfg.JSONDataPath)
		return &Result{Store: s, Cleanup: s.Close}, nil
	}

	return nil, fmt.Errorf("unsupported backend kind: %s", cfg.Kind)
}
