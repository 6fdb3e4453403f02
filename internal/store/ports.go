// Package store declares the ports the aggregation and transport layers
// depend on for durable expense records. Implementations live under
// internal/storage; the engine itself never mutates a store.
package store

import (
	"context"
	"errors"

	"paisa/internal/core"
)

// ErrNotFound distinguishes a missing record from a storage failure.
// Callers treat it as a non-fatal outcome, not a system error.
var ErrNotFound = errors.New("record not found")

type (
	// RecordLister returns the full snapshot, sorted by date descending
	// (id descending on equal dates so the order is deterministic).
	RecordLister interface {
		ListRecords(ctx context.Context) (core.Snapshot, error)
	}

	// RecordWriter persists a new record. The store assigns the id and
	// defaults a zero date to the current time; the input id is ignored.
	RecordWriter interface {
		InsertRecord(ctx context.Context, r core.ExpenseRecord) (core.ExpenseRecord, error)
	}

	// RecordDeleter hard-deletes by id, returning ErrNotFound for an
	// unknown id.
	RecordDeleter interface {
		DeleteRecord(ctx context.Context, id int64) error
	}

	// RecordGetter looks up a single record by id, returning ErrNotFound
	// for an unknown id.
	RecordGetter interface {
		GetRecord(ctx context.Context, id int64) (core.ExpenseRecord, error)
	}

	// RecordStore is the composed contract a backend must satisfy.
	RecordStore interface {
		RecordLister
		RecordWriter
		RecordDeleter
		RecordGetter
	}
)
