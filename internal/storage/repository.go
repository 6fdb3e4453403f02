// Package storage implements the durable record stores: an SQLite
// repository here and a JSON-file store under storage/jsonfile.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"paisa/internal/core"
	"paisa/internal/store"

	_ "modernc.org/sqlite"
)

// dateLayout is the timestamp format used in the date column. Dates are
// normalized to UTC and the fractional seconds are fixed-width, so the
// stored strings compare lexicographically in chronological order and
// ORDER BY on the date index is a real date sort. RFC3339Nano would not
// do: it strips trailing zeros and keeps the original offset.
const dateLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteRepository is a store.RecordStore backed by a local SQLite file.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if necessary) the database at
// dbPath and runs migrations.
func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// InsertRecord implements store.RecordWriter. A zero date defaults to
// the current time. The row is durably written before the assigned id is
// returned, so an acknowledged insert is never lost to a crash.
func (r *SQLiteRepository) InsertRecord(ctx context.Context, rec core.ExpenseRecord) (core.ExpenseRecord, error) {
	if rec.Date.IsZero() {
		rec.Date = time.Now()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (amount_paise, description, category, payment_mode, notes, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.Amount.Paise, rec.Description, rec.Category.String(), rec.PaymentMode.String(),
		rec.Notes, rec.Date.UTC().Format(dateLayout))
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("insert expense: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", rec.ID,
		"description", rec.Description,
		"amount", core.FormatRupees(rec.Amount.Paise),
		"category", rec.Category.String())

	return rec, nil
}

// ListRecords implements store.RecordLister, sorted by date descending
// with id descending as the tie-break.
func (r *SQLiteRepository) ListRecords(ctx context.Context) (core.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, amount_paise, description, category, payment_mode, notes, date
		 FROM expenses ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	snapshot := core.Snapshot{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		snapshot = append(snapshot, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return snapshot, nil
}

// GetRecord implements store.RecordGetter.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (core.ExpenseRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, amount_paise, description, category, payment_mode, notes, date
		 FROM expenses WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ExpenseRecord{}, store.ErrNotFound
	}
	if err != nil {
		return core.ExpenseRecord{}, err
	}
	return rec, nil
}

// DeleteRecord implements store.RecordDeleter. Deleting an unknown id
// returns store.ErrNotFound and changes nothing.
func (r *SQLiteRepository) DeleteRecord(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}

	slog.InfoContext(ctx, "Expense deleted from SQLite", "id", id)
	return nil
}

// CountRecords returns the number of stored records, used by the metrics
// gauge.
func (r *SQLiteRepository) CountRecords(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM expenses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (core.ExpenseRecord, error) {
	var (
		rec      core.ExpenseRecord
		category string
		mode     string
		date     string
	)
	if err := row.Scan(&rec.ID, &rec.Amount.Paise, &rec.Description, &category, &mode, &rec.Notes, &date); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.ExpenseRecord{}, err
		}
		return core.ExpenseRecord{}, fmt.Errorf("scan expense: %w", err)
	}

	cat, err := core.ParseCategory(category)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("stored category: %w", err)
	}
	rec.Category = cat

	pm, err := core.ParsePaymentMode(mode)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("stored payment mode: %w", err)
	}
	rec.PaymentMode = pm

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return core.ExpenseRecord{}, fmt.Errorf("stored date: %w", err)
	}
	rec.Date = parsed

	return rec, nil
}
