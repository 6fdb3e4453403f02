package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"paisa/internal/core"
	"paisa/internal/store"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "expenses.json")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, path
}

func testRecord(paise int64, date time.Time) core.ExpenseRecord {
	return core.ExpenseRecord{
		Amount:      core.Money{Paise: paise},
		Description: "test expense",
		Category:    core.CategoryFood,
		PaymentMode: core.PaymentCash,
		Date:        date,
	}
}

func TestOpenCreatesFile(t *testing.T) {
	_, path := newTestStore(t)
	if _, err := os.Stat(path); err != nil {
		t.Errorf("data file not created: %v", err)
	}
}

func TestInsertAssignsSequentialIDs(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	first, err := s.InsertRecord(ctx, testRecord(500, time.Now()))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	second, err := s.InsertRecord(ctx, testRecord(300, time.Now()))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
}

func TestInsertDefaultsZeroDate(t *testing.T) {
	s, _ := newTestStore(t)

	created, err := s.InsertRecord(context.Background(), testRecord(500, time.Time{}))
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.Date.IsZero() {
		t.Error("zero date should have been defaulted to now")
	}
}

func TestListOrder(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	// id 1 oldest, id 2 newest, id 3 shares id 2's date.
	if _, err := s.InsertRecord(ctx, testRecord(100, base)); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertRecord(ctx, testRecord(200, base.AddDate(0, 0, 1))); err != nil {
		t.Fatal(err)
	}
	if _, err := s.InsertRecord(ctx, testRecord(300, base.AddDate(0, 0, 1))); err != nil {
		t.Fatal(err)
	}

	snapshot, err := s.ListRecords(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(snapshot) != 3 {
		t.Fatalf("len = %d, want 3", len(snapshot))
	}
	// Date descending, id descending on the shared date.
	if snapshot[0].ID != 3 || snapshot[1].ID != 2 || snapshot[2].ID != 1 {
		t.Errorf("order = %d, %d, %d; want 3, 2, 1", snapshot[0].ID, snapshot[1].ID, snapshot[2].ID)
	}
}

func TestGetRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertRecord(ctx, testRecord(500, time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	got, err := s.GetRecord(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Amount.Paise != 500 {
		t.Errorf("amount = %d, want 500", got.Amount.Paise)
	}

	if _, err := s.GetRecord(ctx, 999); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("get missing = %v, want ErrNotFound", err)
	}
}

func TestDeleteRecord(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	created, err := s.InsertRecord(ctx, testRecord(500, time.Now()))
	if err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	// A second delete of the same id is not an internal error.
	if err := s.DeleteRecord(ctx, created.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}

	n, err := s.CountRecords(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestReloadPreservesRecordsAndIDs(t *testing.T) {
	s, path := newTestStore(t)
	ctx := context.Background()

	date := time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
	rec := testRecord(1234, date)
	rec.Description = "Groceries"
	rec.Notes = "weekly run"
	created, err := s.InsertRecord(ctx, rec)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.DeleteRecord(ctx, created.ID); err != nil {
		t.Fatal(err)
	}
	second, err := s.InsertRecord(ctx, testRecord(500, date))
	if err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	got, err := reopened.GetRecord(ctx, second.ID)
	if err != nil {
		t.Fatalf("get after reload: %v", err)
	}
	if got.Amount.Paise != 500 || !got.Date.Equal(date) {
		t.Errorf("reloaded record = %+v", got)
	}

	// The deleted record's id is not reused after a reload.
	next, err := reopened.InsertRecord(ctx, testRecord(100, date))
	if err != nil {
		t.Fatal(err)
	}
	if next.ID != second.ID+1 {
		t.Errorf("next id = %d, want %d", next.ID, second.ID+1)
	}
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Open(path); err == nil {
		t.Error("Open should fail on a corrupt data file")
	}
}
