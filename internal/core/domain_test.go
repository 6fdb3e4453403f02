package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func validRecord() ExpenseRecord {
	return ExpenseRecord{
		Amount:      Money{Paise: 50000},
		Description: "Groceries",
		Category:    CategoryFood,
		PaymentMode: PaymentUPI,
		Date:        time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC),
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ExpenseRecord)
		wantErr error
	}{
		{"valid", func(*ExpenseRecord) {}, nil},
		{"zero amount", func(r *ExpenseRecord) { r.Amount.Paise = 0 }, ErrInvalidAmount},
		{"negative amount", func(r *ExpenseRecord) { r.Amount.Paise = -100 }, ErrInvalidAmount},
		{"empty description", func(r *ExpenseRecord) { r.Description = "" }, ErrEmptyDescription},
		{"whitespace description", func(r *ExpenseRecord) { r.Description = "   " }, ErrEmptyDescription},
		{"invalid category", func(r *ExpenseRecord) { r.Category = Category(99) }, ErrInvalidCategory},
		{"negative category", func(r *ExpenseRecord) { r.Category = Category(-1) }, ErrInvalidCategory},
		{"invalid payment mode", func(r *ExpenseRecord) { r.PaymentMode = PaymentMode(7) }, ErrInvalidPaymentMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)
			err := rec.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("description too long", func(t *testing.T) {
		rec := validRecord()
		rec.Description = strings.Repeat("x", 201)
		if err := rec.Validate(); err == nil {
			t.Error("Validate() should reject descriptions over 200 characters")
		}
	})
}

func TestCategoryParseExact(t *testing.T) {
	for i, name := range []string{"Food", "Travel", "Fun", "Study", "Other"} {
		c, err := ParseCategory(name)
		if err != nil {
			t.Fatalf("ParseCategory(%q) error: %v", name, err)
		}
		if int(c) != i {
			t.Errorf("ParseCategory(%q) = %d, want %d", name, int(c), i)
		}
	}

	// Matching is exact, not case-folded; a near-miss is rejected rather
	// than silently creating a parallel key.
	for _, bad := range []string{"food", "FOOD", "Foods", "Misc", ""} {
		if _, err := ParseCategory(bad); !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("ParseCategory(%q) = %v, want ErrInvalidCategory", bad, err)
		}
	}
}

func TestPaymentModeParseExact(t *testing.T) {
	for i, name := range []string{"Cash", "UPI"} {
		m, err := ParsePaymentMode(name)
		if err != nil {
			t.Fatalf("ParsePaymentMode(%q) error: %v", name, err)
		}
		if int(m) != i {
			t.Errorf("ParsePaymentMode(%q) = %d, want %d", name, int(m), i)
		}
	}
	for _, bad := range []string{"upi", "Card", ""} {
		if _, err := ParsePaymentMode(bad); !errors.Is(err, ErrInvalidPaymentMode) {
			t.Errorf("ParsePaymentMode(%q) = %v, want ErrInvalidPaymentMode", bad, err)
		}
	}
}

func TestEnumJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(CategoryTravel)
	if err != nil {
		t.Fatalf("marshal category: %v", err)
	}
	if string(data) != `"Travel"` {
		t.Errorf("marshal category = %s, want \"Travel\"", data)
	}
	var c Category
	if err := json.Unmarshal(data, &c); err != nil {
		t.Fatalf("unmarshal category: %v", err)
	}
	if c != CategoryTravel {
		t.Errorf("round-trip category = %v, want Travel", c)
	}

	if _, err := json.Marshal(Category(42)); err == nil {
		t.Error("marshaling an out-of-range category should fail")
	}
	if err := json.Unmarshal([]byte(`"Rent"`), &c); err == nil {
		t.Error("unmarshaling an unknown label should fail")
	}
}

func TestMoneyJSONIsInteger(t *testing.T) {
	data, err := json.Marshal(Money{Paise: 1234})
	if err != nil {
		t.Fatalf("marshal money: %v", err)
	}
	if string(data) != "1234" {
		t.Errorf("marshal money = %s, want raw integer 1234", data)
	}

	var m Money
	if err := json.Unmarshal([]byte("500"), &m); err != nil {
		t.Fatalf("unmarshal money: %v", err)
	}
	if m.Paise != 500 {
		t.Errorf("unmarshal money = %d, want 500", m.Paise)
	}
}

func TestExpenseRecordJSON(t *testing.T) {
	rec := validRecord()
	rec.ID = 7
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal record: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["amount"] != float64(50000) {
		t.Errorf("amount = %v, want 50000", raw["amount"])
	}
	if raw["category"] != "Food" {
		t.Errorf("category = %v, want Food", raw["category"])
	}
	if raw["paymentMode"] != "UPI" {
		t.Errorf("paymentMode = %v, want UPI", raw["paymentMode"])
	}
	if _, present := raw["notes"]; present {
		t.Error("empty notes should be omitted")
	}

	var back ExpenseRecord
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal record: %v", err)
	}
	if back.ID != 7 || back.Amount.Paise != 50000 || back.Category != CategoryFood {
		t.Errorf("round-trip record = %+v", back)
	}
}
