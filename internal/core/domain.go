package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Category is the closed set of expense categories. The integer values
// double as indices into CategoryDistribution, so declaration order is
// the canonical presentation order.
type Category int

const (
	CategoryFood Category = iota
	CategoryTravel
	CategoryFun
	CategoryStudy
	CategoryOther

	NumCategories = 5
)

// PaymentMode is the closed set of payment modes.
type PaymentMode int

const (
	PaymentCash PaymentMode = iota
	PaymentUPI

	NumPaymentModes = 2
)

type (
	// Money is an amount in paise (1/100 rupee). All arithmetic stays in
	// integer paise; conversion to rupees happens only for display.
	Money struct {
		Paise int64
	}

	// ExpenseRecord is the sole persisted entity. Records are immutable
	// after creation; the only lifecycle operations are insert and delete.
	ExpenseRecord struct {
		ID          int64       `json:"id"`
		Amount      Money       `json:"amount"`
		Description string      `json:"description"`
		Category    Category    `json:"category"`
		PaymentMode PaymentMode `json:"paymentMode"`
		Notes       string      `json:"notes,omitempty"`
		Date        time.Time   `json:"date"`
	}

	// Snapshot is a point-in-time ordered sequence of all records. The
	// aggregation functions never mutate it.
	Snapshot []ExpenseRecord
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrEmptyDescription   = errors.New("empty description")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
)

var categoryNames = [NumCategories]string{"Food", "Travel", "Fun", "Study", "Other"}

var paymentModeNames = [NumPaymentModes]string{"Cash", "UPI"}

// Categories returns all categories in declaration order.
func Categories() [NumCategories]Category {
	return [NumCategories]Category{CategoryFood, CategoryTravel, CategoryFun, CategoryStudy, CategoryOther}
}

// PaymentModes returns all payment modes in declaration order.
func PaymentModes() [NumPaymentModes]PaymentMode {
	return [NumPaymentModes]PaymentMode{PaymentCash, PaymentUPI}
}

func (c Category) Valid() bool {
	return c >= 0 && int(c) < NumCategories
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory maps a label to its Category. Matching is exact; the
// closed enumeration is the whole point of the typed key.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if s == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCategory, int(c))
	}
	return json.Marshal(categoryNames[c])
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (m PaymentMode) Valid() bool {
	return m >= 0 && int(m) < NumPaymentModes
}

func (m PaymentMode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("PaymentMode(%d)", int(m))
	}
	return paymentModeNames[m]
}

// ParsePaymentMode maps a label to its PaymentMode.
func ParsePaymentMode(s string) (PaymentMode, error) {
	for i, name := range paymentModeNames {
		if s == name {
			return PaymentMode(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPaymentMode, s)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPaymentMode, int(m))
	}
	return json.Marshal(paymentModeNames[m])
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParsePaymentMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Paise <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Rupees returns the rupee value as a float64 for display purposes only.
// Calculations must stay in paise.
func (m Money) Rupees() float64 {
	return float64(m.Paise) / 100.0
}

// MarshalJSON serializes money as the raw paise integer, never a float.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Paise)
}

func (m *Money) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.Paise)
}

func (e ExpenseRecord) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(e.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !e.Category.Valid() {
		return ErrInvalidCategory
	}
	if !e.PaymentMode.Valid() {
		return ErrInvalidPaymentMode
	}
	return nil
}
