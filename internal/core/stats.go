package core

import (
	"bytes"
	"encoding/json"
	"sort"
)

// CategoryDistribution maps every Category to a summed amount in paise.
// The fixed-size array keyed by the enum makes a missing or typo'd key
// unrepresentable: every member is always present, zero by default.
type CategoryDistribution [NumCategories]int64

// PaymentDistribution maps every PaymentMode to a summed amount in paise.
type PaymentDistribution [NumPaymentModes]int64

// Get returns the summed amount for a category.
func (d CategoryDistribution) Get(c Category) int64 {
	return d[c]
}

// Total returns the sum over all categories.
func (d CategoryDistribution) Total() int64 {
	var total int64
	for _, v := range d {
		total += v
	}
	return total
}

// MarshalJSON renders the distribution as a label-to-amount object in
// enumeration declaration order.
func (d CategoryDistribution) MarshalJSON() ([]byte, error) {
	return marshalDistribution(d[:], categoryNames[:])
}

func (d *CategoryDistribution) UnmarshalJSON(data []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for label, v := range m {
		c, err := ParseCategory(label)
		if err != nil {
			return err
		}
		d[c] = v
	}
	return nil
}

// Get returns the summed amount for a payment mode.
func (d PaymentDistribution) Get(m PaymentMode) int64 {
	return d[m]
}

// Total returns the sum over all payment modes.
func (d PaymentDistribution) Total() int64 {
	var total int64
	for _, v := range d {
		total += v
	}
	return total
}

func (d PaymentDistribution) MarshalJSON() ([]byte, error) {
	return marshalDistribution(d[:], paymentModeNames[:])
}

func (d *PaymentDistribution) UnmarshalJSON(data []byte) error {
	var m map[string]int64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for label, v := range m {
		pm, err := ParsePaymentMode(label)
		if err != nil {
			return err
		}
		d[pm] = v
	}
	return nil
}

func marshalDistribution(amounts []int64, labels []string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		v, err := json.Marshal(amounts[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DistributionByCategory sums amounts per category over the subset.
func DistributionByCategory(records []ExpenseRecord) CategoryDistribution {
	var d CategoryDistribution
	for _, r := range records {
		if r.Category.Valid() {
			d[r.Category] += r.Amount.Paise
		}
	}
	return d
}

// DistributionByPaymentMode sums amounts per payment mode over the subset.
func DistributionByPaymentMode(records []ExpenseRecord) PaymentDistribution {
	var d PaymentDistribution
	for _, r := range records {
		if r.PaymentMode.Valid() {
			d[r.PaymentMode] += r.Amount.Paise
		}
	}
	return d
}

// PeriodStats aggregates a filtered subset of records for the statistics
// view. All amounts are in paise.
type PeriodStats struct {
	TotalSpending        int64                `json:"totalSpending"`
	AverageDaily         int64                `json:"averageDaily"`
	HighestExpense       ExpenseRecord        `json:"highestExpense"`
	CategoryDistribution CategoryDistribution `json:"categoryDistribution"`
	PaymentDistribution  PaymentDistribution  `json:"paymentDistribution"`
	TopExpenses          []ExpenseRecord      `json:"topExpenses"`
}

// topExpenseCount is how many records the statistics view surfaces.
const topExpenseCount = 5

// ComputePeriodStats reduces a subset to its period statistics.
// averageDaily divides the total over the number of distinct calendar
// dates present, rounded half-up to the paise. An empty subset yields
// zero totals and a sentinel highest expense (amount 0, "N/A").
func ComputePeriodStats(records []ExpenseRecord) PeriodStats {
	stats := PeriodStats{
		TopExpenses: []ExpenseRecord{},
	}
	if len(records) == 0 {
		stats.HighestExpense = ExpenseRecord{Description: "N/A"}
		return stats
	}

	days := make(map[string]struct{}, len(records))
	highest := records[0]
	for _, r := range records {
		stats.TotalSpending += r.Amount.Paise
		days[dayKey(r.Date)] = struct{}{}
		// Strict greater-than keeps the first record on ties.
		if r.Amount.Paise > highest.Amount.Paise {
			highest = r
		}
	}
	stats.HighestExpense = highest
	stats.AverageDaily = divideRounded(stats.TotalSpending, int64(len(days)))
	stats.CategoryDistribution = DistributionByCategory(records)
	stats.PaymentDistribution = DistributionByPaymentMode(records)

	top := make([]ExpenseRecord, len(records))
	copy(top, records)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Amount.Paise > top[j].Amount.Paise
	})
	if len(top) > topExpenseCount {
		top = top[:topExpenseCount]
	}
	stats.TopExpenses = top

	return stats
}

// DailyPoint is one calendar day's total in a trend series.
type DailyPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Total int64  `json:"total"`
}

// DailyTrend produces a contiguous daily series from the earliest to the
// latest record date in the subset, inclusive, zero-filled for days with
// no records. An empty subset yields an empty series, not placeholders.
func DailyTrend(records []ExpenseRecord) []DailyPoint {
	if len(records) == 0 {
		return []DailyPoint{}
	}

	earliest := StartOfDay(records[0].Date)
	latest := earliest
	totals := make(map[string]int64, len(records))
	for _, r := range records {
		day := StartOfDay(r.Date)
		if day.Before(earliest) {
			earliest = day
		}
		if day.After(latest) {
			latest = day
		}
		totals[dayKey(r.Date)] += r.Amount.Paise
	}

	var series []DailyPoint
	for day := earliest; !day.After(latest); day = day.AddDate(0, 0, 1) {
		key := dayKey(day)
		series = append(series, DailyPoint{Date: key, Total: totals[key]})
	}
	return series
}

// FilterByWindow returns the records whose date falls inside the closed
// window, preserving the subset's original order.
func FilterByWindow(records []ExpenseRecord, w Window) []ExpenseRecord {
	out := make([]ExpenseRecord, 0, len(records))
	for _, r := range records {
		if w.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// divideRounded divides total by n with half-up rounding, n > 0.
func divideRounded(total, n int64) int64 {
	if n <= 0 {
		return 0
	}
	if total >= 0 {
		return (total + n/2) / n
	}
	return -((-total + n/2) / n)
}
