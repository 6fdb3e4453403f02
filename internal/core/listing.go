package core

import (
	"fmt"
	"sort"
)

// PageSize is the fixed number of records per list-view page.
const PageSize = 10

// Filter is a conjunctive predicate over independent optional criteria.
// A nil criterion matches everything; set criteria are exact-match (or a
// closed window test for the date). There is no OR logic.
type Filter struct {
	Category    *Category
	PaymentMode *PaymentMode
	Window      *Window
}

// Match reports whether the record satisfies every set criterion.
func (f Filter) Match(r ExpenseRecord) bool {
	if f.Category != nil && r.Category != *f.Category {
		return false
	}
	if f.PaymentMode != nil && r.PaymentMode != *f.PaymentMode {
		return false
	}
	if f.Window != nil && !f.Window.Contains(r.Date) {
		return false
	}
	return true
}

// ApplyFilter returns the matching records in snapshot order.
func ApplyFilter(s Snapshot, f Filter) []ExpenseRecord {
	out := make([]ExpenseRecord, 0, len(s))
	for _, r := range s {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortKey selects a list-view ordering.
type SortKey string

const (
	SortDateDesc   SortKey = "date-desc"
	SortDateAsc    SortKey = "date-asc"
	SortAmountDesc SortKey = "amount-desc"
	SortAmountAsc  SortKey = "amount-asc"
)

// ParseSortKey validates a sort selector; empty defaults to date-desc.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDateDesc, nil
	}
	switch SortKey(s) {
	case SortDateDesc, SortDateAsc, SortAmountDesc, SortAmountAsc:
		return SortKey(s), nil
	}
	return "", fmt.Errorf("invalid sort key %q", s)
}

// SortRecords returns a sorted copy. The sort is stable: records with an
// equal key retain their relative order from the input.
func SortRecords(records []ExpenseRecord, key SortKey) []ExpenseRecord {
	out := make([]ExpenseRecord, len(records))
	copy(out, records)
	var less func(i, j int) bool
	switch key {
	case SortDateAsc:
		less = func(i, j int) bool { return out[i].Date.Before(out[j].Date) }
	case SortAmountDesc:
		less = func(i, j int) bool { return out[i].Amount.Paise > out[j].Amount.Paise }
	case SortAmountAsc:
		less = func(i, j int) bool { return out[i].Amount.Paise < out[j].Amount.Paise }
	default: // SortDateDesc
		less = func(i, j int) bool { return out[i].Date.After(out[j].Date) }
	}
	sort.SliceStable(out, less)
	return out
}

// Page is one display-ready slice of a filtered, sorted record set.
type Page struct {
	Records      []ExpenseRecord `json:"records"`
	CurrentPage  int             `json:"currentPage"`
	PageSize     int             `json:"pageSize"`
	TotalRecords int             `json:"totalRecords"`
	TotalPages   int             `json:"totalPages"`
}

// Paginate slices records into the 1-based page. A page past the end
// yields an empty record list with the pagination metadata intact.
func Paginate(records []ExpenseRecord, currentPage int) Page {
	if currentPage < 1 {
		currentPage = 1
	}
	total := len(records)
	totalPages := (total + PageSize - 1) / PageSize

	start := (currentPage - 1) * PageSize
	end := currentPage * PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	page := make([]ExpenseRecord, end-start)
	copy(page, records[start:end])

	return Page{
		Records:      page,
		CurrentPage:  currentPage,
		PageSize:     PageSize,
		TotalRecords: total,
		TotalPages:   totalPages,
	}
}
