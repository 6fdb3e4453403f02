package core

import (
	"fmt"
	"time"
)

// Window is a closed date/time interval: Start <= x <= End. Every window
// produced by this file is closed; mixing closed and half-open windows
// across callers is the bug class these helpers exist to prevent.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the closed window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// StartOfDay returns midnight of ref's calendar day in ref's location.
func StartOfDay(ref time.Time) time.Time {
	y, m, d := ref.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ref.Location())
}

// EndOfDay returns the last instant of ref's calendar day.
func EndOfDay(ref time.Time) time.Time {
	return StartOfDay(ref).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// StartOfWeek returns midnight of the Sunday that begins ref's week.
func StartOfWeek(ref time.Time) time.Time {
	return StartOfDay(ref).AddDate(0, 0, -int(ref.Weekday()))
}

// EndOfWeek returns the last instant of the Saturday that ends ref's week.
func EndOfWeek(ref time.Time) time.Time {
	return StartOfWeek(ref).AddDate(0, 0, 7).Add(-time.Nanosecond)
}

// StartOfMonth returns midnight of the first day of ref's month.
func StartOfMonth(ref time.Time) time.Time {
	y, m, _ := ref.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
}

// EndOfMonth returns the last instant of the last day of ref's month.
func EndOfMonth(ref time.Time) time.Time {
	return StartOfMonth(ref).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// StartOfLastMonth returns midnight of the first day of the month before ref's.
func StartOfLastMonth(ref time.Time) time.Time {
	return StartOfMonth(ref).AddDate(0, -1, 0)
}

// EndOfLastMonth returns the last instant of the month before ref's.
func EndOfLastMonth(ref time.Time) time.Time {
	return StartOfMonth(ref).Add(-time.Nanosecond)
}

// DayWindow is the closed window covering ref's calendar day.
func DayWindow(ref time.Time) Window {
	return Window{Start: StartOfDay(ref), End: EndOfDay(ref)}
}

// WeekWindow is the closed Sunday-to-Saturday window containing ref.
func WeekWindow(ref time.Time) Window {
	return Window{Start: StartOfWeek(ref), End: EndOfWeek(ref)}
}

// MonthWindow is the closed calendar-month window containing ref.
func MonthWindow(ref time.Time) Window {
	return Window{Start: StartOfMonth(ref), End: EndOfMonth(ref)}
}

// LastWeekWindow is the closed week window immediately before ref's week.
func LastWeekWindow(ref time.Time) Window {
	start := StartOfWeek(ref).AddDate(0, 0, -7)
	return Window{Start: start, End: start.AddDate(0, 0, 7).Add(-time.Nanosecond)}
}

// LastMonthWindow is the closed window covering the previous calendar month.
func LastMonthWindow(ref time.Time) Window {
	return Window{Start: StartOfLastMonth(ref), End: EndOfLastMonth(ref)}
}

// Period names a statistics time window relative to "now".
type Period string

const (
	PeriodWeek        Period = "week"
	PeriodMonth       Period = "month"
	PeriodLastMonth   Period = "last-month"
	PeriodThreeMonths Period = "3months"
	PeriodCustom      Period = "custom"
)

// ParsePeriod validates a period selector from the transport layer.
func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodWeek, PeriodMonth, PeriodLastMonth, PeriodThreeMonths, PeriodCustom:
		return Period(s), nil
	}
	return "", fmt.Errorf("invalid period %q", s)
}

// PeriodWindow resolves a named period to its closed window relative to
// ref. PeriodCustom has no implicit window and must be resolved by the
// caller from explicit start/end dates.
func PeriodWindow(p Period, ref time.Time) (Window, bool) {
	switch p {
	case PeriodWeek:
		return WeekWindow(ref), true
	case PeriodMonth:
		return MonthWindow(ref), true
	case PeriodLastMonth:
		return LastMonthWindow(ref), true
	case PeriodThreeMonths:
		return Window{Start: StartOfDay(ref.AddDate(0, -3, 0)), End: EndOfDay(ref)}, true
	}
	return Window{}, false
}

// CustomWindow builds a closed window from two calendar dates, inclusive
// on both ends.
func CustomWindow(start, end time.Time) Window {
	return Window{Start: StartOfDay(start), End: EndOfDay(end)}
}

// dayKey is a calendar-day identity in the record's own location,
// used for distinct-day counting and daily bucketing.
func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
