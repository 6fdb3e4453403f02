package core

import (
	"testing"
	"time"
)

// 2025-06-18 is a Wednesday; its week runs Sunday 2025-06-15 through
// Saturday 2025-06-21.
var wednesday = time.Date(2025, 6, 18, 14, 30, 0, 0, time.UTC)

func TestDayWindow(t *testing.T) {
	w := DayWindow(wednesday)

	wantStart := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	wantEnd := time.Date(2025, 6, 19, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	if !w.End.Equal(wantEnd) {
		t.Errorf("End = %v, want %v", w.End, wantEnd)
	}

	if !w.Contains(wednesday) {
		t.Error("window should contain its reference instant")
	}
	if !w.Contains(wantStart) {
		t.Error("window should contain its own start (closed interval)")
	}
	if !w.Contains(wantEnd) {
		t.Error("window should contain its own end (closed interval)")
	}
	if w.Contains(wantEnd.Add(time.Nanosecond)) {
		t.Error("window should not contain the next day's midnight")
	}
}

func TestWeekWindowSundayStart(t *testing.T) {
	w := WeekWindow(wednesday)

	wantStart := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want Sunday %v", w.Start, wantStart)
	}
	if w.Start.Weekday() != time.Sunday {
		t.Errorf("week starts on %v, want Sunday", w.Start.Weekday())
	}
	if got := w.End.Weekday(); got != time.Saturday {
		t.Errorf("week ends on %v, want Saturday", got)
	}
	if !w.Contains(wednesday) {
		t.Error("week window should contain its reference instant")
	}

	// A Sunday reference is its own week start.
	sunday := time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)
	if got := StartOfWeek(sunday); !got.Equal(wantStart) {
		t.Errorf("StartOfWeek(sunday) = %v, want %v", got, wantStart)
	}
}

func TestWeekWindowSpansSevenDays(t *testing.T) {
	w := WeekWindow(wednesday)
	for d := 0; d < 7; d++ {
		day := w.Start.AddDate(0, 0, d).Add(12 * time.Hour)
		if !w.Contains(day) {
			t.Errorf("day %d of the week (%v) not contained", d, day)
		}
	}
	if w.Contains(w.Start.AddDate(0, 0, -1)) {
		t.Error("previous Saturday should not be contained")
	}
	if w.Contains(w.Start.AddDate(0, 0, 7)) {
		t.Error("next Sunday should not be contained")
	}
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(wednesday)

	wantStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !w.Start.Equal(wantStart) {
		t.Errorf("Start = %v, want %v", w.Start, wantStart)
	}
	lastInstant := time.Date(2025, 6, 30, 23, 59, 59, 999999999, time.UTC)
	if !w.Contains(lastInstant) {
		t.Error("last instant of June should be contained")
	}
	if w.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("July 1st midnight should not be contained")
	}
}

func TestLastWindows(t *testing.T) {
	lw := LastWeekWindow(wednesday)
	if want := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC); !lw.Start.Equal(want) {
		t.Errorf("LastWeekWindow.Start = %v, want %v", lw.Start, want)
	}
	if lw.Contains(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("last week must not overlap this week's Sunday")
	}

	lm := LastMonthWindow(wednesday)
	if want := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC); !lm.Start.Equal(want) {
		t.Errorf("LastMonthWindow.Start = %v, want %v", lm.Start, want)
	}
	if !lm.Contains(time.Date(2025, 5, 31, 23, 0, 0, 0, time.UTC)) {
		t.Error("last day of May should be contained")
	}
	if lm.Contains(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("June 1st should not be contained")
	}
}

func TestParsePeriod(t *testing.T) {
	valid := []string{"week", "month", "last-month", "3months", "custom"}
	for _, s := range valid {
		if _, err := ParsePeriod(s); err != nil {
			t.Errorf("ParsePeriod(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "year", "Week", "lastmonth"} {
		if _, err := ParsePeriod(s); err == nil {
			t.Errorf("ParsePeriod(%q) should fail", s)
		}
	}
}

func TestPeriodWindow(t *testing.T) {
	tests := []struct {
		period    Period
		wantStart time.Time
		wantEnd   time.Time
	}{
		{PeriodWeek, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), EndOfDay(time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC))},
		{PeriodMonth, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), EndOfDay(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))},
		{PeriodLastMonth, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), EndOfDay(time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC))},
		{PeriodThreeMonths, time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), EndOfDay(wednesday)},
	}
	for _, tt := range tests {
		w, ok := PeriodWindow(tt.period, wednesday)
		if !ok {
			t.Errorf("PeriodWindow(%q) not resolvable", tt.period)
			continue
		}
		if !w.Start.Equal(tt.wantStart) {
			t.Errorf("%q: Start = %v, want %v", tt.period, w.Start, tt.wantStart)
		}
		if !w.End.Equal(tt.wantEnd) {
			t.Errorf("%q: End = %v, want %v", tt.period, w.End, tt.wantEnd)
		}
	}

	if _, ok := PeriodWindow(PeriodCustom, wednesday); ok {
		t.Error("PeriodCustom must not resolve to an implicit window")
	}
}

func TestCustomWindowInclusive(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 3, 8, 0, 0, 0, time.UTC)
	w := CustomWindow(start, end)

	if !w.Contains(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("start day's midnight should be contained")
	}
	if !w.Contains(time.Date(2025, 6, 3, 23, 59, 59, 0, time.UTC)) {
		t.Error("end day's evening should be contained")
	}
	if w.Contains(time.Date(2025, 6, 4, 0, 0, 0, 0, time.UTC)) {
		t.Error("day after the end should not be contained")
	}
}
