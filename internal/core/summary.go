package core

import (
	"math"
	"time"
)

type (
	// PeriodTotal is a window's summed amount and its signed percent
	// change versus a comparison baseline.
	PeriodTotal struct {
		Total         int64 `json:"total"`
		PercentChange int64 `json:"percentChange"`
	}

	// WeekSummary extends the week's total with distributions over the
	// same window. Every enumeration member is present, zero by default.
	WeekSummary struct {
		Total                int64                `json:"total"`
		PercentChange        int64                `json:"percentChange"`
		CategoryDistribution CategoryDistribution `json:"categoryDistribution"`
		PaymentDistribution  PaymentDistribution  `json:"paymentDistribution"`
	}

	// Summary is the dashboard aggregate: totals for today, this week
	// and this month, plus a fixed trailing-7-day series ending today.
	Summary struct {
		Today       PeriodTotal  `json:"today"`
		Week        WeekSummary  `json:"week"`
		Month       PeriodTotal  `json:"month"`
		DailyTotals []DailyPoint `json:"dailyTotals"`
	}
)

// Comparator supplies the percent-change figures for a summary. The
// interface takes the full snapshot so implementations can derive real
// historical baselines; a fixed implementation can ignore it entirely.
type Comparator interface {
	// PercentChanges returns signed integer percentages for today, week
	// and month given their computed totals.
	PercentChanges(s Snapshot, now time.Time, todayTotal, weekTotal, monthTotal int64) (today, week, month int64)
}

// HistoricalComparator derives baselines from the snapshot itself:
// today versus the average daily spend of the preceding 7 days, the week
// versus last week, the month versus last month.
type HistoricalComparator struct{}

func (HistoricalComparator) PercentChanges(s Snapshot, now time.Time, todayTotal, weekTotal, monthTotal int64) (int64, int64, int64) {
	var trailing int64
	trailingWindow := Window{
		Start: StartOfDay(now).AddDate(0, 0, -7),
		End:   StartOfDay(now).Add(-time.Nanosecond),
	}
	lastWeek := LastWeekWindow(now)
	lastMonth := LastMonthWindow(now)

	var lastWeekTotal, lastMonthTotal int64
	for _, r := range s {
		d := r.Date
		if trailingWindow.Contains(d) {
			trailing += r.Amount.Paise
		}
		if lastWeek.Contains(d) {
			lastWeekTotal += r.Amount.Paise
		}
		if lastMonth.Contains(d) {
			lastMonthTotal += r.Amount.Paise
		}
	}

	todayBaseline := divideRounded(trailing, 7)
	return percentChange(todayTotal, todayBaseline),
		percentChange(weekTotal, lastWeekTotal),
		percentChange(monthTotal, lastMonthTotal)
}

// FixedComparator returns constant percent changes regardless of the
// snapshot, mirroring systems that display placeholder indicators until
// enough history accumulates.
type FixedComparator struct {
	Today, Week, Month int64
}

func (f FixedComparator) PercentChanges(Snapshot, time.Time, int64, int64, int64) (int64, int64, int64) {
	return f.Today, f.Week, f.Month
}

// summaryTrendDays is the fixed length of the dashboard daily series.
const summaryTrendDays = 7

// ComputeSummary reduces the full snapshot to the dashboard summary
// relative to now. Every invocation recomputes from scratch; there is no
// state carried between calls. A nil comparator defaults to
// HistoricalComparator.
func ComputeSummary(s Snapshot, now time.Time, cmp Comparator) Summary {
	if cmp == nil {
		cmp = HistoricalComparator{}
	}

	day := DayWindow(now)
	week := WeekWindow(now)
	month := MonthWindow(now)

	var todayTotal, weekTotal, monthTotal int64
	var catDist CategoryDistribution
	var payDist PaymentDistribution

	// Daily buckets for the 7 calendar days ending today, oldest first.
	daily := make([]DailyPoint, summaryTrendDays)
	bucket := make(map[string]int, summaryTrendDays)
	for i := 0; i < summaryTrendDays; i++ {
		date := StartOfDay(now).AddDate(0, 0, i-summaryTrendDays+1)
		key := dayKey(date)
		daily[i] = DailyPoint{Date: key}
		bucket[key] = i
	}

	for _, r := range s {
		d := r.Date.In(now.Location())
		if day.Contains(d) {
			todayTotal += r.Amount.Paise
		}
		if week.Contains(d) {
			weekTotal += r.Amount.Paise
			if r.Category.Valid() {
				catDist[r.Category] += r.Amount.Paise
			}
			if r.PaymentMode.Valid() {
				payDist[r.PaymentMode] += r.Amount.Paise
			}
		}
		if month.Contains(d) {
			monthTotal += r.Amount.Paise
		}
		if i, ok := bucket[dayKey(d)]; ok {
			daily[i].Total += r.Amount.Paise
		}
	}

	todayPct, weekPct, monthPct := cmp.PercentChanges(s, now, todayTotal, weekTotal, monthTotal)

	return Summary{
		Today: PeriodTotal{Total: todayTotal, PercentChange: todayPct},
		Week: WeekSummary{
			Total:                weekTotal,
			PercentChange:        weekPct,
			CategoryDistribution: catDist,
			PaymentDistribution:  payDist,
		},
		Month:       PeriodTotal{Total: monthTotal, PercentChange: monthPct},
		DailyTotals: daily,
	}
}

// percentChange is the signed integer percent of cur versus base. A zero
// baseline yields 0 rather than an undefined ratio.
func percentChange(cur, base int64) int64 {
	if base == 0 {
		return 0
	}
	return int64(math.Round(float64(cur-base) / float64(base) * 100))
}
