package http

import (
	"net/http"

	"paisa/internal/core"
	applog "paisa/internal/log"
)

// handleSummary serves the dashboard aggregate: today/week/month totals
// with percent-change indicators, week distributions and the trailing
// 7-day series.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.service.Summary(r.Context(), s.now())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Summary computation failed",
			applog.FieldOperation, applog.OpSummary, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to calculate expense summary")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleStats serves period statistics and the daily trend for a named
// or custom window. Query parameters: period (week|month|last-month|
// 3months|custom); custom additionally requires start and end dates.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	periodParam := q.Get("period")
	if periodParam == "" {
		periodParam = string(core.PeriodWeek)
	}
	period, err := core.ParsePeriod(periodParam)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period: must be week, month, last-month, 3months or custom")
		return
	}

	var window core.Window
	if period == core.PeriodCustom {
		startParam, endParam := q.Get("start"), q.Get("end")
		if startParam == "" || endParam == "" {
			writeError(w, http.StatusBadRequest, "Start date and end date are required")
			return
		}
		start, err := parseDate(startParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		end, err := parseDate(endParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid date format")
			return
		}
		if end.Before(start) {
			writeError(w, http.StatusBadRequest, "End date must not be before start date")
			return
		}
		window = core.CustomWindow(start, end)
	} else {
		window, _ = core.PeriodWindow(period, s.now())
	}

	result, err := s.service.PeriodStats(r.Context(), window)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Period stats failed",
			applog.FieldOperation, applog.OpStats, applog.FieldPeriod, string(period), applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to calculate statistics")
		return
	}
	writeJSON(w, http.StatusOK, result)
}
