package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"paisa/internal/core"
	applog "paisa/internal/log"
	"paisa/internal/store"
)

// createExpenseRequest is the inbound payload for POST /api/expenses.
// Amount is either a JSON number (integral values are taken as paise,
// fractional values as rupees rounded to amount*100) or a decimal
// string of rupees ("12.34", comma separator accepted).
type createExpenseRequest struct {
	Amount      json.RawMessage `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	PaymentMode string          `json:"paymentMode"`
	Notes       string          `json:"notes"`
	Date        string          `json:"date"`
}

// paiseFromAmount converts the amount field to paise, dispatching on the
// JSON token type.
func paiseFromAmount(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, core.ErrInvalidAmount
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, core.ErrInvalidAmount
		}
		return core.ParseDecimalToPaise(s)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, core.ErrInvalidAmount
	}
	return core.RupeesToPaise(f)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.List(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "List expenses failed",
			applog.FieldOperation, applog.OpList, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	rec, err := s.service.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Get expense failed",
			applog.FieldRecordID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expense")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, errMsg := s.recordFromRequest(req)
	if errMsg != "" {
		writeError(w, http.StatusBadRequest, errMsg)
		return
	}
	if err := rec.Validate(); err != nil {
		if msg := validationMessage(err); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.service.Create(r.Context(), rec)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Create expense failed",
			applog.FieldOperation, applog.OpCreate, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid expense ID")
		return
	}

	err := s.service.Delete(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Expense not found")
		return
	}
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Delete expense failed",
			applog.FieldRecordID, id, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleExpensePage serves the filtered, sorted, paginated list view.
// Query parameters: category, paymentMode, window (today|week|month) or
// an explicit start/end date range, sort (date-desc|date-asc|
// amount-desc|amount-asc), page (1-based).
func (s *Server) handleExpensePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter core.Filter
	if v := q.Get("category"); v != "" {
		cat, err := core.ParseCategory(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Please select a valid category")
			return
		}
		filter.Category = &cat
	}
	if v := q.Get("paymentMode"); v != "" {
		mode, err := core.ParsePaymentMode(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Please select a valid payment mode")
			return
		}
		filter.PaymentMode = &mode
	}
	startParam, endParam := q.Get("start"), q.Get("end")
	switch {
	case startParam != "" || endParam != "":
		if q.Get("window") != "" {
			writeError(w, http.StatusBadRequest, "Use either window or an explicit date range, not both")
			return
		}
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
		win := core.CustomWindow(start, end)
		filter.Window = &win

	case q.Get("window") != "":
		now := s.now()
		var win core.Window
		switch q.Get("window") {
		case "today":
			win = core.DayWindow(now)
		case "week":
			win = core.WeekWindow(now)
		case "month":
			win = core.MonthWindow(now)
		default:
			writeError(w, http.StatusBadRequest, "Invalid window: must be today, week or month")
			return
		}
		filter.Window = &win
	}

	sortKey, err := core.ParseSortKey(q.Get("sort"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid sort key")
		return
	}

	page := 1
	if v := q.Get("page"); v != "" {
		p, ok := parseID(v)
		if !ok {
			writeError(w, http.StatusBadRequest, "Invalid page number")
			return
		}
		page = int(p)
	}

	result, err := s.service.Page(r.Context(), filter, sortKey, page)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Expense page failed",
			applog.FieldOperation, applog.OpList, applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch expenses")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// recordFromRequest converts the inbound payload to a domain record,
// returning a user-facing message on invalid input.
func (s *Server) recordFromRequest(req createExpenseRequest) (core.ExpenseRecord, string) {
	paise, err := paiseFromAmount(req.Amount)
	if err != nil {
		return core.ExpenseRecord{}, "Amount must be greater than 0"
	}

	category, err := core.ParseCategory(sanitizeInput(req.Category))
	if err != nil {
		return core.ExpenseRecord{}, "Please select a valid category"
	}

	mode, err := core.ParsePaymentMode(sanitizeInput(req.PaymentMode))
	if err != nil {
		return core.ExpenseRecord{}, "Please select a valid payment mode"
	}

	rec := core.ExpenseRecord{
		Amount:      core.Money{Paise: paise},
		Description: sanitizeInput(req.Description),
		Category:    category,
		PaymentMode: mode,
		Notes:       sanitizeInput(req.Notes),
	}

	if req.Date != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			return core.ExpenseRecord{}, "Invalid date format"
		}
		rec.Date = date
	}

	return rec, ""
}

// validationMessage maps domain validation errors to user-facing text;
// it returns "" for non-validation errors.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidAmount):
		return "Amount must be greater than 0"
	case errors.Is(err, core.ErrEmptyDescription):
		return "Description is required"
	case errors.Is(err, core.ErrInvalidCategory):
		return "Please select a valid category"
	case errors.Is(err, core.ErrInvalidPaymentMode):
		return "Please select a valid payment mode"
	}
	return ""
}
