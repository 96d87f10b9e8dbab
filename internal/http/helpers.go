package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"daftar/internal/core"
	"daftar/internal/render"
	"daftar/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrValidation), errors.Is(err, core.ErrConfirmation):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrPINMismatch):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNoDefaultTemplate):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "Request failed", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", core.ErrValidation, err)
	}
	return nil
}

// filterDTO is the wire shape of a filter set. Absent dimensions fall back to
// the wide-open defaults.
type filterDTO struct {
	Month          string `json:"month"`
	CounterpartyID string `json:"counterparty_id"`
	Category       string `json:"category"`
	Currency       string `json:"currency"`
	PaymentStatus  string `json:"payment_status"`
	SearchText     string `json:"search_text"`
	RecordType     string `json:"record_type"`
	ShowDeleted    bool   `json:"show_deleted"`
}

func (d filterDTO) toFilterState() core.FilterState {
	f := core.NewFilterState()
	if d.Month != "" {
		f.Month = d.Month
	}
	if d.CounterpartyID != "" {
		f.CounterpartyID = d.CounterpartyID
	}
	if d.Category != "" {
		f.Category = d.Category
	}
	if d.Currency != "" {
		f.Currency = d.Currency
	}
	if d.PaymentStatus != "" {
		f.PaymentStatus = d.PaymentStatus
	}
	if d.RecordType != "" {
		f.RecordType = d.RecordType
	}
	f.SearchText = d.SearchText
	f.ShowDeleted = d.ShowDeleted
	return f
}

func parseFilterQuery(r *http.Request) core.FilterState {
	q := r.URL.Query()
	d := filterDTO{
		Month:          q.Get("month"),
		CounterpartyID: q.Get("counterparty_id"),
		Category:       q.Get("category"),
		Currency:       q.Get("currency"),
		PaymentStatus:  q.Get("payment_status"),
		SearchText:     q.Get("search"),
		RecordType:     q.Get("record_type"),
		ShowDeleted:    q.Get("show_deleted") == "true",
	}
	return d.toFilterState()
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

var columnLabels = map[string]string{
	render.ColDate:        "Date",
	render.ColType:        "Type",
	render.ColName:        "Name",
	render.ColNumber:      "Number",
	render.ColCategory:    "Category",
	render.ColHours:       "Hours",
	render.ColHourlyRate:  "Hourly Rate",
	render.ColAmount:      "Amount",
	render.ColStatus:      "Status",
	render.ColDescription: "Description",
}

// parseColumns maps column keys to labeled columns. An empty selection means
// the default column set; an unknown key is a validation error.
func parseColumns(keys []string) ([]render.Column, error) {
	if len(keys) == 0 {
		return nil, nil
	}
	cols := make([]render.Column, 0, len(keys))
	for _, key := range keys {
		label, ok := columnLabels[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown column %q", core.ErrValidation, key)
		}
		cols = append(cols, render.Column{Key: key, Label: label})
	}
	return cols, nil
}

// recordDTO is the wire shape of a normalized ledger record. Hours and rate
// render as display strings so absent values arrive as the dash, not zero.
type recordDTO struct {
	Type        string  `json:"type"`
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Name        string  `json:"name"`
	Number      string  `json:"number"`
	Category    string  `json:"category"`
	Hours       string  `json:"hours"`
	HourlyRate  string  `json:"hourly_rate"`
	Amount      float64 `json:"amount"`
	Display     string  `json:"display_amount"`
	Currency    string  `json:"currency"`
	IsPaid      bool    `json:"is_paid"`
	IsOvertime  bool    `json:"is_overtime"`
	Description string  `json:"description"`
}

func toRecordDTOs(records []core.LedgerRecord) []recordDTO {
	out := make([]recordDTO, len(records))
	for i, r := range records {
		out[i] = recordDTO{
			Type:        r.Type,
			ID:          r.ID,
			Date:        r.RecordDate.Format("2006-01-02"),
			Name:        r.Name,
			Number:      r.Number,
			Category:    r.Category,
			Hours:       r.Hours.Display(),
			HourlyRate:  r.HourlyRate.Display(),
			Amount:      r.Amount,
			Display:     core.FormatAmount(r.Amount, r.Currency),
			Currency:    r.Currency,
			IsPaid:      r.IsPaid,
			IsOvertime:  r.IsOvertime,
			Description: r.Description,
		}
	}
	return out
}

type outcomeDTO struct {
	ID    string `json:"id"`
	Error string `json:"error,omitempty"`
}

func toOutcomeDTOs(outcomes []services.Outcome) []outcomeDTO {
	out := make([]outcomeDTO, len(outcomes))
	for i, o := range outcomes {
		out[i] = outcomeDTO{ID: o.ID}
		if o.Err != nil {
			out[i].Error = o.Err.Error()
		}
	}
	return out
}
