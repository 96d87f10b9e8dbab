package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"daftar/internal/core"
	"daftar/internal/export"
	"daftar/internal/render"
	"daftar/internal/services"
)

type totalsDTO struct {
	ByCurrency         map[string]float64 `json:"by_currency"`
	PaidByCurrency     map[string]float64 `json:"paid_by_currency"`
	UnpaidByCurrency   map[string]float64 `json:"unpaid_by_currency"`
	OvertimeByCurrency map[string]float64 `json:"overtime_by_currency"`
	TotalHours         float64            `json:"total_hours"`
	OvertimeHours      float64            `json:"overtime_hours"`
	OvertimeCount      int                `json:"overtime_count"`
}

func toTotalsDTO(t core.Totals) totalsDTO {
	return totalsDTO{
		ByCurrency:         t.ByCurrency,
		PaidByCurrency:     t.PaidByCurrency,
		UnpaidByCurrency:   t.UnpaidByCurrency,
		OvertimeByCurrency: t.OvertimeByCurrency,
		TotalHours:         t.TotalHours,
		OvertimeHours:      t.OvertimeHours,
		OvertimeCount:      t.OvertimeCount,
	}
}

type pageInfoDTO struct {
	Page         int `json:"page"`
	PageSize     int `json:"page_size"`
	TotalPages   int `json:"total_pages"`
	TotalRecords int `json:"total_records"`
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	page, err := s.ledger.GetFilteredLedger(r.Context(), services.LedgerQuery{
		Filters:  parseFilterQuery(r),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", core.DefaultPageSize),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"records": toRecordDTOs(page.Records),
		"totals":  toTotalsDTO(page.Totals),
		"page_info": pageInfoDTO{
			Page:         page.PageInfo.Page,
			PageSize:     page.PageInfo.PageSize,
			TotalPages:   page.PageInfo.TotalPages,
			TotalRecords: page.PageInfo.TotalRecords,
		},
	})
}

type createExpenseRequest struct {
	Date        string   `json:"date"`
	DriverID    string   `json:"driver_id"`
	DriverName  string   `json:"driver_name"`
	Number      string   `json:"driver_number"`
	ExpenseType string   `json:"expense_type"`
	Hours       *float64 `json:"hours"`
	HourlyRate  *float64 `json:"hourly_rate"`
	IsOvertime  bool     `json:"is_overtime"`
	Amount      float64  `json:"amount"`
	Currency    string   `json:"currency"`
	IsPaid      bool     `json:"is_paid"`
	Description string   `json:"description"`
	CreatedBy   string   `json:"created_by"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid date %q", core.ErrValidation, req.Date))
		return
	}

	e := core.RawExpense{
		ExpenseDate:  date,
		DriverID:     req.DriverID,
		DriverName:   req.DriverName,
		DriverNumber: req.Number,
		ExpenseType:  req.ExpenseType,
		IsOvertime:   req.IsOvertime,
		Amount:       req.Amount,
		Currency:     req.Currency,
		IsPaid:       req.IsPaid,
		Description:  req.Description,
		CreatedBy:    req.CreatedBy,
	}
	if req.Hours != nil {
		e.Hours = core.Dec(*req.Hours)
	}
	if req.HourlyRate != nil {
		e.HourlyRate = core.Dec(*req.HourlyRate)
	}

	id, err := s.expenseCreator.CreateExpense(r.Context(), e)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.onMutate()
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type createEmployeeRequest struct {
	Name           string   `json:"employee_name"`
	Number         string   `json:"employee_number"`
	Salary         float64  `json:"salary"`
	Currency       string   `json:"currency"`
	PaymentDate    string   `json:"payment_date"`
	IsPaid         bool     `json:"is_paid"`
	AssignedMonths []string `json:"assigned_months"`
	CreatedBy      string   `json:"created_by"`
}

func (s *Server) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req createEmployeeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Name == "" {
		writeError(w, r, fmt.Errorf("%w: employee name is required", core.ErrValidation))
		return
	}
	date, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid payment date %q", core.ErrValidation, req.PaymentDate))
		return
	}

	id, err := s.employeeCreator.CreateEmployee(r.Context(), core.RawEmployee{
		EmployeeName:   req.Name,
		EmployeeNumber: req.Number,
		Salary:         req.Salary,
		Currency:       req.Currency,
		PaymentDate:    date,
		IsPaid:         req.IsPaid,
		AssignedMonths: req.AssignedMonths,
		CreatedBy:      req.CreatedBy,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.onMutate()
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type lifecycleRequest struct {
	Type string   `json:"type"`
	IDs  []string `json:"ids"`
	PIN  string   `json:"pin"`
}

func (s *Server) handleSoftDelete(w http.ResponseWriter, r *http.Request) {
	var req lifecycleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcomes, err := s.lifecycle.SoftDelete(r.Context(), req.Type, req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": toOutcomeDTOs(outcomes)})
}

func (s *Server) handleRecover(w http.ResponseWriter, r *http.Request) {
	var req lifecycleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcomes, err := s.lifecycle.Recover(r.Context(), req.Type, req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": toOutcomeDTOs(outcomes)})
}

func (s *Server) handlePermanentDelete(w http.ResponseWriter, r *http.Request) {
	var req lifecycleRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	outcomes, err := s.lifecycle.PermanentDelete(r.Context(), req.Type, req.IDs, req.PIN)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"outcomes": toOutcomeDTOs(outcomes)})
}

type resetRequest struct {
	Phrase string `json:"phrase"`
	PIN    string `json:"pin"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.lifecycle.ResetAll(r.Context(), req.Phrase, req.PIN); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type templateDTO struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Name      string `json:"name"`
	HTMLBody  string `json:"html_body"`
	CSSText   string `json:"css_text"`
	IsDefault bool   `json:"is_default"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]templateDTO, len(templates))
	for i, t := range templates {
		out[i] = templateDTO{
			ID: t.ID, Type: t.Type, Name: t.Name,
			HTMLBody: t.HTMLBody, CSSText: t.CSSText, IsDefault: t.IsDefault,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"templates": out})
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateDTO
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Type != render.TemplateBulkReport && req.Type != render.TemplateReceipt {
		writeError(w, r, fmt.Errorf("%w: unknown template type %q", core.ErrValidation, req.Type))
		return
	}
	id, err := s.templateCreator.CreateTemplate(r.Context(), render.Template{
		Type: req.Type, Name: req.Name,
		HTMLBody: req.HTMLBody, CSSText: req.CSSText,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

type setDefaultTemplateRequest struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

func (s *Server) handleSetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	var req setDefaultTemplateRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.templates.SetDefault(r.Context(), req.Type, req.ID); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	value, err := s.settingsReader.GetSetting(r.Context(), key)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

type putSettingRequest struct {
	Value string `json:"value"`
}

func (s *Server) handlePutSetting(w http.ResponseWriter, r *http.Request) {
	var req putSettingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.settingsWriter.SetSetting(r.Context(), chi.URLParam(r, "key"), req.Value); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type exportRequest struct {
	Filters      filterDTO `json:"filters"`
	SelectionIDs []string  `json:"selection_ids"`
	Columns      []string  `json:"columns"`
	TemplateType string    `json:"template_type"`
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cols, err := parseColumns(req.Columns)
	if err != nil {
		writeError(w, r, err)
		return
	}
	out, err := s.export.ExportCSV(r.Context(), services.ExportScope{
		Filters:      req.Filters.toFilterState(),
		SelectionIDs: req.SelectionIDs,
	}, cols)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cols, err := parseColumns(req.Columns)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if len(cols) == 0 {
		cols = render.DefaultColumns
	}

	records, totals, err := s.export.ResolveScope(r.Context(), services.ExportScope{
		Filters:      req.Filters.toFilterState(),
		SelectionIDs: req.SelectionIDs,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	buf, err := export.WriteXLSX(records, cols, services.BuildTotalRows(totals, cols))
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.xlsx"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	cols, err := parseColumns(req.Columns)
	if err != nil {
		writeError(w, r, err)
		return
	}
	templateType := req.TemplateType
	if templateType == "" {
		templateType = render.TemplateBulkReport
	}

	doc, err := s.export.RenderPrintDocument(r.Context(), services.ExportScope{
		Filters:      req.Filters.toFilterState(),
		SelectionIDs: req.SelectionIDs,
	}, cols, templateType)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
