package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"daftar/internal/core"
	"daftar/internal/render"
)

// ExportScope names the record set an export or print applies to. A non-empty
// selection overrides the filter scope entirely; the filter set otherwise
// defines the scope. Pagination never constrains an export.
type ExportScope struct {
	Filters      core.FilterState
	SelectionIDs []string
}

// ExportService ties the filter engine, aggregator, and template engine
// together to produce CSV, XLSX, and print-HTML artifacts.
type ExportService struct {
	expenses  ExpenseStore
	employees EmployeeStore
	templates TemplateStore
	settings  SettingsReader

	now func() time.Time
}

func NewExportService(expenses ExpenseStore, employees EmployeeStore, templates TemplateStore, settings SettingsReader) *ExportService {
	return &ExportService{
		expenses:  expenses,
		employees: employees,
		templates: templates,
		settings:  settings,
		now:       time.Now,
	}
}

// ResolveScope materializes the scope into a sorted record set and its
// totals. With a selection, records are picked by id from the complete merged
// set regardless of filters; without one, the full filtered set is used.
func (s *ExportService) ResolveScope(ctx context.Context, scope ExportScope) ([]core.LedgerRecord, core.Totals, error) {
	expenses, err := s.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, core.Totals{}, fmt.Errorf("list expenses: %w", err)
	}
	employees, err := s.employees.ListEmployees(ctx)
	if err != nil {
		return nil, core.Totals{}, fmt.Errorf("list employees: %w", err)
	}

	var records []core.LedgerRecord
	if len(scope.SelectionIDs) > 0 {
		selected := make(map[string]bool, len(scope.SelectionIDs))
		for _, id := range scope.SelectionIDs {
			selected[id] = true
		}
		for _, r := range core.NormalizeAll(expenses, employees) {
			if selected[r.ID] {
				records = append(records, r)
			}
		}
	} else {
		filteredExpenses, filteredEmployees := scope.Filters.Filter(expenses, employees)
		records = core.NormalizeAll(filteredExpenses, filteredEmployees)
	}

	core.SortByDateDesc(records)
	return records, core.Aggregate(records), nil
}

// ExportCSV renders the scoped set as spreadsheet text in the strict dialect.
func (s *ExportService) ExportCSV(ctx context.Context, scope ExportScope, cols []render.Column) (string, error) {
	records, totals, err := s.ResolveScope(ctx, scope)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		cols = render.DefaultColumns
	}
	out := render.RenderCSV(records, cols, BuildTotalRows(totals, cols))
	slog.InfoContext(ctx, "CSV export rendered", "records", len(records), "columns", len(cols))
	return out, nil
}

// RenderPrintDocument renders the scoped set through the default template of
// the requested type. A missing default template is a configuration error
// surfaced to the caller, never swallowed.
func (s *ExportService) RenderPrintDocument(ctx context.Context, scope ExportScope, cols []render.Column, templateType string) (string, error) {
	tpl, err := s.defaultTemplate(ctx, templateType)
	if err != nil {
		return "", err
	}
	records, totals, err := s.ResolveScope(ctx, scope)
	if err != nil {
		return "", err
	}
	if len(cols) == 0 {
		cols = render.DefaultColumns
	}

	meta, err := s.documentMeta(ctx, scope.Filters)
	if err != nil {
		return "", err
	}
	if templateType == render.TemplateReceipt && len(records) == 1 {
		r := records[0]
		qr, qrErr := render.QRDataURI("daftar:"+r.Type+":"+r.ID+":"+core.FormatDecimal(r.Amount), 0)
		if qrErr != nil {
			slog.WarnContext(ctx, "Receipt QR generation failed", "id", r.ID, "error", qrErr)
		} else {
			meta.QRDataURI = qr
		}
	}

	doc := render.RenderDocument(tpl, records, BuildTotalRows(totals, cols), cols, meta)
	slog.InfoContext(ctx, "Print document rendered",
		"template_type", templateType, "records", len(records))
	return doc, nil
}

// BuildTotalRows synthesizes the summary rows for a rendered document: one
// per currency bucket, an hours row when an hours column is selected and any
// hours were worked, and overtime rows when overtime aggregates are non-zero.
func BuildTotalRows(totals core.Totals, cols []render.Column) []render.TotalRow {
	var rows []render.TotalRow

	for _, cur := range sortedCurrencies(totals.ByCurrency) {
		rows = append(rows, render.TotalRow{
			Label: "Total (" + cur + ")",
			Value: core.FormatAmount(totals.ByCurrency[cur], cur),
		})
	}
	if render.HasHoursColumn(cols) && totals.TotalHours > 0 {
		rows = append(rows, render.TotalRow{
			Label: "Total Hours",
			Value: core.FormatDecimal(totals.TotalHours),
			Class: "hours-total",
		})
	}
	if totals.OvertimeCount > 0 {
		rows = append(rows, render.TotalRow{
			Label: "Overtime Entries",
			Value: strconv.Itoa(totals.OvertimeCount),
			Class: "overtime-total",
		})
		if totals.OvertimeHours > 0 {
			rows = append(rows, render.TotalRow{
				Label: "Overtime Hours",
				Value: core.FormatDecimal(totals.OvertimeHours),
				Class: "overtime-total",
			})
		}
		for _, cur := range sortedCurrencies(totals.OvertimeByCurrency) {
			rows = append(rows, render.TotalRow{
				Label: "Overtime (" + cur + ")",
				Value: core.FormatAmount(totals.OvertimeByCurrency[cur], cur),
				Class: "overtime-total",
			})
		}
	}
	return rows
}

func (s *ExportService) defaultTemplate(ctx context.Context, templateType string) (render.Template, error) {
	templates, err := s.templates.ListTemplates(ctx)
	if err != nil {
		return render.Template{}, fmt.Errorf("list templates: %w", err)
	}
	for _, t := range templates {
		if t.Type == templateType && t.IsDefault {
			return t, nil
		}
	}
	return render.Template{}, fmt.Errorf("%w: %s", core.ErrNoDefaultTemplate, templateType)
}

func (s *ExportService) documentMeta(ctx context.Context, filters core.FilterState) (render.DocumentMeta, error) {
	meta := render.DocumentMeta{
		Period:    filters.Month,
		PrintedAt: s.now().Format("2006-01-02 15:04"),
	}
	if meta.Period == "" {
		meta.Period = core.FilterAll
	}

	var err error
	if meta.CompanyName, err = s.settings.GetSetting(ctx, SettingCompanyName); err != nil {
		return meta, fmt.Errorf("read company name: %w", err)
	}
	if meta.Tagline, err = s.settings.GetSetting(ctx, SettingTagline); err != nil {
		return meta, fmt.Errorf("read tagline: %w", err)
	}
	if meta.LogoURL, err = s.settings.GetSetting(ctx, SettingLogoURL); err != nil {
		return meta, fmt.Errorf("read logo url: %w", err)
	}
	return meta, nil
}

func sortedCurrencies(buckets map[string]float64) []string {
	currencies := make([]string, 0, len(buckets))
	for cur := range buckets {
		currencies = append(currencies, cur)
	}
	sort.Strings(currencies)
	return currencies
}
