// Package render is the templated document engine: placeholder substitution,
// table fragment generation, and the CSV dialect used for spreadsheet export.
// Everything here is a pure string transform; writing artifacts anywhere is
// the caller's concern.
package render

import (
	"html"
	"regexp"
	"strconv"
	"strings"

	"daftar/internal/core"
)

// Template is a stored document skeleton. HTMLBody carries {{token}}
// placeholders; exactly one template per Type may be the default at a time.
type Template struct {
	ID        string
	Type      string
	Name      string
	HTMLBody  string
	CSSText   string
	IsDefault bool
}

// Template types recognized by the print paths.
const (
	TemplateBulkReport = "bulk_report"
	TemplateReceipt    = "receipt"
)

// Column selects and labels one ledger field for tables and exports. The
// caller's slice order is the rendered column order.
type Column struct {
	Key   string
	Label string
}

// Column keys understood by cell rendering.
const (
	ColDate        = "date"
	ColType        = "type"
	ColName        = "name"
	ColNumber      = "number"
	ColCategory    = "category"
	ColHours       = "hours"
	ColHourlyRate  = "hourly_rate"
	ColAmount      = "amount"
	ColStatus      = "status"
	ColDescription = "description"
)

// DefaultColumns is the column set used when the caller selects nothing.
var DefaultColumns = []Column{
	{Key: ColDate, Label: "Date"},
	{Key: ColName, Label: "Name"},
	{Key: ColCategory, Label: "Category"},
	{Key: ColHours, Label: "Hours"},
	{Key: ColAmount, Label: "Amount"},
	{Key: ColStatus, Label: "Status"},
}

// TotalRow is a synthesized summary line appended after the record rows.
// The export orchestrator builds these; the engine only renders them.
type TotalRow struct {
	Label string
	Value string
	Class string
}

// DocumentMeta carries the header/footer values available to templates.
type DocumentMeta struct {
	CompanyName string
	Tagline     string
	LogoURL     string
	Period      string
	PrintedAt   string
	QRDataURI   string
}

var placeholderRe = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)

// Substitute replaces every known {{token}} with its value. Unknown tokens
// are left as literal text so templates degrade gracefully when a field is
// omitted.
func Substitute(s string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(tok string) string {
		name := tok[2 : len(tok)-2]
		if v, ok := values[name]; ok {
			return v
		}
		return tok
	})
}

// RenderDocument produces the final print-ready HTML for a template over an
// already-scoped record set. Record rows, headers, and total rows are injected
// through the table placeholders; everything else comes from meta.
func RenderDocument(t Template, records []core.LedgerRecord, totalRows []TotalRow, cols []Column, meta DocumentMeta) string {
	if len(cols) == 0 {
		cols = DefaultColumns
	}

	values := map[string]string{
		"company_name":  html.EscapeString(meta.CompanyName),
		"tagline":       html.EscapeString(meta.Tagline),
		"logo":          html.EscapeString(meta.LogoURL),
		"period":        html.EscapeString(meta.Period),
		"printed_at":    html.EscapeString(meta.PrintedAt),
		"record_count":  strconv.Itoa(len(records)),
		"table_headers": TableHeaders(cols),
		"table_rows":    TableRows(records, cols),
		"total_rows":    TotalRowsHTML(totalRows, len(cols)),
	}
	if meta.QRDataURI != "" {
		values["qr_code"] = `<img class="receipt-qr" src="` + meta.QRDataURI + `" alt="QR">`
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html dir=\"rtl\">\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString(t.CSSText)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(Substitute(t.HTMLBody, values))
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// TableHeaders renders the header row fragment in the caller's column order.
func TableHeaders(cols []Column) string {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, c := range cols {
		b.WriteString("<th>")
		b.WriteString(html.EscapeString(c.Label))
		b.WriteString("</th>")
	}
	b.WriteString("</tr>")
	return b.String()
}

// TableRows renders one <tr> per record. Row styling classes derive only from
// record fields: overtime rows, employee rows, and the paid/unpaid state.
func TableRows(records []core.LedgerRecord, cols []Column) string {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(`<tr class="`)
		b.WriteString(rowClass(r))
		b.WriteString(`">`)
		for _, c := range cols {
			b.WriteString("<td>")
			b.WriteString(html.EscapeString(CellValue(r, c.Key)))
			b.WriteString("</td>")
		}
		b.WriteString("</tr>\n")
	}
	return b.String()
}

// TotalRowsHTML renders the synthesized summary rows spanning the table width.
func TotalRowsHTML(rows []TotalRow, colCount int) string {
	if colCount < 2 {
		colCount = 2
	}
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(`<tr class="total-row`)
		if row.Class != "" {
			b.WriteString(" ")
			b.WriteString(row.Class)
		}
		b.WriteString(`"><td colspan="`)
		b.WriteString(strconv.Itoa(colCount - 1))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(row.Label))
		b.WriteString("</td><td>")
		b.WriteString(html.EscapeString(row.Value))
		b.WriteString("</td></tr>\n")
	}
	return b.String()
}

// CellValue renders one ledger field as display text. Unknown keys render
// empty rather than failing, mirroring how unknown placeholders degrade.
func CellValue(r core.LedgerRecord, key string) string {
	switch key {
	case ColDate:
		return r.RecordDate.Format("2006-01-02")
	case ColType:
		return r.Type
	case ColName:
		return r.Name
	case ColNumber:
		return r.Number
	case ColCategory:
		return r.Category
	case ColHours:
		return r.Hours.Display()
	case ColHourlyRate:
		return r.HourlyRate.Display()
	case ColAmount:
		return core.FormatAmount(r.Amount, r.Currency)
	case ColStatus:
		if r.IsPaid {
			return "paid"
		}
		return "unpaid"
	case ColDescription:
		return r.Description
	default:
		return ""
	}
}

func rowClass(r core.LedgerRecord) string {
	classes := []string{"record-row"}
	if r.Type == core.RecordTypeEmployee {
		classes = append(classes, "employee-row")
	}
	if r.IsOvertime {
		classes = append(classes, "overtime-row")
	}
	if r.IsPaid {
		classes = append(classes, "paid")
	} else {
		classes = append(classes, "unpaid")
	}
	return strings.Join(classes, " ")
}

// HasHoursColumn reports whether the selection includes either hours column.
func HasHoursColumn(cols []Column) bool {
	for _, c := range cols {
		if c.Key == ColHours || c.Key == ColHourlyRate {
			return true
		}
	}
	return false
}
