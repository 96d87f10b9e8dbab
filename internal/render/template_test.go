package render

import (
	"strings"
	"testing"
	"time"

	"daftar/internal/core"
)

func sampleRecords() []core.LedgerRecord {
	return []core.LedgerRecord{
		{
			Type:       core.RecordTypeExpense,
			ID:         "x1",
			RecordDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Name:       "Karim",
			Category:   "fuel",
			Hours:      core.Dec(8),
			Amount:     12500,
			Currency:   "IQD",
			IsPaid:     true,
			IsOvertime: true,
		},
		{
			Type:       core.RecordTypeEmployee,
			ID:         "e1",
			RecordDate: time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC),
			Name:       "Sara",
			Category:   core.SalaryCategory,
			Amount:     50,
			Currency:   "USD",
		},
	}
}

func TestSubstitute(t *testing.T) {
	cases := []struct {
		in     string
		values map[string]string
		want   string
	}{
		{"Hello {{name}}", map[string]string{"name": "Daftar"}, "Hello Daftar"},
		{"{{a}}-{{b}}", map[string]string{"a": "1", "b": "2"}, "1-2"},
		// unknown tokens stay literal
		{"{{missing}} kept", map[string]string{}, "{{missing}} kept"},
		{"{{known}} and {{unknown}}", map[string]string{"known": "v"}, "v and {{unknown}}"},
		// malformed braces are plain text
		{"{single} {{ spaced }}", map[string]string{"single": "x"}, "{single} {{ spaced }}"},
	}
	for _, tc := range cases {
		if got := Substitute(tc.in, tc.values); got != tc.want {
			t.Fatalf("Substitute(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTableHeadersHonorsColumnOrder(t *testing.T) {
	cols := []Column{
		{Key: ColAmount, Label: "Amount"},
		{Key: ColDate, Label: "Date"},
		{Key: ColName, Label: "Name"},
	}
	got := TableHeaders(cols)
	want := "<tr><th>Amount</th><th>Date</th><th>Name</th></tr>"
	if got != want {
		t.Fatalf("headers = %q, want %q", got, want)
	}
}

func TestTableRowsStylingFromRecordFields(t *testing.T) {
	rows := TableRows(sampleRecords(), []Column{{Key: ColName, Label: "Name"}})

	if !strings.Contains(rows, "overtime-row") {
		t.Fatal("overtime expense should carry the overtime-row class")
	}
	if !strings.Contains(rows, "employee-row") {
		t.Fatal("employee record should carry the employee-row class")
	}
	if !strings.Contains(rows, `"record-row overtime-row paid"`) {
		t.Fatalf("paid overtime row class set wrong: %s", rows)
	}
	if !strings.Contains(rows, `"record-row employee-row unpaid"`) {
		t.Fatalf("unpaid employee row class set wrong: %s", rows)
	}
}

func TestCellValues(t *testing.T) {
	r := sampleRecords()[0]
	cases := []struct{ key, want string }{
		{ColDate, "2024-01-05"},
		{ColName, "Karim"},
		{ColCategory, "fuel"},
		{ColHours, "8"},
		{ColHourlyRate, core.Dash},
		{ColAmount, "12,500 IQD"},
		{ColStatus, "paid"},
		{"bogus", ""},
	}
	for _, tc := range cases {
		if got := CellValue(r, tc.key); got != tc.want {
			t.Fatalf("CellValue(%s) = %q, want %q", tc.key, got, tc.want)
		}
	}
}

func TestRenderDocument(t *testing.T) {
	tpl := Template{
		Type:     TemplateBulkReport,
		HTMLBody: `<h1>{{company_name}}</h1><p>{{period}}</p><table>{{table_headers}}{{table_rows}}{{total_rows}}</table><footer>{{unknown_token}}</footer>`,
		CSSText:  ".total-row { font-weight: bold; }",
	}
	meta := DocumentMeta{
		CompanyName: "Al-Rafidain Transport",
		Period:      "2024-01",
		PrintedAt:   "2024-02-01 09:00",
	}
	totals := []TotalRow{{Label: "Total (IQD)", Value: "12,500 IQD"}}

	doc := RenderDocument(tpl, sampleRecords(), totals, nil, meta)

	for _, want := range []string{
		"Al-Rafidain Transport",
		"2024-01",
		"<th>Date</th>",
		"Karim",
		"Total (IQD)",
		".total-row { font-weight: bold; }",
		"{{unknown_token}}", // unknown tokens degrade to literal text
		`dir="rtl"`,
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestTotalRowsHTMLColspan(t *testing.T) {
	out := TotalRowsHTML([]TotalRow{{Label: "Total", Value: "5", Class: "grand"}}, 4)
	if !strings.Contains(out, `colspan="3"`) {
		t.Fatalf("total row should span all but the value column: %s", out)
	}
	if !strings.Contains(out, `class="total-row grand"`) {
		t.Fatalf("total row class missing: %s", out)
	}
}

func TestHasHoursColumn(t *testing.T) {
	if HasHoursColumn([]Column{{Key: ColAmount}}) {
		t.Fatal("amount-only selection should not report hours")
	}
	if !HasHoursColumn([]Column{{Key: ColHourlyRate}}) {
		t.Fatal("hourly rate counts as an hours column")
	}
}
