package render

import (
	"strings"

	"daftar/internal/core"
)

// The CSV dialect is fixed by the consuming spreadsheets: a UTF-8 BOM so
// Excel decodes the file, a right-to-left mark for the audience's locale,
// every cell quoted, embedded quotes doubled, CRLF line endings.
const (
	csvBOM = "\uFEFF"
	csvRLM = "\u200F"
	csvEOL = "\r\n"
)

// RenderCSV renders the scoped record set as spreadsheet text: a header row
// from the column labels, one row per record, then the synthesized total rows
// in the last two columns.
func RenderCSV(records []core.LedgerRecord, cols []Column, totalRows []TotalRow) string {
	if len(cols) == 0 {
		cols = DefaultColumns
	}

	var b strings.Builder
	b.WriteString(csvBOM)
	b.WriteString(csvRLM)

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.Label
	}
	writeCSVRow(&b, header)

	for _, r := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = CellValue(r, c.Key)
		}
		writeCSVRow(&b, row)
	}

	for _, tr := range totalRows {
		row := make([]string, len(cols))
		if len(cols) >= 2 {
			row[len(cols)-2] = tr.Label
			row[len(cols)-1] = tr.Value
		} else {
			row[0] = tr.Label + " " + tr.Value
		}
		writeCSVRow(&b, row)
	}

	return b.String()
}

func writeCSVRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteString(csvEOL)
}

// ParseCSV reverses RenderCSV's dialect: strips the BOM and RLM prefix and
// splits fully-quoted rows back into cell values. It exists for round-trip
// verification and backup inspection tooling.
func ParseCSV(s string) [][]string {
	s = strings.TrimPrefix(s, csvBOM)
	s = strings.TrimPrefix(s, csvRLM)

	var rows [][]string
	var row []string
	var cell strings.Builder
	inQuotes := false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case inQuotes:
			if ch == '"' {
				if i+1 < len(s) && s[i+1] == '"' {
					cell.WriteByte('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				cell.WriteByte(ch)
			}
		case ch == '"':
			inQuotes = true
		case ch == ',':
			row = append(row, cell.String())
			cell.Reset()
		case ch == '\r':
			// consumed with the following newline
		case ch == '\n':
			row = append(row, cell.String())
			cell.Reset()
			rows = append(rows, row)
			row = nil
		default:
			cell.WriteByte(ch)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		row = append(row, cell.String())
		rows = append(rows, row)
	}
	return rows
}
