// Package export renders ledger record sets as XLSX workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"daftar/internal/core"
	"daftar/internal/render"
)

const sheetName = "Ledger"

// WriteXLSX builds a workbook with one header row, one row per record, and
// the summary rows at the bottom, mirroring the CSV column layout.
func WriteXLSX(records []core.LedgerRecord, cols []render.Column, totalRows []render.TotalRow) (*bytes.Buffer, error) {
	if len(cols) == 0 {
		cols = render.DefaultColumns
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDDDDD"}},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("header cell name: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, col.Label); err != nil {
			return nil, fmt.Errorf("write header cell: %w", err)
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(sheetName, "A1", lastCol, headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := 2
	for _, r := range records {
		for i, col := range cols {
			cell, err := excelize.CoordinatesToCellName(i+1, row)
			if err != nil {
				return nil, fmt.Errorf("record cell name: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, render.CellValue(r, col.Key)); err != nil {
				return nil, fmt.Errorf("write record cell: %w", err)
			}
		}
		row++
	}

	// Summary rows use the last two columns, like the CSV layout.
	for _, tr := range totalRows {
		labelCol := len(cols) - 1
		if labelCol < 1 {
			labelCol = 1
		}
		labelCell, _ := excelize.CoordinatesToCellName(labelCol, row)
		valueCell, _ := excelize.CoordinatesToCellName(labelCol+1, row)
		if err := f.SetCellValue(sheetName, labelCell, tr.Label); err != nil {
			return nil, fmt.Errorf("write total label: %w", err)
		}
		if err := f.SetCellValue(sheetName, valueCell, tr.Value); err != nil {
			return nil, fmt.Errorf("write total value: %w", err)
		}
		row++
	}

	for i := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, 18); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
