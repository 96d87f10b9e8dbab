// Package worker runs ledger backups: a CSV snapshot on disk and, when
// configured, a mirror of the same rows in a spreadsheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"daftar/internal/amqp"
	"daftar/internal/core"
	"daftar/internal/render"
	"daftar/internal/services"
	"daftar/internal/sheets"
)

type BackupWorker struct {
	expenses  services.ExpenseStore
	employees services.EmployeeStore
	mirror    sheets.RowMirror // nil when no spreadsheet is configured
	backupDir string

	now func() time.Time
}

func NewBackupWorker(expenses services.ExpenseStore, employees services.EmployeeStore, mirror sheets.RowMirror, backupDir string) *BackupWorker {
	return &BackupWorker{
		expenses:  expenses,
		employees: employees,
		mirror:    mirror,
		backupDir: backupDir,
		now:       time.Now,
	}
}

// HandleBackupRequest processes a single backup request from the queue.
func (w *BackupWorker) HandleBackupRequest(ctx context.Context, msg *amqp.BackupRequestMessage) error {
	slog.InfoContext(ctx, "Processing backup request", "id", msg.ID, "reason", msg.Reason)
	return w.RunBackup(ctx)
}

// RunBackup snapshots the full active ledger. The snapshot always covers every
// active record regardless of any report filters in play.
func (w *BackupWorker) RunBackup(ctx context.Context) error {
	records, totals, err := w.activeLedger(ctx)
	if err != nil {
		return err
	}

	cols := render.DefaultColumns
	totalRows := services.BuildTotalRows(totals, cols)

	path, err := w.writeSnapshot(records, cols, totalRows)
	if err != nil {
		return err
	}

	if w.mirror != nil {
		if err := w.mirror.ReplaceRows(ctx, snapshotRows(records, cols, totalRows)); err != nil {
			// The on-disk snapshot already succeeded; mirror failures are
			// retried on the next run.
			slog.ErrorContext(ctx, "Failed to mirror snapshot", "error", err)
		}
	}

	slog.InfoContext(ctx, "Backup completed", "path", path, "records", len(records))
	return nil
}

func (w *BackupWorker) activeLedger(ctx context.Context) ([]core.LedgerRecord, core.Totals, error) {
	expenses, err := w.expenses.ListExpenses(ctx)
	if err != nil {
		return nil, core.Totals{}, fmt.Errorf("list expenses: %w", err)
	}
	employees, err := w.employees.ListEmployees(ctx)
	if err != nil {
		return nil, core.Totals{}, fmt.Errorf("list employees: %w", err)
	}

	active := make([]core.RawExpense, 0, len(expenses))
	for _, e := range expenses {
		if !e.IsDeleted {
			active = append(active, e)
		}
	}
	activeEmployees := make([]core.RawEmployee, 0, len(employees))
	for _, e := range employees {
		if !e.IsDeleted {
			activeEmployees = append(activeEmployees, e)
		}
	}

	records := core.NormalizeAll(active, activeEmployees)
	core.SortByDateDesc(records)
	return records, core.Aggregate(records), nil
}

func (w *BackupWorker) writeSnapshot(records []core.LedgerRecord, cols []render.Column, totalRows []render.TotalRow) (string, error) {
	if err := os.MkdirAll(w.backupDir, 0755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("ledger-%s.csv", w.now().Format("20060102-150405"))
	path := filepath.Join(w.backupDir, name)

	csv := render.RenderCSV(records, cols, totalRows)
	if err := os.WriteFile(path, []byte(csv), 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// snapshotRows lays out the spreadsheet mirror: header, one row per record,
// then the summary rows in the last two columns.
func snapshotRows(records []core.LedgerRecord, cols []render.Column, totalRows []render.TotalRow) [][]string {
	rows := make([][]string, 0, len(records)+len(totalRows)+1)

	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.Label
	}
	rows = append(rows, header)

	for _, r := range records {
		row := make([]string, len(cols))
		for i, col := range cols {
			row[i] = render.CellValue(r, col.Key)
		}
		rows = append(rows, row)
	}

	for _, tr := range totalRows {
		row := make([]string, len(cols))
		if len(cols) >= 2 {
			row[len(cols)-2] = tr.Label
			row[len(cols)-1] = tr.Value
		} else {
			row[0] = tr.Label + " " + tr.Value
		}
		rows = append(rows, row)
	}
	return rows
}
