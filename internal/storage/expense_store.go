package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"daftar/internal/core"
)

const expenseColumns = `id, expense_date, driver_id, driver_name, driver_number,
	expense_type, hours, hourly_rate, is_overtime, amount, currency,
	is_paid, is_deleted, description, created_by, created_at, updated_at`

// ListExpenses returns every expense row, deleted ones included. Lifecycle
// visibility is a read-side concern, not a storage one.
func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.RawExpense, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+expenseColumns+` FROM expenses`)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w: %w", core.ErrUpstream, err)
	}
	defer rows.Close()

	var expenses []core.RawExpense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan expense: %w: %w", core.ErrUpstream, err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w: %w", core.ErrUpstream, err)
	}
	return expenses, nil
}

func (r *SQLiteRepository) CreateExpense(ctx context.Context, e core.RawExpense) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ExpenseDate.Format(time.RFC3339), e.DriverID, e.DriverName,
		e.DriverNumber, e.ExpenseType, optToNull(e.Hours), optToNull(e.HourlyRate),
		e.IsOvertime, e.Amount, e.Currency, e.IsPaid, e.IsDeleted,
		e.Description, e.CreatedBy, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("create expense: %w: %w", core.ErrUpstream, err)
	}

	slog.InfoContext(ctx, "Expense saved", "id", e.ID, "amount", e.Amount, "currency", e.Currency)
	return e.ID, nil
}

func (r *SQLiteRepository) SetExpenseDeleted(ctx context.Context, id string, deleted bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE expenses SET is_deleted = ?, updated_at = ? WHERE id = ?`,
		deleted, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("set expense deleted: %w: %w", core.ErrUpstream, err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) DeleteExpense(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w: %w", core.ErrUpstream, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Expense permanently deleted", "id", id)
	return nil
}

func scanExpense(rows *sql.Rows) (core.RawExpense, error) {
	var (
		e                     core.RawExpense
		date, created, edited string
		hours, rate           sql.NullFloat64
	)
	err := rows.Scan(&e.ID, &date, &e.DriverID, &e.DriverName, &e.DriverNumber,
		&e.ExpenseType, &hours, &rate, &e.IsOvertime, &e.Amount, &e.Currency,
		&e.IsPaid, &e.IsDeleted, &e.Description, &e.CreatedBy, &created, &edited)
	if err != nil {
		return core.RawExpense{}, err
	}
	e.ExpenseDate = parseTime(date)
	e.CreatedAt = parseTime(created)
	e.UpdatedAt = parseTime(edited)
	e.Hours = nullToOpt(hours)
	e.HourlyRate = nullToOpt(rate)
	return e, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w: %w", core.ErrUpstream, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", core.ErrNotFound, id)
	}
	return nil
}

func optToNull(o core.OptDecimal) sql.NullFloat64 {
	return sql.NullFloat64{Float64: o.Value, Valid: o.Valid}
}

func nullToOpt(n sql.NullFloat64) core.OptDecimal {
	return core.OptDecimal{Value: n.Float64, Valid: n.Valid}
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		// Date-only values come from imported rows.
		t, _ = time.Parse("2006-01-02", s)
	}
	return t
}
