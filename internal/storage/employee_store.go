package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"daftar/internal/core"
)

const employeeColumns = `id, employee_name, employee_number, salary, currency,
	payment_date, is_paid, is_deleted, assigned_months, created_by, created_at, updated_at`

func (r *SQLiteRepository) ListEmployees(ctx context.Context) ([]core.RawEmployee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+employeeColumns+` FROM employees`)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w: %w", core.ErrUpstream, err)
	}
	defer rows.Close()

	var employees []core.RawEmployee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w: %w", core.ErrUpstream, err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w: %w", core.ErrUpstream, err)
	}
	return employees, nil
}

func (r *SQLiteRepository) CreateEmployee(ctx context.Context, e core.RawEmployee) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	months, err := json.Marshal(e.AssignedMonths)
	if err != nil {
		return "", fmt.Errorf("encode assigned months: %w", err)
	}
	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO employees (`+employeeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.EmployeeName, e.EmployeeNumber, e.Salary, e.Currency,
		e.PaymentDate.Format(time.RFC3339), e.IsPaid, e.IsDeleted, string(months),
		e.CreatedBy, now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return "", fmt.Errorf("create employee: %w: %w", core.ErrUpstream, err)
	}

	slog.InfoContext(ctx, "Employee salary entry saved", "id", e.ID, "name", e.EmployeeName)
	return e.ID, nil
}

func (r *SQLiteRepository) SetEmployeeDeleted(ctx context.Context, id string, deleted bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE employees SET is_deleted = ?, updated_at = ? WHERE id = ?`,
		deleted, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("set employee deleted: %w: %w", core.ErrUpstream, err)
	}
	return requireRow(res, id)
}

func (r *SQLiteRepository) DeleteEmployee(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w: %w", core.ErrUpstream, err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Employee salary entry permanently deleted", "id", id)
	return nil
}

func scanEmployee(rows *sql.Rows) (core.RawEmployee, error) {
	var (
		e                             core.RawEmployee
		date, created, edited, months string
	)
	err := rows.Scan(&e.ID, &e.EmployeeName, &e.EmployeeNumber, &e.Salary,
		&e.Currency, &date, &e.IsPaid, &e.IsDeleted, &months,
		&e.CreatedBy, &created, &edited)
	if err != nil {
		return core.RawEmployee{}, err
	}
	e.PaymentDate = parseTime(date)
	e.CreatedAt = parseTime(created)
	e.UpdatedAt = parseTime(edited)
	if months != "" {
		if err := json.Unmarshal([]byte(months), &e.AssignedMonths); err != nil {
			return core.RawEmployee{}, fmt.Errorf("decode assigned months for %s: %w", e.ID, err)
		}
	}
	return e, nil
}
