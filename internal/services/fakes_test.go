package services

import (
	"context"
	"fmt"
	"time"

	"daftar/internal/core"
	"daftar/internal/render"
)

// fakeStore is an in-memory stand-in for the data-access collaborator.
type fakeStore struct {
	expenses  []core.RawExpense
	employees []core.RawEmployee
	templates []render.Template
	settings  map[string]string

	listErr error
	failIDs map[string]error
	purged  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: map[string]string{SettingDeletePIN: "4321", SettingCompanyName: "Al-Rafidain Transport"},
		failIDs:  map[string]error{},
	}
}

func (f *fakeStore) ListExpenses(ctx context.Context) ([]core.RawExpense, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]core.RawExpense, len(f.expenses))
	copy(out, f.expenses)
	return out, nil
}

func (f *fakeStore) SetExpenseDeleted(ctx context.Context, id string, deleted bool) error {
	if err := f.failIDs[id]; err != nil {
		return err
	}
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses[i].IsDeleted = deleted
			return nil
		}
	}
	return fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
}

func (f *fakeStore) DeleteExpense(ctx context.Context, id string) error {
	if err := f.failIDs[id]; err != nil {
		return err
	}
	for i := range f.expenses {
		if f.expenses[i].ID == id {
			f.expenses = append(f.expenses[:i], f.expenses[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: expense %s", core.ErrNotFound, id)
}

func (f *fakeStore) ListEmployees(ctx context.Context) ([]core.RawEmployee, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]core.RawEmployee, len(f.employees))
	copy(out, f.employees)
	return out, nil
}

func (f *fakeStore) SetEmployeeDeleted(ctx context.Context, id string, deleted bool) error {
	if err := f.failIDs[id]; err != nil {
		return err
	}
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].IsDeleted = deleted
			return nil
		}
	}
	return fmt.Errorf("%w: employee %s", core.ErrNotFound, id)
}

func (f *fakeStore) DeleteEmployee(ctx context.Context, id string) error {
	if err := f.failIDs[id]; err != nil {
		return err
	}
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: employee %s", core.ErrNotFound, id)
}

func (f *fakeStore) ListTemplates(ctx context.Context) ([]render.Template, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]render.Template, len(f.templates))
	copy(out, f.templates)
	return out, nil
}

func (f *fakeStore) ClearDefaultTemplates(ctx context.Context, templateType string) error {
	for i := range f.templates {
		if f.templates[i].Type == templateType {
			f.templates[i].IsDefault = false
		}
	}
	return nil
}

func (f *fakeStore) MarkTemplateDefault(ctx context.Context, id string) error {
	for i := range f.templates {
		if f.templates[i].ID == id {
			f.templates[i].IsDefault = true
			return nil
		}
	}
	return fmt.Errorf("%w: template %s", core.ErrNotFound, id)
}

func (f *fakeStore) GetSetting(ctx context.Context, key string) (string, error) {
	return f.settings[key], nil
}

func (f *fakeStore) PurgeAll(ctx context.Context) error {
	f.expenses = nil
	f.employees = nil
	f.purged = true
	return nil
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func seededStore() *fakeStore {
	f := newFakeStore()
	f.expenses = []core.RawExpense{
		{ID: "x1", ExpenseDate: day(2024, 1, 5), DriverID: "d1", DriverName: "Karim", ExpenseType: "fuel", Amount: 100, Currency: "IQD", IsPaid: true},
		{ID: "x2", ExpenseDate: day(2024, 1, 20), DriverID: "d2", DriverName: "Omar", ExpenseType: "trailer fee", Amount: 200, Currency: "IQD"},
		{ID: "x3", ExpenseDate: day(2024, 2, 1), DriverID: "d1", DriverName: "Karim", ExpenseType: "repair", Amount: 50, Currency: "USD", Hours: core.Dec(3), IsOvertime: true},
		{ID: "x4", ExpenseDate: day(2024, 2, 9), DriverName: "Ali", ExpenseType: "fuel", Amount: 80, IsDeleted: true},
	}
	f.employees = []core.RawEmployee{
		{ID: "e1", EmployeeName: "Sara", EmployeeNumber: "0770", Salary: 500, Currency: "IQD", PaymentDate: day(2024, 1, 28), AssignedMonths: []string{"2024-01"}, IsPaid: true},
		{ID: "e2", EmployeeName: "Hassan", Salary: 300, Currency: "USD", PaymentDate: day(2024, 2, 28), AssignedMonths: []string{"2024-02"}},
	}
	return f
}
