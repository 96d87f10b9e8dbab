package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"daftar/internal/core"
	"daftar/internal/render"
)

func testRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "daftar.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestExpenseRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateExpense(ctx, core.RawExpense{
		ExpenseDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		DriverName:  "Karim",
		ExpenseType: "fuel",
		Hours:       core.Dec(3),
		Amount:      100,
		Currency:    "IQD",
		IsPaid:      true,
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	expenses, err := repo.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses: %v", err)
	}
	if len(expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(expenses))
	}
	e := expenses[0]
	if e.ID != id || e.DriverName != "Karim" || e.Amount != 100 || !e.IsPaid {
		t.Fatalf("round-tripped expense = %+v", e)
	}
	if !e.Hours.Valid || e.Hours.Value != 3 {
		t.Fatalf("hours = %+v, want valid 3", e.Hours)
	}
	if e.HourlyRate.Valid {
		t.Fatal("unset hourly rate must stay null")
	}
	if !e.ExpenseDate.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expense date = %v", e.ExpenseDate)
	}
}

func TestEmployeeAssignedMonthsRoundTrip(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateEmployee(ctx, core.RawEmployee{
		EmployeeName:   "Sara",
		Salary:         500,
		Currency:       "IQD",
		PaymentDate:    time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		AssignedMonths: []string{"2024-01", "2024-02"},
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	employees, err := repo.ListEmployees(ctx)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(employees) != 1 || employees[0].ID != id {
		t.Fatalf("employees = %+v", employees)
	}
	months := employees[0].AssignedMonths
	if len(months) != 2 || months[0] != "2024-01" || months[1] != "2024-02" {
		t.Fatalf("assigned months = %v", months)
	}
}

func TestLifecycleTransitions(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id, err := repo.CreateExpense(ctx, core.RawExpense{
		ExpenseDate: time.Now(), Amount: 10, Currency: "IQD",
	})
	if err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}

	if err := repo.SetExpenseDeleted(ctx, id, true); err != nil {
		t.Fatalf("SetExpenseDeleted: %v", err)
	}
	expenses, _ := repo.ListExpenses(ctx)
	if !expenses[0].IsDeleted {
		t.Fatal("expense should be soft-deleted")
	}

	if err := repo.DeleteExpense(ctx, id); err != nil {
		t.Fatalf("DeleteExpense: %v", err)
	}
	expenses, _ = repo.ListExpenses(ctx)
	if len(expenses) != 0 {
		t.Fatal("expense should be gone")
	}

	if err := repo.DeleteExpense(ctx, id); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("deleting a missing id should report not-found, got %v", err)
	}
	if err := repo.SetExpenseDeleted(ctx, "nope", true); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("want not-found, got %v", err)
	}
}

func TestTemplateDefaults(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	id1, _ := repo.CreateTemplate(ctx, render.Template{Type: render.TemplateBulkReport, Name: "A", IsDefault: true})
	id2, _ := repo.CreateTemplate(ctx, render.Template{Type: render.TemplateBulkReport, Name: "B"})

	if err := repo.ClearDefaultTemplates(ctx, render.TemplateBulkReport); err != nil {
		t.Fatalf("ClearDefaultTemplates: %v", err)
	}
	if err := repo.MarkTemplateDefault(ctx, id2); err != nil {
		t.Fatalf("MarkTemplateDefault: %v", err)
	}

	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("ListTemplates: %v", err)
	}
	for _, tpl := range templates {
		if tpl.ID == id1 && tpl.IsDefault {
			t.Fatal("old default should be unset")
		}
		if tpl.ID == id2 && !tpl.IsDefault {
			t.Fatal("new default should be set")
		}
	}
}

func TestSettingsAndPurge(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	if v, err := repo.GetSetting(ctx, "company_name"); err != nil || v != "" {
		t.Fatalf("missing key: v=%q err=%v", v, err)
	}
	if err := repo.SetSetting(ctx, "company_name", "Al-Rafidain Transport"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := repo.SetSetting(ctx, "company_name", "Al-Rafidain"); err != nil {
		t.Fatalf("SetSetting upsert: %v", err)
	}
	if v, _ := repo.GetSetting(ctx, "company_name"); v != "Al-Rafidain" {
		t.Fatalf("setting = %q", v)
	}

	if _, err := repo.CreateExpense(ctx, core.RawExpense{ExpenseDate: time.Now(), Amount: 1}); err != nil {
		t.Fatalf("CreateExpense: %v", err)
	}
	if err := repo.PurgeAll(ctx); err != nil {
		t.Fatalf("PurgeAll: %v", err)
	}
	expenses, _ := repo.ListExpenses(ctx)
	if len(expenses) != 0 {
		t.Fatal("purge should empty the expenses table")
	}
	// Settings survive a reset.
	if v, _ := repo.GetSetting(ctx, "company_name"); v != "Al-Rafidain" {
		t.Fatal("settings must survive a purge")
	}
}
