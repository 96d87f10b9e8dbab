package core

import (
	"testing"
	"time"
)

func TestNormalizeExpenseDefaults(t *testing.T) {
	e := RawExpense{
		ID:          "x1",
		ExpenseDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		DriverName:  "Karim",
		ExpenseType: "fuel",
		Amount:      150,
		// Currency and Hours left absent on purpose
	}

	r := NormalizeExpense(e)
	if r.Type != RecordTypeExpense {
		t.Fatalf("type = %q, want %q", r.Type, RecordTypeExpense)
	}
	if r.Currency != CurrencyIQD {
		t.Fatalf("missing currency should default to IQD, got %q", r.Currency)
	}
	if r.Hours.Valid || r.Hours.Display() != Dash {
		t.Fatalf("absent hours should display as dash, got %q", r.Hours.Display())
	}
	if r.HourlyRate.Display() != Dash {
		t.Fatalf("absent hourly rate should display as dash, got %q", r.HourlyRate.Display())
	}
}

func TestNormalizeExpenseKeepsNegativeAmount(t *testing.T) {
	r := NormalizeExpense(RawExpense{ID: "x", Amount: -75, Currency: "USD"})
	if r.Amount != -75 {
		t.Fatalf("negative amounts must pass through, got %v", r.Amount)
	}
}

func TestNormalizeEmployee(t *testing.T) {
	e := RawEmployee{
		ID:             "e1",
		EmployeeName:   "Sara",
		EmployeeNumber: "0770",
		Salary:         500000,
		Currency:       "iqd",
		PaymentDate:    time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC),
		IsPaid:         true,
	}

	r := NormalizeEmployee(e)
	if r.Type != RecordTypeEmployee {
		t.Fatalf("type = %q, want %q", r.Type, RecordTypeEmployee)
	}
	if r.Category != SalaryCategory {
		t.Fatalf("category = %q, want %q", r.Category, SalaryCategory)
	}
	if r.Hours.Valid || r.HourlyRate.Valid || r.IsOvertime {
		t.Fatal("employee records must not carry hours, rate, or overtime")
	}
	if r.Currency != CurrencyIQD {
		t.Fatalf("currency = %q, want normalized IQD bucket", r.Currency)
	}
	if !r.IsPaid || r.Amount != 500000 {
		t.Fatalf("paid flag and salary amount must survive, got paid=%v amount=%v", r.IsPaid, r.Amount)
	}
}

func TestNormalizeAllMergesBothSources(t *testing.T) {
	records := NormalizeAll(
		[]RawExpense{{ID: "x1"}, {ID: "x2"}},
		[]RawEmployee{{ID: "e1"}},
	)
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if records[0].Type != RecordTypeExpense || records[2].Type != RecordTypeEmployee {
		t.Fatal("expenses should come before employees in the merged set")
	}
}

func TestOptDecimalDisplay(t *testing.T) {
	cases := []struct {
		in   OptDecimal
		want string
	}{
		{OptDecimal{}, Dash},
		{Dec(8), "8"},
		{Dec(7.5), "7.5"},
		{Dec(0), "0"},
	}
	for _, tc := range cases {
		if got := tc.in.Display(); got != tc.want {
			t.Fatalf("Display(%+v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
