package core

import (
	"strconv"
	"time"
)

// Dash is the display sentinel for absent hours and hourly-rate values.
// Downstream aggregation treats it as contributing zero, never as a number.
const Dash = "—"

// OptDecimal is a decimal value that may be absent. The zero value is absent
// and displays as Dash.
type OptDecimal struct {
	Value float64
	Valid bool
}

// Dec wraps a present decimal value.
func Dec(v float64) OptDecimal {
	return OptDecimal{Value: v, Valid: true}
}

// Display renders the value for report tables, or Dash when absent.
func (d OptDecimal) Display() string {
	if !d.Valid {
		return Dash
	}
	return FormatDecimal(d.Value)
}

// FormatDecimal renders a decimal without trailing zeros (12, 12.5, 12.25).
func FormatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LedgerRecord is the normalized, tagged union over expense transactions and
// employee salary entries. It is derived per request and never persisted.
type LedgerRecord struct {
	Type        string
	ID          string
	RecordDate  time.Time
	Name        string
	Number      string
	Category    string
	Hours       OptDecimal
	HourlyRate  OptDecimal
	Amount      float64
	Currency    string
	IsPaid      bool
	IsOvertime  bool
	Description string
}

// NormalizeExpense maps a raw expense onto the ledger shape. Absent currency
// defaults to IQD; absent hours and hourly-rate stay absent so downstream
// consumers render the dash instead of a fabricated zero.
func NormalizeExpense(e RawExpense) LedgerRecord {
	return LedgerRecord{
		Type:        RecordTypeExpense,
		ID:          e.ID,
		RecordDate:  e.ExpenseDate,
		Name:        e.DriverName,
		Number:      e.DriverNumber,
		Category:    e.ExpenseType,
		Hours:       e.Hours,
		HourlyRate:  e.HourlyRate,
		Amount:      e.Amount,
		Currency:    BucketCurrency(e.Currency),
		IsPaid:      e.IsPaid,
		IsOvertime:  e.IsOvertime,
		Description: e.Description,
	}
}

// NormalizeEmployee maps a raw salary entry onto the ledger shape. Employee
// records never carry hours, an hourly rate, or an overtime flag.
func NormalizeEmployee(e RawEmployee) LedgerRecord {
	return LedgerRecord{
		Type:       RecordTypeEmployee,
		ID:         e.ID,
		RecordDate: e.PaymentDate,
		Name:       e.EmployeeName,
		Number:     e.EmployeeNumber,
		Category:   SalaryCategory,
		Amount:     e.Salary,
		Currency:   BucketCurrency(e.Currency),
		IsPaid:     e.IsPaid,
	}
}

// NormalizeAll merges both raw collections into one ledger, expenses first.
// The merge never fabricates cross-type fields; each record comes from exactly
// one source row.
func NormalizeAll(expenses []RawExpense, employees []RawEmployee) []LedgerRecord {
	records := make([]LedgerRecord, 0, len(expenses)+len(employees))
	for _, e := range expenses {
		records = append(records, NormalizeExpense(e))
	}
	for _, e := range employees {
		records = append(records, NormalizeEmployee(e))
	}
	return records
}
