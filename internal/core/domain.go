package core

import (
	"errors"
	"strings"
	"time"
)

const (
	CurrencyIQD = "IQD"
	CurrencyUSD = "USD"
)

const (
	RecordTypeExpense  = "expense"
	RecordTypeEmployee = "employee"
)

// SalaryCategory is the category label every normalized employee record carries.
const SalaryCategory = "salary"

var (
	ErrValidation        = errors.New("invalid input")
	ErrPINMismatch       = errors.New("pin mismatch")
	ErrNotFound          = errors.New("record not found")
	ErrUpstream          = errors.New("store failure")
	ErrNoDefaultTemplate = errors.New("no default template for type")
	ErrConfirmation      = errors.New("confirmation phrase required")
)

type (
	// RawExpense is an expense transaction as persisted by the data-access layer.
	RawExpense struct {
		ID           string
		ExpenseDate  time.Time
		DriverID     string // empty when not tied to a driver
		DriverName   string
		DriverNumber string
		ExpenseType  string
		Hours        OptDecimal
		HourlyRate   OptDecimal
		IsOvertime   bool
		Amount       float64
		Currency     string
		IsPaid       bool
		IsDeleted    bool
		Description  string
		CreatedBy    string
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	// RawEmployee is a salary entry as persisted by the data-access layer.
	// AssignedMonths holds "YYYY-MM" keys; an empty set means the entry is not
	// assigned to any month and never matches a month filter on the reports path.
	RawEmployee struct {
		ID             string
		EmployeeName   string
		EmployeeNumber string
		Salary         float64
		Currency       string
		PaymentDate    time.Time
		IsPaid         bool
		IsDeleted      bool
		AssignedMonths []string
		CreatedBy      string
		CreatedAt      time.Time
		UpdatedAt      time.Time
	}
)

// MonthKey returns the "YYYY-MM" key for a date.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// BucketCurrency maps a stored currency code to its aggregation bucket.
// Matching is case-insensitive, absent codes default to IQD, and unknown codes
// keep their own bucket rather than being folded into a known one.
func BucketCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CurrencyIQD
	}
	return code
}
