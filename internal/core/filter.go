package core

import "strings"

// FilterAll is the wildcard value accepted by every FilterState dimension.
const FilterAll = "all"

const (
	PaymentPaid   = "paid"
	PaymentUnpaid = "unpaid"
)

// FilterState is the full set of report filters. It is built fresh per
// report-view session and passed by value; nothing in this package keeps
// filter state between calls.
type FilterState struct {
	Month          string // FilterAll or "YYYY-MM"
	CounterpartyID string // FilterAll or a driver id
	Category       string // FilterAll or an expense type label
	Currency       string // FilterAll, IQD, USD, or any stored code
	PaymentStatus  string // FilterAll, PaymentPaid, or PaymentUnpaid
	SearchText     string
	RecordType     string // FilterAll, RecordTypeExpense, or RecordTypeEmployee
	ShowDeleted    bool
}

// NewFilterState returns the wide-open filter set: every dimension on "all",
// active (non-deleted) records only.
func NewFilterState() FilterState {
	return FilterState{
		Month:          FilterAll,
		CounterpartyID: FilterAll,
		Category:       FilterAll,
		Currency:       FilterAll,
		PaymentStatus:  FilterAll,
		RecordType:     FilterAll,
	}
}

// Filter applies the state to both raw collections before normalization and
// returns the surviving subsets. Filters only ever narrow.
//
// Two source behaviors are preserved deliberately:
//   - counterparty/category filters empty the employee set outright, since
//     salary entries have neither dimension;
//   - an active currency filter replaces the counterparty/category predicates
//     for expenses instead of combining with them.
func (f FilterState) Filter(expenses []RawExpense, employees []RawEmployee) ([]RawExpense, []RawEmployee) {
	var outExpenses []RawExpense
	var outEmployees []RawEmployee

	if f.RecordType != RecordTypeEmployee {
		for _, e := range expenses {
			if f.matchExpense(e) {
				outExpenses = append(outExpenses, e)
			}
		}
	}
	if f.RecordType != RecordTypeExpense {
		for _, e := range employees {
			if f.matchEmployee(e) {
				outEmployees = append(outEmployees, e)
			}
		}
	}
	return outExpenses, outEmployees
}

func (f FilterState) matchExpense(e RawExpense) bool {
	if e.IsDeleted != f.ShowDeleted {
		return false
	}
	if f.Month != FilterAll && MonthKey(e.ExpenseDate) != f.Month {
		return false
	}
	if f.Currency != FilterAll {
		// Selecting a currency temporarily disables the counterparty and
		// category predicates for expenses.
		if !strings.EqualFold(BucketCurrency(e.Currency), BucketCurrency(f.Currency)) {
			return false
		}
	} else {
		if f.CounterpartyID != FilterAll && e.DriverID != f.CounterpartyID {
			return false
		}
		if f.Category != FilterAll && e.ExpenseType != f.Category {
			return false
		}
	}
	if !f.matchPayment(e.IsPaid) {
		return false
	}
	return f.matchSearch(e.DriverName, e.DriverNumber, e.ExpenseType, e.Description)
}

func (f FilterState) matchEmployee(e RawEmployee) bool {
	if e.IsDeleted != f.ShowDeleted {
		return false
	}
	// Salary entries have no counterparty or category; either filter being
	// active excludes them all.
	if f.CounterpartyID != FilterAll || f.Category != FilterAll {
		return false
	}
	if f.Month != FilterAll && !containsMonth(e.AssignedMonths, f.Month) {
		return false
	}
	if f.Currency != FilterAll &&
		!strings.EqualFold(BucketCurrency(e.Currency), BucketCurrency(f.Currency)) {
		return false
	}
	if !f.matchPayment(e.IsPaid) {
		return false
	}
	return f.matchSearch(e.EmployeeName, e.EmployeeNumber)
}

func (f FilterState) matchPayment(isPaid bool) bool {
	switch f.PaymentStatus {
	case PaymentPaid:
		return isPaid
	case PaymentUnpaid:
		return !isPaid
	default:
		return true
	}
}

func (f FilterState) matchSearch(fields ...string) bool {
	needle := strings.ToLower(strings.TrimSpace(f.SearchText))
	if needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func containsMonth(months []string, month string) bool {
	for _, m := range months {
		if m == month {
			return true
		}
	}
	return false
}
