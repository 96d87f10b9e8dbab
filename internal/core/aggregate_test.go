package core

import (
	"testing"
	"time"
)

func TestAggregateMonthScenario(t *testing.T) {
	// Three expenses across two months; only January should count after the
	// month filter.
	expenses := []RawExpense{
		{ID: "x1", ExpenseDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Amount: 100, Currency: "IQD"},
		{ID: "x2", ExpenseDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Amount: 200, Currency: "IQD"},
		{ID: "x3", ExpenseDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Amount: 50, Currency: "USD"},
	}

	f := NewFilterState()
	f.Month = "2024-01"
	ex, em := f.Filter(expenses, nil)
	totals := Aggregate(NormalizeAll(ex, em))

	if got := totals.ByCurrency[CurrencyIQD]; got != 300 {
		t.Fatalf("IQD total = %v, want 300", got)
	}
	if got, ok := totals.ByCurrency[CurrencyUSD]; ok && got != 0 {
		t.Fatalf("USD bucket should be absent or zero, got %v", got)
	}
}

func TestAggregateCurrencyBuckets(t *testing.T) {
	records := []LedgerRecord{
		{Type: RecordTypeExpense, Amount: 10, Currency: "usd"},
		{Type: RecordTypeExpense, Amount: 5, Currency: "USD"},
		{Type: RecordTypeExpense, Amount: 7, Currency: ""},     // defaults to IQD
		{Type: RecordTypeExpense, Amount: 3, Currency: "XYZ"},  // unknown codes keep their own bucket
	}
	totals := Aggregate(records)

	if got := totals.ByCurrency["USD"]; got != 15 {
		t.Fatalf("case-insensitive USD bucket = %v, want 15", got)
	}
	if got := totals.ByCurrency["IQD"]; got != 7 {
		t.Fatalf("absent currency should land in IQD, got %v", got)
	}
	if got := totals.ByCurrency["XYZ"]; got != 3 {
		t.Fatalf("unknown code bucket = %v, want 3", got)
	}
}

func TestAggregatePaidUnpaidSplit(t *testing.T) {
	records := []LedgerRecord{
		{Type: RecordTypeExpense, Amount: 100, Currency: "IQD", IsPaid: true},
		{Type: RecordTypeExpense, Amount: 40, Currency: "IQD"},
		{Type: RecordTypeEmployee, Amount: 60, Currency: "IQD"},
	}
	totals := Aggregate(records)

	if totals.PaidByCurrency["IQD"] != 100 {
		t.Fatalf("paid = %v, want 100", totals.PaidByCurrency["IQD"])
	}
	if totals.UnpaidByCurrency["IQD"] != 100 {
		t.Fatalf("unpaid = %v, want 100", totals.UnpaidByCurrency["IQD"])
	}
	if sum := totals.PaidByCurrency["IQD"] + totals.UnpaidByCurrency["IQD"]; sum != totals.ByCurrency["IQD"] {
		t.Fatalf("paid+unpaid = %v, want total %v", sum, totals.ByCurrency["IQD"])
	}
}

func TestAggregateHoursAndOvertime(t *testing.T) {
	records := []LedgerRecord{
		{Type: RecordTypeExpense, Amount: 10, Currency: "IQD", Hours: Dec(8)},
		{Type: RecordTypeExpense, Amount: 20, Currency: "IQD", Hours: Dec(2.5), IsOvertime: true},
		{Type: RecordTypeExpense, Amount: 5, Currency: "USD", IsOvertime: true}, // overtime without hours
		{Type: RecordTypeExpense, Amount: 9, Currency: "IQD"},                   // dash hours contribute zero
		{Type: RecordTypeEmployee, Amount: 100, Currency: "IQD", Hours: Dec(40)}, // never counted for hours
	}
	totals := Aggregate(records)

	if totals.TotalHours != 10.5 {
		t.Fatalf("total hours = %v, want 10.5", totals.TotalHours)
	}
	if totals.OvertimeHours != 2.5 {
		t.Fatalf("overtime hours = %v, want 2.5", totals.OvertimeHours)
	}
	if totals.OvertimeCount != 2 {
		t.Fatalf("overtime count = %v, want 2", totals.OvertimeCount)
	}
	if totals.OvertimeByCurrency["IQD"] != 20 || totals.OvertimeByCurrency["USD"] != 5 {
		t.Fatalf("overtime buckets = %v", totals.OvertimeByCurrency)
	}
}

func TestAggregateMatchesDirectSum(t *testing.T) {
	records := NormalizeAll(testExpenses(), testEmployees())
	totals := Aggregate(records)

	direct := make(map[string]float64)
	for _, r := range records {
		direct[BucketCurrency(r.Currency)] += r.Amount
	}
	for cur, want := range direct {
		if got := totals.ByCurrency[cur]; got != want {
			t.Fatalf("bucket %s = %v, want %v", cur, got, want)
		}
	}

	// Re-aggregating the same set must reproduce identical totals.
	again := Aggregate(records)
	for cur, want := range totals.ByCurrency {
		if again.ByCurrency[cur] != want {
			t.Fatalf("repeated aggregation drifted for %s", cur)
		}
	}
}
