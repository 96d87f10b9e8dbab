package core

// Totals summarizes a filtered, normalized record set. Every call recomputes
// from scratch; there are no running totals to drift from the filter state.
type Totals struct {
	ByCurrency         map[string]float64
	PaidByCurrency     map[string]float64
	UnpaidByCurrency   map[string]float64
	OvertimeByCurrency map[string]float64
	TotalHours         float64
	OvertimeHours      float64
	OvertimeCount      int
}

// Aggregate computes per-currency totals, paid/unpaid splits, and hour and
// overtime summaries over the given records.
//
// Hours only come from expense records with a present hours value; the dash
// sentinel contributes nothing. Overtime aggregates only consider expense
// records flagged overtime.
func Aggregate(records []LedgerRecord) Totals {
	t := Totals{
		ByCurrency:         make(map[string]float64),
		PaidByCurrency:     make(map[string]float64),
		UnpaidByCurrency:   make(map[string]float64),
		OvertimeByCurrency: make(map[string]float64),
	}

	for _, r := range records {
		bucket := BucketCurrency(r.Currency)
		t.ByCurrency[bucket] += r.Amount
		if r.IsPaid {
			t.PaidByCurrency[bucket] += r.Amount
		} else {
			t.UnpaidByCurrency[bucket] += r.Amount
		}

		if r.Type != RecordTypeExpense {
			continue
		}
		if r.Hours.Valid {
			t.TotalHours += r.Hours.Value
		}
		if r.IsOvertime {
			t.OvertimeCount++
			t.OvertimeByCurrency[bucket] += r.Amount
			if r.Hours.Valid {
				t.OvertimeHours += r.Hours.Value
			}
		}
	}
	return t
}
