package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"daftar/internal/cache"
	"daftar/internal/core"
)

const (
	expenseCacheKey  = "expenses"
	employeeCacheKey = "employees"
)

// LedgerService produces the filtered, merged, paginated report view. Raw
// collections are cached briefly; every lifecycle mutation invalidates the
// cache so the next read re-derives everything from the store.
type LedgerService struct {
	expenses  ExpenseStore
	employees EmployeeStore

	expenseCache  *cache.LRUCache[[]core.RawExpense]
	employeeCache *cache.LRUCache[[]core.RawEmployee]
}

// LedgerQuery is one report-view request: the filter set plus the page cursor.
type LedgerQuery struct {
	Filters  core.FilterState
	Page     int
	PageSize int
}

// LedgerPage is the assembled report view: one page of records plus totals
// recomputed over the whole filtered set.
type LedgerPage struct {
	Records  []core.LedgerRecord
	Totals   core.Totals
	PageInfo core.PageInfo
}

func NewLedgerService(expenses ExpenseStore, employees EmployeeStore, cacheTTL time.Duration) *LedgerService {
	return &LedgerService{
		expenses:      expenses,
		employees:     employees,
		expenseCache:  cache.NewLRUCache[[]core.RawExpense](4, cacheTTL),
		employeeCache: cache.NewLRUCache[[]core.RawEmployee](4, cacheTTL),
	}
}

// GetFilteredLedger runs the full report pipeline: filter both raw
// collections, normalize, merge, sort newest-first, aggregate totals over the
// whole filtered set, then slice the requested page.
func (s *LedgerService) GetFilteredLedger(ctx context.Context, q LedgerQuery) (LedgerPage, error) {
	expenses, employees, err := s.rawCollections(ctx)
	if err != nil {
		return LedgerPage{}, err
	}

	filteredExpenses, filteredEmployees := q.Filters.Filter(expenses, employees)
	records := core.NormalizeAll(filteredExpenses, filteredEmployees)
	core.SortByDateDesc(records)

	totals := core.Aggregate(records)
	page, info := core.Paginate(records, q.Page, q.PageSize)

	slog.DebugContext(ctx, "Ledger page assembled",
		"filtered", len(records),
		"page", info.Page,
		"page_size", info.PageSize)

	return LedgerPage{Records: page, Totals: totals, PageInfo: info}, nil
}

// InvalidateCache drops the cached raw collections. Lifecycle mutations call
// this so no stale row survives a delete or recovery.
func (s *LedgerService) InvalidateCache() {
	s.expenseCache.Delete(expenseCacheKey)
	s.employeeCache.Delete(employeeCacheKey)
}

func (s *LedgerService) rawCollections(ctx context.Context) ([]core.RawExpense, []core.RawEmployee, error) {
	expenses, found := s.expenseCache.Get(expenseCacheKey)
	if !found {
		var err error
		expenses, err = s.expenses.ListExpenses(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list expenses: %w", err)
		}
		s.expenseCache.Set(expenseCacheKey, expenses)
	}

	employees, found := s.employeeCache.Get(employeeCacheKey)
	if !found {
		var err error
		employees, err = s.employees.ListEmployees(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list employees: %w", err)
		}
		s.employeeCache.Set(employeeCacheKey, employees)
	}

	return expenses, employees, nil
}
