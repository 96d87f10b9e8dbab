package core

import "sort"

// PageSizes are the page sizes the report table offers.
var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 20

// PageInfo describes the slice a Paginate call produced.
type PageInfo struct {
	Page         int
	PageSize     int
	TotalPages   int
	TotalRecords int
}

// SortByDateDesc orders records newest first. The sort is stable so records
// sharing a date keep their original collection order.
func SortByDateDesc(records []LedgerRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RecordDate.After(records[j].RecordDate)
	})
}

// TotalPages returns ceil(count/pageSize), but never less than 1 so an empty
// result still renders page 1 of 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	pages := (count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate slices the sorted record set into the requested fixed-size page.
// Pages outside the valid range clamp to the nearest valid page.
func Paginate(records []LedgerRecord, page, pageSize int) ([]LedgerRecord, PageInfo) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	total := TotalPages(len(records), pageSize)
	if page < 1 {
		page = 1
	}
	if page > total {
		page = total
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(records) {
		start = len(records)
	}
	if end > len(records) {
		end = len(records)
	}

	info := PageInfo{
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   total,
		TotalRecords: len(records),
	}
	return records[start:end], info
}
