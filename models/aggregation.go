package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// WeekBucket accumulates the monetary totals of one calendar week.
type WeekBucket struct {
	CalendarWeek
	Revenue           decimal.Decimal `json:"revenue"`
	Cost              decimal.Decimal `json:"cost"`
	Expense           decimal.Decimal `json:"expense"`
	Returned          decimal.Decimal `json:"returned"`
	DiscountedRevenue decimal.Decimal `json:"discountedRevenue"`
}

// Utility at the weekly grain is revenue minus operating expense. Cost of
// goods is tracked separately and never subtracted here.
func (b *WeekBucket) Utility() decimal.Decimal {
	return b.Revenue.Sub(b.Expense)
}

// SeedWeekBuckets creates one empty bucket per calendar week overlapping
// [rangeStart, rangeEnd], walking 7-day strides from the Monday of the first
// week. The reference date for each week is the range boundary when it falls
// inside that week, so boundary weeks get their display span clamped.
func SeedWeekBuckets(rangeStart, rangeEnd time.Time) map[string]*WeekBucket {
	buckets := make(map[string]*WeekBucket)

	cursor := StartOfWeek(rangeStart)
	last := EndOfWeek(rangeEnd)
	start := DateOnly(rangeStart)
	end := DateOnly(rangeEnd)

	for !cursor.After(last) {
		weekEnd := cursor.AddDate(0, 0, 6)

		reference := cursor
		if !start.Before(cursor) && !start.After(weekEnd) {
			reference = start
		} else if !end.Before(cursor) && !end.After(weekEnd) {
			reference = end
		}

		week := WeekInfo(reference, rangeStart, rangeEnd)
		if _, ok := buckets[week.Key]; !ok {
			buckets[week.Key] = &WeekBucket{CalendarWeek: week}
		}
		cursor = cursor.AddDate(0, 0, 7)
	}
	return buckets
}

func bucketFor(buckets map[string]*WeekBucket, date, rangeStart, rangeEnd time.Time) *WeekBucket {
	week := WeekInfo(date, rangeStart, rangeEnd)
	if b, ok := buckets[week.Key]; ok {
		return b
	}

	// Records outside the seeded range still land in a bucket of their own
	// week instead of being lost.
	b := &WeekBucket{CalendarWeek: week}
	buckets[week.Key] = b
	return b
}

// AggregateRecords folds sales, expenses and returns into the week buckets in
// a single pass and returns the product-name quantity counter built from the
// same active sale lines. Records with unparseable dates are skipped.
func AggregateRecords(buckets map[string]*WeekBucket, sales []Sale, expenses []Expense, returns []Return, rangeStart, rangeEnd time.Time) map[string]decimal.Decimal {
	productQuantities := make(map[string]decimal.Decimal)

	for _, sale := range sales {
		if !sale.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(sale.Date)
		if !ok {
			continue
		}

		revenue := decimal.Zero
		cost := decimal.Zero
		for _, line := range sale.Lines {
			if !line.IsActive() {
				continue
			}
			revenue = revenue.Add(line.Total)
			cost = cost.Add(line.LineCost())
			if line.Product.Name != "" {
				productQuantities[line.Product.Name] = productQuantities[line.Product.Name].Add(line.Quantity)
			}
		}

		b := bucketFor(buckets, date, rangeStart, rangeEnd)
		b.Revenue = b.Revenue.Add(revenue)
		b.Cost = b.Cost.Add(cost)
		if sale.HasDiscount() && revenue.IsPositive() {
			b.DiscountedRevenue = b.DiscountedRevenue.Add(revenue)
		}
	}

	for _, expense := range expenses {
		if !expense.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(expense.Date)
		if !ok {
			continue
		}
		b := bucketFor(buckets, date, rangeStart, rangeEnd)
		b.Expense = b.Expense.Add(expense.Amount)
	}

	for _, ret := range returns {
		date, ok := ParseRecordDate(ret.EffectiveDate())
		if !ok {
			continue
		}
		b := bucketFor(buckets, date, rangeStart, rangeEnd)
		b.Returned = b.Returned.Add(ret.Total)
	}

	return productQuantities
}

// SortedBuckets flattens the bucket map into chronological order.
func SortedBuckets(buckets map[string]*WeekBucket) []WeekBucket {
	ordered := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		ordered = append(ordered, *b)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Order.Before(ordered[j].Order)
	})
	return ordered
}

// FilterBucketsByWeeks keeps buckets whose displayed span overlaps the period
// and, when both a month and week checkboxes are selected, whose week index
// matches one of the selected zero-based indices.
func FilterBucketsByWeeks(buckets []WeekBucket, periodStart, periodEnd time.Time, selectedMonth string, selectedWeeks []int) []WeekBucket {
	start := DateOnly(periodStart)
	end := DateOnly(periodEnd)

	weekSet := make(map[int]bool, len(selectedWeeks))
	for _, w := range selectedWeeks {
		weekSet[w] = true
	}
	filterByWeeks := selectedMonth != "" && len(selectedWeeks) > 0

	filtered := make([]WeekBucket, 0, len(buckets))
	for _, b := range buckets {
		if b.RangeStart.After(end) || b.RangeEnd.Before(start) {
			continue
		}
		if filterByWeeks {
			if b.MonthKey != selectedMonth || !weekSet[b.WeekIndex-1] {
				continue
			}
		}
		filtered = append(filtered, b)
	}
	return filtered
}

// AnalysisRecord is any record the month-slice filter can sift.
type AnalysisRecord interface {
	AnalysisDate() string
	AnalysisActive() bool
}

func (s Sale) AnalysisDate() string   { return s.Date }
func (s Sale) AnalysisActive() bool   { return s.IsActive() }
func (r Return) AnalysisDate() string { return r.EffectiveDate() }
func (r Return) AnalysisActive() bool { return true }

// FilterByWeekSlices keeps active records and, when week slices are selected,
// only those whose day of month falls inside a selected slice.
func FilterByWeekSlices[T AnalysisRecord](items []T, selectedWeeks []int) []T {
	sliceSet := make(map[WeekSlice]bool, len(selectedWeeks))
	for _, w := range selectedWeeks {
		sliceSet[WeekSlice(w)] = true
	}

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if !item.AnalysisActive() {
			continue
		}
		if len(sliceSet) > 0 {
			date, ok := ParseRecordDate(item.AnalysisDate())
			if !ok {
				continue
			}
			if !sliceSet[WeekSliceForDay(date.Day())] {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// ProductCount pairs a product name with its sold quantity.
type ProductCount struct {
	Name     string          `json:"nombre"`
	Quantity decimal.Decimal `json:"cantidad"`
}

// CountProductQuantities tallies sold quantities per product name over the
// active lines of active sales.
func CountProductQuantities(sales []Sale) map[string]decimal.Decimal {
	quantities := make(map[string]decimal.Decimal)
	for _, sale := range sales {
		if !sale.IsActive() {
			continue
		}
		for _, line := range sale.Lines {
			if !line.IsActive() || line.Product.Name == "" {
				continue
			}
			quantities[line.Product.Name] = quantities[line.Product.Name].Add(line.Quantity)
		}
	}
	return quantities
}

// LeastSoldProducts orders the counter ascending by quantity (name breaks
// ties) and keeps at most limit entries; limit <= 0 keeps everything.
func LeastSoldProducts(quantities map[string]decimal.Decimal, limit int) []ProductCount {
	products := make([]ProductCount, 0, len(quantities))
	for name, qty := range quantities {
		products = append(products, ProductCount{Name: name, Quantity: qty})
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].Quantity.Equal(products[j].Quantity) {
			return products[i].Name < products[j].Name
		}
		return products[i].Quantity.LessThan(products[j].Quantity)
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products
}
