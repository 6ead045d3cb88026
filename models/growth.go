package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// VariationPercent is the shared growth formula: signed percentage change of
// current against previous, using the absolute previous as the base so a
// negative baseline still yields a sensible sign. A zero baseline collapses
// to +100, -100 or 0 depending on the sign of current.
func VariationPercent(current, previous decimal.Decimal) float64 {
	if !previous.IsZero() {
		ratio, _ := current.Sub(previous).Div(previous.Abs()).Float64()
		return ratio * 100
	}
	switch {
	case current.IsPositive():
		return 100
	case current.IsNegative():
		return -100
	default:
		return 0
	}
}

// MonthlyGrowthRow is one row of the month-over-month growth table.
type MonthlyGrowthRow struct {
	MonthKey string          `json:"monthKey"`
	Label    string          `json:"label"`
	Start    time.Time       `json:"start"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expense  decimal.Decimal `json:"expense"`
	Utility  decimal.Decimal `json:"utility"`
	// Variation compares this month's utility against the previous row's.
	Variation   float64 `json:"variation"`
	HasPrevious bool    `json:"hasPrevious"`
	IsNegative  bool    `json:"isNegative"`
}

// BuildMonthlyGrowthRows pre-seeds one row per month touched by the range,
// folds record-level sale totals and expenses into them, then computes the
// chained variation. Months with no movement still appear as zero rows.
func BuildMonthlyGrowthRows(sales []Sale, expenses []Expense, rangeStart, rangeEnd time.Time) []MonthlyGrowthRow {
	totals := make(map[string]*MonthlyGrowthRow)

	cursor := time.Date(rangeStart.Year(), rangeStart.Month(), 1, 0, 0, 0, 0, time.UTC)
	limit := time.Date(rangeEnd.Year(), rangeEnd.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(limit) {
		key := MonthKey(cursor)
		totals[key] = &MonthlyGrowthRow{
			MonthKey: key,
			Label:    MonthLabel(cursor),
			Start:    cursor,
		}
		cursor = cursor.AddDate(0, 1, 0)
	}

	// Records dated outside the seeded months are dropped: a stray record
	// must not prepend a row and shift the variation chain.
	for _, sale := range sales {
		if !sale.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(sale.Date)
		if !ok {
			continue
		}
		row, ok := totals[MonthKey(date)]
		if !ok {
			continue
		}
		row.Revenue = row.Revenue.Add(sale.Total)
	}

	for _, expense := range expenses {
		if !expense.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(expense.Date)
		if !ok {
			continue
		}
		row, ok := totals[MonthKey(date)]
		if !ok {
			continue
		}
		row.Expense = row.Expense.Add(expense.Amount)
	}

	rows := make([]MonthlyGrowthRow, 0, len(totals))
	for _, row := range totals {
		row.Utility = row.Revenue.Sub(row.Expense)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Start.Before(rows[j].Start)
	})

	for i := range rows {
		if i == 0 {
			continue
		}
		rows[i].HasPrevious = true
		rows[i].Variation = VariationPercent(rows[i].Utility, rows[i-1].Utility)
		rows[i].IsNegative = rows[i].Variation < 0
	}
	return rows
}

// PreviousWindow returns the window immediately before [start, end] with the
// same duration: it ends the day before start.
func PreviousWindow(start, end time.Time) (time.Time, time.Time) {
	start = DateOnly(start)
	end = DateOnly(end)

	duration := end.Sub(start)
	prevEnd := start.AddDate(0, 0, -1)
	prevStart := prevEnd.Add(-duration)
	return prevStart, prevEnd
}

// WindowTotals sums record-level sale totals and expenses falling inside one
// window. Utility at this grain is revenue minus expense.
type WindowTotals struct {
	Start   time.Time       `json:"start"`
	End     time.Time       `json:"end"`
	Revenue decimal.Decimal `json:"revenue"`
	Expense decimal.Decimal `json:"expense"`
	Utility decimal.Decimal `json:"utility"`
}

func sumWindow(sales []Sale, expenses []Expense, start, end time.Time) WindowTotals {
	totals := WindowTotals{Start: start, End: end}

	inWindow := func(date time.Time) bool {
		return !date.Before(start) && !date.After(end)
	}

	for _, sale := range sales {
		if !sale.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(sale.Date)
		if !ok || !inWindow(date) {
			continue
		}
		totals.Revenue = totals.Revenue.Add(sale.Total)
	}
	for _, expense := range expenses {
		if !expense.IsActive() {
			continue
		}
		date, ok := ParseRecordDate(expense.Date)
		if !ok || !inWindow(date) {
			continue
		}
		totals.Expense = totals.Expense.Add(expense.Amount)
	}

	totals.Utility = totals.Revenue.Sub(totals.Expense)
	return totals
}

// MonthlyComparison contrasts the selected window against the
// duration-matched window immediately before it.
type MonthlyComparison struct {
	Current       WindowTotals `json:"current"`
	Previous      WindowTotals `json:"previous"`
	RevenueGrowth float64      `json:"revenueGrowth"`
	ExpenseGrowth float64      `json:"expenseGrowth"`
	UtilityGrowth float64      `json:"utilityGrowth"`
}

func BuildMonthlyComparison(sales []Sale, expenses []Expense, start, end time.Time) *MonthlyComparison {
	prevStart, prevEnd := PreviousWindow(start, end)

	comparison := &MonthlyComparison{
		Current:  sumWindow(sales, expenses, DateOnly(start), DateOnly(end)),
		Previous: sumWindow(sales, expenses, prevStart, prevEnd),
	}
	comparison.RevenueGrowth = VariationPercent(comparison.Current.Revenue, comparison.Previous.Revenue)
	comparison.ExpenseGrowth = VariationPercent(comparison.Current.Expense, comparison.Previous.Expense)
	comparison.UtilityGrowth = VariationPercent(comparison.Current.Utility, comparison.Previous.Utility)
	return comparison
}
