package models

import (
	"github.com/crovdigital/gerente_backend/config"
	"github.com/crovdigital/gerente_backend/utils"
	"github.com/shopspring/decimal"
)

const leastSoldLimit = 10

// FilterState is the dashboard filter as posted by the frontend.
// SelectedWeeks holds zero-based week-slice indices (0-3) and only applies
// when SelectedMonth is set.
type FilterState struct {
	StartDate     string `json:"fechaInicio" binding:"required"`
	EndDate       string `json:"fechaFin" binding:"required"`
	SelectedMonth string `json:"mesSeleccionado"`
	SelectedWeeks []int  `json:"semanasSeleccionadas"`
}

// RawDataset bundles everything the fetch layer pulled for the filter. To
// feed the trend alert it should also include records covering the window
// immediately before the selected range.
type RawDataset struct {
	Sales    []Sale    `json:"ventas"`
	Expenses []Expense `json:"gastos"`
	Returns  []Return  `json:"devoluciones"`

	KpisDay   *KPISnapshot `json:"kpisDia"`
	KpisWeek  *KPISnapshot `json:"kpisSemana"`
	KpisMonth *KPISnapshot `json:"kpisMes"`

	Goals        *SalesGoals          `json:"metas"`
	ReturnImpact *ReturnImpact        `json:"impactoDevoluciones"`
	LowRotation  []LowRotationProduct `json:"bajaRotacion"`
}

// PeriodSummary totals the filtered weekly series.
type PeriodSummary struct {
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	TotalCost       decimal.Decimal `json:"totalCost"`
	TotalExpense    decimal.Decimal `json:"totalExpense"`
	TotalUtility    decimal.Decimal `json:"totalUtility"`
	TotalReturned   decimal.Decimal `json:"totalReturned"`
	TotalDiscounted decimal.Decimal `json:"totalDiscounted"`
}

// DashboardReport is the full payload the manager panel renders.
type DashboardReport struct {
	WeekBuckets         []WeekBucket            `json:"weekBuckets"`
	FilteredWeekBuckets []WeekBucket            `json:"filteredWeekBuckets"`
	Summary             PeriodSummary           `json:"summary"`
	MonthlyGrowth       []MonthlyGrowthRow      `json:"monthlyGrowth"`
	Comparison          *MonthlyComparison      `json:"comparison"`
	IndicatorTables     []*IndicatorTable       `json:"indicatorTables"`
	PerformanceSummary  []PerformanceRow        `json:"performanceSummary"`
	LeastSoldProducts   []ProductCount          `json:"leastSoldProducts"`
	QuickAlerts         []QuickAlertResult      `json:"quickAlerts"`
	ManagerialAlerts    []ManagerialAlertResult `json:"managerialAlerts"`
}

// BuildDashboardReport runs the whole pipeline: bucket seeding, aggregation,
// growth tables, indicator tables and both alert sets. An inverted date
// range is the only hard error; missing or partial data degrades to zero and
// neutral results.
func BuildDashboardReport(filter FilterState, dataset RawDataset) (*DashboardReport, error) {
	start, ok := ParseRecordDate(filter.StartDate)
	if !ok {
		return nil, utils.ErrEmptyDateRange
	}
	end, ok := ParseRecordDate(filter.EndDate)
	if !ok {
		return nil, utils.ErrEmptyDateRange
	}
	if start.After(end) {
		return nil, utils.ErrInvalidDateRange
	}

	buckets := SeedWeekBuckets(start, end)
	AggregateRecords(buckets, dataset.Sales, dataset.Expenses, dataset.Returns, start, end)

	ordered := SortedBuckets(buckets)
	filtered := FilterBucketsByWeeks(ordered, start, end, filter.SelectedMonth, filter.SelectedWeeks)

	summary := PeriodSummary{}
	for i := range filtered {
		b := &filtered[i]
		summary.TotalRevenue = summary.TotalRevenue.Add(b.Revenue)
		summary.TotalCost = summary.TotalCost.Add(b.Cost)
		summary.TotalExpense = summary.TotalExpense.Add(b.Expense)
		summary.TotalUtility = summary.TotalUtility.Add(b.Utility())
		summary.TotalReturned = summary.TotalReturned.Add(b.Returned)
		summary.TotalDiscounted = summary.TotalDiscounted.Add(b.DiscountedRevenue)
	}

	// The least-sold analysis honors the week-slice checkboxes at the record
	// level, independently of the calendar-week buckets.
	analysisWeeks := filter.SelectedWeeks
	if filter.SelectedMonth == "" {
		analysisWeeks = nil
	}
	analysisSales := FilterByWeekSlices(dataset.Sales, analysisWeeks)
	leastSold := LeastSoldProducts(CountProductQuantities(analysisSales), leastSoldLimit)

	comparison := BuildMonthlyComparison(dataset.Sales, dataset.Expenses, start, end)

	var indicatorTables []*IndicatorTable
	for _, entry := range []struct {
		snapshot *KPISnapshot
		period   PeriodGranularity
	}{
		{dataset.KpisDay, PeriodDay},
		{dataset.KpisWeek, PeriodWeek},
		{dataset.KpisMonth, PeriodMonth},
	} {
		if table := BuildIndicatorTable(entry.snapshot, entry.period); table != nil {
			indicatorTables = append(indicatorTables, table)
		}
	}

	alertCtx := &AlertContext{
		KpisDay:      dataset.KpisDay,
		KpisWeek:     dataset.KpisWeek,
		KpisMonth:    dataset.KpisMonth,
		Goals:        dataset.Goals,
		WeekBuckets:  filtered,
		Comparison:   comparison,
		ReturnImpact: dataset.ReturnImpact,
		LowRotation:  dataset.LowRotation,
	}

	report := &DashboardReport{
		WeekBuckets:         ordered,
		FilteredWeekBuckets: filtered,
		Summary:             summary,
		MonthlyGrowth:       BuildMonthlyGrowthRows(dataset.Sales, dataset.Expenses, start, end),
		Comparison:          comparison,
		IndicatorTables:     indicatorTables,
		PerformanceSummary:  BuildPerformanceSummary(dataset.KpisDay, dataset.KpisWeek, dataset.KpisMonth),
		LeastSoldProducts:   leastSold,
		QuickAlerts:         EvaluateQuickAlerts(alertCtx),
		ManagerialAlerts:    EvaluateManagerialAlerts(alertCtx),
	}

	config.GetLogger().WithField("weeks", len(ordered)).Debug("dashboard report built")
	return report, nil
}
