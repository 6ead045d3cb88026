package models

import (
	"fmt"

	"github.com/crovdigital/gerente_backend/utils"
	"github.com/shopspring/decimal"
)

// KPISnapshot is a cash-cut summary for one period (day, week or month) as
// produced by the POS closing process.
type KPISnapshot struct {
	TotalRevenue     decimal.Decimal `json:"ventasTotales"`
	DailyGoal        decimal.Decimal `json:"metaDiaria"`
	WeeklyGoal       decimal.Decimal `json:"metaSemanal"`
	MonthlyGoal      decimal.Decimal `json:"metaMensual"`
	AverageTicket    decimal.Decimal `json:"ticketPromedio"`
	TransactionCount int             `json:"numeroTransacciones"`
	CashTotal        decimal.Decimal `json:"totalEfectivo"`
	TransferTotal    decimal.Decimal `json:"totalTransferencia"`
	CardTotal        decimal.Decimal `json:"totalTarjeta"`
	CheckTotal       decimal.Decimal `json:"totalCheque"`
	VoucherTotal     decimal.Decimal `json:"totalVales"`
	CreditTotal      decimal.Decimal `json:"totalCredito"`
	ReturnPercentage decimal.Decimal `json:"porcentajeDevoluciones"`
	PurchasesTotal   decimal.Decimal `json:"totalCompras"`
	ExpensesTotal    decimal.Decimal `json:"totalGastos"`
}

// SalesGoals carries the goal amounts proposed by the planning module. When
// present it overrides the goals embedded in the KPI snapshots.
type SalesGoals struct {
	Daily         decimal.Decimal `json:"metaDiaria"`
	Weekly        decimal.Decimal `json:"metaSemanal"`
	Monthly       decimal.Decimal `json:"metaMensual"`
	Extraordinary decimal.Decimal `json:"metaExtraordinaria"`
}

// DailyNetProfit is today's revenue minus today's operating expenses.
// Purchases are deliberately excluded at the daily grain: stock bought today
// is not consumed today. Returns false when no daily snapshot exists.
func DailyNetProfit(day *KPISnapshot) (decimal.Decimal, bool) {
	if day == nil {
		return decimal.Zero, false
	}
	return day.TotalRevenue.Sub(day.ExpensesTotal), true
}

// IndicatorRow is one line of the period indicator table. RawValue is set
// only on the rows that feed the general total.
type IndicatorRow struct {
	Indicator    string           `json:"indicador"`
	DisplayValue string           `json:"valor"`
	RawValue     *decimal.Decimal `json:"rawValue,omitempty"`
	IsTotal      bool             `json:"isTotal"`
}

type IndicatorTable struct {
	Period            PeriodGranularity `json:"periodo"`
	Rows              []IndicatorRow    `json:"filas"`
	GeneralTotalLabel string            `json:"totalGeneralLabel"`
	GeneralTotal      decimal.Decimal   `json:"totalGeneral"`
}

func moneyRow(indicator string, amount decimal.Decimal) IndicatorRow {
	return IndicatorRow{Indicator: indicator, DisplayValue: utils.FormatMoney(amount)}
}

func totalRow(indicator string, amount decimal.Decimal) IndicatorRow {
	raw := amount
	return IndicatorRow{
		Indicator:    indicator,
		DisplayValue: utils.FormatMoney(amount),
		RawValue:     &raw,
		IsTotal:      true,
	}
}

// BuildIndicatorTable renders the fixed indicator rows for one period in
// display order, then the three total rows whose raw values sum to the
// general total (purchases and expenses enter negated).
func BuildIndicatorTable(k *KPISnapshot, period PeriodGranularity) *IndicatorTable {
	if k == nil {
		return nil
	}
	cfg, ok := periodConfigs[period]
	if !ok {
		return nil
	}

	rows := []IndicatorRow{
		moneyRow("Venta promedio", k.AverageTicket),
		moneyRow("Efectivo", k.CashTotal),
		moneyRow("Transferencia", k.TransferTotal),
		moneyRow("Tarjeta", k.CardTotal),
		moneyRow("Total en bancos", k.TransferTotal.Add(k.CardTotal)),
		moneyRow("Cheque", k.CheckTotal),
		moneyRow("Vales", k.VoucherTotal),
		moneyRow("Crédito", k.CreditTotal),
		{
			Indicator:    "% de devoluciones sobre ventas",
			DisplayValue: k.ReturnPercentage.StringFixed(2) + "%",
		},
		{
			Indicator:    "Número de ventas",
			DisplayValue: fmt.Sprintf("%d", k.TransactionCount),
		},
		totalRow(cfg.TotalIndicator, k.TotalRevenue),
		totalRow("Total en compras", k.PurchasesTotal.Neg()),
		totalRow("Total en gastos", k.ExpensesTotal.Neg()),
	}

	general := decimal.Zero
	for _, row := range rows {
		if row.RawValue != nil {
			general = general.Add(*row.RawValue)
		}
	}

	return &IndicatorTable{
		Period:            period,
		Rows:              rows,
		GeneralTotalLabel: cfg.GeneralLabel,
		GeneralTotal:      general,
	}
}

// PerformanceRow is one line of the period performance summary. Unlike the
// daily net profit, utility here subtracts both purchases and expenses.
type PerformanceRow struct {
	Period    string          `json:"periodo"`
	Revenue   decimal.Decimal `json:"ventas"`
	Purchases decimal.Decimal `json:"compras"`
	Expenses  decimal.Decimal `json:"gastos"`
	Utility   decimal.Decimal `json:"utilidad"`
	HasData   bool            `json:"hasData"`
}

func performanceRow(label string, k *KPISnapshot) PerformanceRow {
	row := PerformanceRow{Period: label}
	if k == nil {
		return row
	}
	row.Revenue = k.TotalRevenue
	row.Purchases = k.PurchasesTotal
	row.Expenses = k.ExpensesTotal
	row.Utility = k.TotalRevenue.Sub(k.PurchasesTotal).Sub(k.ExpensesTotal)
	row.HasData = true
	return row
}

// BuildPerformanceSummary renders the day/week/month performance rows.
// Missing snapshots still produce a zero row so the table shape is stable.
func BuildPerformanceSummary(day, week, month *KPISnapshot) []PerformanceRow {
	return []PerformanceRow{
		performanceRow("Diario", day),
		performanceRow("Semanal", week),
		performanceRow("Mensual", month),
	}
}
