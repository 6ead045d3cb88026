package models

import (
	"github.com/shopspring/decimal"
)

// ReturnImpact summarizes the period's returns for the return-rate alert.
type ReturnImpact struct {
	TotalReturned  decimal.Decimal `json:"totalDevuelto"`
	CashFlowImpact decimal.Decimal `json:"flujoCaja"`
	// ReturnRate is already a percentage (0-100), not a fraction.
	ReturnRate decimal.Decimal `json:"tasaDevolucion"`
}

// LowRotationProduct is a stock item flagged by the inventory module as
// selling slowly.
type LowRotationProduct struct {
	Id              int             `json:"id"`
	Name            string          `json:"nombre"`
	Stock           decimal.Decimal `json:"existencia"`
	LastSale        string          `json:"ultimaVenta"`
	DaysWithoutSale int             `json:"diasSinVenta"`
	SalePrice       decimal.Decimal `json:"precioVenta"`
	StuckValue      decimal.Decimal `json:"valorEstancado"`
}

// AlertContext is everything the alert rules may look at. Every field is
// optional: rules degrade to an informational or inactive result on missing
// data instead of failing.
type AlertContext struct {
	KpisDay   *KPISnapshot
	KpisWeek  *KPISnapshot
	KpisMonth *KPISnapshot
	Goals     *SalesGoals

	// WeekBuckets is the filtered weekly comparison series.
	WeekBuckets []WeekBucket
	Comparison  *MonthlyComparison

	ReturnImpact *ReturnImpact
	LowRotation  []LowRotationProduct
}

// DailyGoal resolves the sales goal for today: the planning module's goal
// when present, otherwise the one embedded in the daily snapshot.
func (ctx *AlertContext) DailyGoal() decimal.Decimal {
	if ctx.Goals != nil {
		return ctx.Goals.Daily
	}
	if ctx.KpisDay != nil {
		return ctx.KpisDay.DailyGoal
	}
	return decimal.Zero
}

// AlertEvaluation is the graded outcome of one managerial rule.
type AlertEvaluation struct {
	Severity     AlertSeverity `json:"severity"`
	IsTriggered  bool          `json:"isTriggered"`
	Detail       string        `json:"detail"`
	ActionDetail string        `json:"actionDetail"`
	StatusNote   string        `json:"statusNote"`
	Action       string        `json:"action"`
	// Progress is a 0-100 gauge position for the alert card.
	Progress float64 `json:"progress"`
}

// QuickAlertResult is one row of the operational quick-alert strip.
type QuickAlertResult struct {
	Title     string  `json:"titulo"`
	Condition string  `json:"condicion"`
	Action    string  `json:"accion"`
	Detail    string  `json:"detalle,omitempty"`
	IsActive  bool    `json:"activa"`
	Progress  float64 `json:"progreso"`
}

// ManagerialAlertResult is one evaluated managerial alert card.
type ManagerialAlertResult struct {
	Alert     string `json:"alerta"`
	Condition string `json:"condicion"`
	AlertEvaluation
	SeverityLabel string `json:"severityLabel"`
}
