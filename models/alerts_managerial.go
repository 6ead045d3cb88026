package models

import (
	"fmt"
	"sort"

	"github.com/crovdigital/gerente_backend/utils"
	"github.com/shopspring/decimal"
)

// Managerial alerts grade the business health on a five level scale. Margin
// thresholds compare exact decimals so a margin of exactly 5% lands in the
// warning band, never in critical.

var (
	marginCritical = decimal.RequireFromString("0.05")
	marginWarning  = decimal.RequireFromString("0.15")
	marginStable   = decimal.RequireFromString("0.25")

	cashFlowCritical = decimal.NewFromInt(-5000)
	cashFlowStable   = decimal.NewFromInt(5000)
)

type managerialAlertDefinition struct {
	alert          string
	condition      string
	fallbackAction string
	evaluate       func(ctx *AlertContext) AlertEvaluation
}

func infoEvaluation(detail, action string) AlertEvaluation {
	return AlertEvaluation{
		Severity: SeverityInfo,
		Detail:   detail,
		Action:   action,
		Progress: 0,
	}
}

func evaluateNetMargin(ctx *AlertContext) AlertEvaluation {
	month := ctx.KpisMonth
	if month == nil {
		return infoEvaluation("Sin datos", "Esperando cierre de caja para calcular.")
	}
	if !month.TotalRevenue.IsPositive() {
		return infoEvaluation("Sin ventas", "Inicia operaciones para calcular.")
	}

	utility := month.TotalRevenue.Sub(month.PurchasesTotal).Sub(month.ExpensesTotal)
	margin := utility.Div(month.TotalRevenue)
	marginPct, _ := margin.Mul(decimal.NewFromInt(100)).Float64()

	eval := AlertEvaluation{
		Detail:       fmt.Sprintf("Margen: %.1f%%", marginPct),
		ActionDetail: fmt.Sprintf("Utilidad: %s", utils.FormatMoney(utility)),
		Progress:     utils.ClampFloat(marginPct, 0, 100),
	}

	switch {
	case margin.LessThan(marginCritical):
		eval.Severity = SeverityCritical
		eval.IsTriggered = true
		eval.Progress = 0
		eval.StatusNote = "Rentabilidad crítica."
		eval.Action = "¡URGENTE! Detén compras y audita fugas de dinero/merma."
	case margin.LessThan(marginWarning):
		eval.Severity = SeverityWarning
		eval.IsTriggered = true
		eval.StatusNote = "Margen bajo."
		eval.Action = "Sube precios selectivos o renegocia con proveedores."
	case margin.LessThan(marginStable):
		eval.Severity = SeverityNeutral
		eval.StatusNote = "Margen saludable."
		eval.Action = "Reduce gastos hormiga para saltar al siguiente nivel."
	default:
		eval.Severity = SeverityStable
		eval.StatusNote = "Rentabilidad excelente."
		eval.Action = "Capitaliza: Invierte en stock de alta rotación o expansión."
	}
	return eval
}

func evaluateCashFlow(ctx *AlertContext) AlertEvaluation {
	if len(ctx.WeekBuckets) == 0 {
		return infoEvaluation("Calculando...", "Esperando datos del periodo.")
	}

	recent := make([]WeekBucket, len(ctx.WeekBuckets))
	copy(recent, ctx.WeekBuckets)
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].RangeEnd.Before(recent[j].RangeEnd)
	})
	if len(recent) > 2 {
		recent = recent[len(recent)-2:]
	}

	flow := decimal.Zero
	for i := range recent {
		flow = flow.Add(recent[i].Utility())
	}

	eval := AlertEvaluation{
		Detail: fmt.Sprintf("Flujo: %s", utils.FormatMoney(flow)),
	}

	switch {
	case flow.LessThan(cashFlowCritical):
		eval.Severity = SeverityCritical
		eval.IsTriggered = true
		eval.Progress = 0
		eval.StatusNote = "Fuga de capital."
		eval.ActionDetail = "Detener gastos."
		eval.Action = "¡Corte de gastos total! Solo paga nómina y luz."
	case flow.IsNegative():
		eval.Severity = SeverityWarning
		eval.IsTriggered = true
		eval.Progress = 20
		eval.StatusNote = "Balance negativo."
		eval.ActionDetail = "Revisar salidas."
		eval.Action = "Incentiva pagos en efectivo o de contado ya."
	case flow.LessThan(cashFlowStable):
		eval.Severity = SeverityNeutral
		eval.Progress = 50
		eval.StatusNote = "Flujo positivo ajustado."
		eval.ActionDetail = "Vigilancia."
		eval.Action = "Cuidado con las fechas de pago a proveedores."
	default:
		eval.Severity = SeverityStable
		eval.Progress = 100
		eval.StatusNote = "Finanzas sanas."
		eval.ActionDetail = "Flujo libre."
		eval.Action = "Crea un fondo de emergencia con este excedente."
	}
	return eval
}

func evaluateSalesTrend(ctx *AlertContext) AlertEvaluation {
	comparison := ctx.Comparison
	if comparison == nil || !comparison.Previous.Revenue.IsPositive() {
		return infoEvaluation("Sin historial", "Recolectando data histórica...")
	}

	growthDec := comparison.Current.Revenue.Sub(comparison.Previous.Revenue).Div(comparison.Previous.Revenue)
	growth, _ := growthDec.Float64()

	eval := AlertEvaluation{
		Detail:       fmt.Sprintf("Variación: %.1f%%", growth*100),
		ActionDetail: fmt.Sprintf("Venta actual: %s", utils.FormatMoney(comparison.Current.Revenue)),
	}

	switch {
	case growth < -0.8:
		// A collapse this deep almost always means the current window just
		// started, not that sales vanished.
		eval.Severity = SeverityInfo
		eval.Detail = "Inicio de periodo"
		eval.Progress = 10
		eval.StatusNote = "Acumulando datos..."
		eval.ActionDetail = "Pendiente."
		eval.Action = "Lanza una oferta de arranque para mover el periodo."
	case growth < -0.1:
		eval.Severity = SeverityCritical
		eval.IsTriggered = true
		eval.Progress = 20
		eval.StatusNote = "Caída significativa."
		eval.Action = "Activa \"Liquidación Flash\" para recuperar liquidez."
	case growth < 0:
		eval.Severity = SeverityWarning
		eval.IsTriggered = true
		eval.Progress = 40
		eval.StatusNote = "Ligero descenso."
		eval.Action = "Contacta clientes inactivos por WhatsApp/Email."
	case growth < 0.05:
		eval.Severity = SeverityNeutral
		eval.Progress = 60
		eval.StatusNote = "Ventas estables."
		eval.Action = "Arma paquetes (Bundles) para subir el ticket promedio."
	default:
		eval.Severity = SeverityStable
		eval.Progress = 100
		eval.StatusNote = "Crecimiento sólido."
		eval.Action = "Momento ideal para probar nuevos canales de venta."
	}
	return eval
}

func evaluateReturnRate(ctx *AlertContext) AlertEvaluation {
	impact := ctx.ReturnImpact
	if impact == nil || impact.TotalReturned.IsZero() {
		return AlertEvaluation{
			Severity:     SeverityStable,
			Detail:       "0.0% ($0.00)",
			Progress:     0,
			StatusNote:   "Tasa óptima.",
			ActionDetail: "Excelente.",
			Action:       "Felicita a tu equipo: Calidad impecable.",
		}
	}

	rate, _ := impact.ReturnRate.Float64()
	returned := utils.FormatMoney(impact.TotalReturned)
	progress := utils.MinFloat(rate/30*100, 100)

	eval := AlertEvaluation{
		Detail:   fmt.Sprintf("%.2f%% retenido (%s)", rate, returned),
		Progress: progress,
	}

	switch {
	case rate >= 30:
		eval.Severity = SeverityCritical
		eval.IsTriggered = true
		eval.Progress = 100
		eval.StatusNote = fmt.Sprintf("Impacto de %s.", returned)
		eval.ActionDetail = "Revisar urgente."
		eval.Action = fmt.Sprintf("¡Alto! Límite mensual (30%%) rebasado. Fuga de %s.", returned)
	case rate >= 20:
		eval.Severity = SeverityWarning
		eval.IsTriggered = true
		eval.StatusNote = "Acercándose al límite."
		eval.ActionDetail = "Monitorear."
		eval.Action = fmt.Sprintf("Merma de %s. Revisa si el fallo es de fábrica o por empaque.", returned)
	case rate >= 10:
		eval.Severity = SeverityNeutral
		eval.StatusNote = "Nivel aceptable."
		eval.ActionDetail = "Reducir incidencias."
		eval.Action = "Implementa encuesta de satisfacción post-venta."
	default:
		eval.Severity = SeverityStable
		eval.Progress = utils.MaxFloat(progress, 5)
		eval.StatusNote = "Tasa óptima."
		eval.ActionDetail = "Excelente."
		eval.Action = fmt.Sprintf("Devoluciones mínimas (%s). Calidad impecable.", returned)
	}
	return eval
}

var managerialAlertDefinitions = []managerialAlertDefinition{
	{
		alert:          "Margen de Utilidad Neta",
		condition:      "Utilidad mensual sobre ventas del mes",
		fallbackAction: "Esperando cierre de caja para calcular.",
		evaluate:       evaluateNetMargin,
	},
	{
		alert:          "Flujo de Caja",
		condition:      "Utilidad de las últimas dos semanas",
		fallbackAction: "Esperando datos del periodo.",
		evaluate:       evaluateCashFlow,
	},
	{
		alert:          "Tendencia de Ventas",
		condition:      "Venta del periodo contra el periodo anterior",
		fallbackAction: "Recolectando data histórica...",
		evaluate:       evaluateSalesTrend,
	},
	{
		alert:          "Tasa de Devoluciones",
		condition:      "Monto devuelto sobre ventas del periodo",
		fallbackAction: "Felicita a tu equipo: Calidad impecable.",
		evaluate:       evaluateReturnRate,
	},
}

// EvaluateManagerialAlerts runs the four graded rules in definition order.
func EvaluateManagerialAlerts(ctx *AlertContext) []ManagerialAlertResult {
	results := make([]ManagerialAlertResult, 0, len(managerialAlertDefinitions))
	for _, def := range managerialAlertDefinitions {
		eval := def.evaluate(ctx)
		if eval.Action == "" {
			eval.Action = def.fallbackAction
		}
		results = append(results, ManagerialAlertResult{
			Alert:           def.alert,
			Condition:       def.condition,
			AlertEvaluation: eval,
			SeverityLabel:   eval.Severity.Label(),
		})
	}
	return results
}
