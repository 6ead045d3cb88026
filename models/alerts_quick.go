package models

import (
	"fmt"
	"sort"

	"github.com/crovdigital/gerente_backend/utils"
	"github.com/shopspring/decimal"
)

// Quick alerts are binary operational warnings for the top strip of the
// dashboard. Active alerts float to the top, preserving definition order
// among equals.

type quickAlertDefinition struct {
	title            string
	condition        string
	alwaysShowDetail bool
	evaluate         func(ctx *AlertContext) bool
	detail           func(ctx *AlertContext) string
	action           func(ctx *AlertContext) string
	progress         func(ctx *AlertContext) float64
}

func dayRevenue(ctx *AlertContext) decimal.Decimal {
	if ctx.KpisDay == nil {
		return decimal.Zero
	}
	return ctx.KpisDay.TotalRevenue
}

func goalProgressRatio(ctx *AlertContext) (float64, bool) {
	goal := ctx.DailyGoal()
	if !goal.IsPositive() {
		return 0, false
	}
	ratio, _ := dayRevenue(ctx).Div(goal).Float64()
	return ratio, true
}

func stuckProducts(ctx *AlertContext) []LowRotationProduct {
	var stuck []LowRotationProduct
	for _, p := range ctx.LowRotation {
		if p.DaysWithoutSale > 30 {
			stuck = append(stuck, p)
		}
	}
	return stuck
}

func stuckValue(ctx *AlertContext) decimal.Decimal {
	total := decimal.Zero
	for _, p := range stuckProducts(ctx) {
		total = total.Add(p.StuckValue)
	}
	return total
}

var quickAlertDefinitions = []quickAlertDefinition{
	{
		title:     "Ritmo de Venta Diario",
		condition: "Venta acumulada del día por debajo de la meta",
		evaluate: func(ctx *AlertContext) bool {
			if ctx.KpisDay == nil {
				return false
			}
			goal := ctx.DailyGoal()
			return goal.IsPositive() && ctx.KpisDay.TotalRevenue.LessThan(goal)
		},
		detail: func(ctx *AlertContext) string {
			ratio, ok := goalProgressRatio(ctx)
			if !ok {
				ratio = 0
			}
			return fmt.Sprintf("Avance: %.1f%%", ratio*100)
		},
		action: func(ctx *AlertContext) string {
			goal := ctx.DailyGoal()
			missing := goal.Sub(dayRevenue(ctx))
			if !missing.IsPositive() {
				return "✅ ¡Meta superada! Ritmo excelente."
			}
			if ratio, ok := goalProgressRatio(ctx); ok && ratio < 0.5 {
				return fmt.Sprintf("⚠️ LENTO: Faltan %s. ¡Contacta clientes!", utils.FormatMoney(missing))
			}
			return fmt.Sprintf("📉 ACELERA: Faltan %s.", utils.FormatMoney(missing))
		},
		progress: func(ctx *AlertContext) float64 {
			ratio, ok := goalProgressRatio(ctx)
			if !ok {
				return 0
			}
			return utils.MinFloat(ratio*100, 100)
		},
	},
	{
		title:     "Pérdida Operativa",
		condition: "Utilidad neta del día en negativo",
		evaluate: func(ctx *AlertContext) bool {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			return ok && profit.IsNegative()
		},
		detail: func(ctx *AlertContext) string {
			profit, _ := DailyNetProfit(ctx.KpisDay)
			return fmt.Sprintf("Saldo: %s", utils.FormatMoney(profit))
		},
		action: func(ctx *AlertContext) string {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			if !ok || !profit.IsNegative() {
				return "Operación saludable. Sin acciones."
			}
			loss := profit.Neg()
			if loss.GreaterThan(decimal.NewFromInt(1000)) {
				return fmt.Sprintf("🛑 ¡DÉFICIT GRAVE DE %s! Audita caja.", utils.FormatMoney(loss))
			}
			return fmt.Sprintf("⚠️ Cuidado: Estás perdiendo %s.", utils.FormatMoney(loss))
		},
		progress: func(ctx *AlertContext) float64 {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			if ok && profit.IsNegative() {
				return 100
			}
			return 0
		},
	},
	{
		title:     "Margen Crítico",
		condition: "Margen del día en negativo",
		evaluate: func(ctx *AlertContext) bool {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			return ok && profit.IsNegative()
		},
		detail: func(ctx *AlertContext) string {
			margin := 0.0
			if ctx.KpisDay != nil && ctx.KpisDay.TotalRevenue.IsPositive() {
				profit, _ := DailyNetProfit(ctx.KpisDay)
				ratio, _ := profit.Div(ctx.KpisDay.TotalRevenue).Float64()
				margin = ratio * 100
			}
			return fmt.Sprintf("Margen: %.1f%%", margin)
		},
		action: func(ctx *AlertContext) string {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			if !ok || !profit.IsNegative() {
				return "Margen saludable o sin ventas aún."
			}
			return "📉 Revisa urgentemente costos y precios de venta."
		},
		progress: func(ctx *AlertContext) float64 {
			profit, ok := DailyNetProfit(ctx.KpisDay)
			if ok && profit.IsNegative() {
				return 100
			}
			return 0
		},
	},
	{
		title:            "Capital Estancado",
		condition:        "Inventario con más de 30 días sin venta",
		alwaysShowDetail: true,
		evaluate: func(ctx *AlertContext) bool {
			return len(stuckProducts(ctx)) > 0
		},
		detail: func(ctx *AlertContext) string {
			return fmt.Sprintf("Retenido: %s", utils.FormatMoney(stuckValue(ctx)))
		},
		action: func(ctx *AlertContext) string {
			stuck := stuckProducts(ctx)
			if len(stuck) == 0 {
				return "Rotación de inventario fluida. Sin acciones."
			}
			return fmt.Sprintf("⚠️ ¡Acción! Recupera %s rematando %d productos.", utils.FormatMoney(stuckValue(ctx)), len(stuck))
		},
		progress: func(ctx *AlertContext) float64 {
			if len(stuckProducts(ctx)) > 0 {
				return 100
			}
			return 0
		},
	},
}

// EvaluateQuickAlerts runs every quick rule against the context. The detail
// line is omitted on inactive alerts unless the rule always shows it.
func EvaluateQuickAlerts(ctx *AlertContext) []QuickAlertResult {
	results := make([]QuickAlertResult, 0, len(quickAlertDefinitions))
	for _, def := range quickAlertDefinitions {
		active := def.evaluate(ctx)

		detail := ""
		if active || def.alwaysShowDetail {
			detail = def.detail(ctx)
		}

		results = append(results, QuickAlertResult{
			Title:     def.title,
			Condition: def.condition,
			Action:    def.action(ctx),
			Detail:    detail,
			IsActive:  active,
			Progress:  def.progress(ctx),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].IsActive && !results[j].IsActive
	})
	return results
}
