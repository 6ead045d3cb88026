package models

// AlertSeverity grades an alert evaluation from worst to best. The string
// values travel as-is in the report JSON.
type AlertSeverity string

const (
	SeverityCritical AlertSeverity = "critical"
	SeverityWarning  AlertSeverity = "warning"
	SeverityNeutral  AlertSeverity = "neutral"
	SeverityStable   AlertSeverity = "stable"
	SeverityInfo     AlertSeverity = "info"
)

var severityLabels = map[AlertSeverity]string{
	SeverityCritical: "Crítico",
	SeverityWarning:  "Cuidado",
	SeverityNeutral:  "Regular",
	SeverityStable:   "Óptimo",
	SeverityInfo:     "Info",
}

func (s AlertSeverity) Label() string {
	if label, ok := severityLabels[s]; ok {
		return label
	}
	return string(s)
}

func (s AlertSeverity) IsValid() bool {
	_, ok := severityLabels[s]
	return ok
}

// PeriodGranularity selects which KPI snapshot an indicator table describes.
type PeriodGranularity string

const (
	PeriodDay   PeriodGranularity = "day"
	PeriodWeek  PeriodGranularity = "week"
	PeriodMonth PeriodGranularity = "month"
)

type periodConfig struct {
	TotalIndicator string
	GeneralLabel   string
}

var periodConfigs = map[PeriodGranularity]periodConfig{
	PeriodDay:   {TotalIndicator: "Ventas totales del día", GeneralLabel: "Total general diario"},
	PeriodWeek:  {TotalIndicator: "Ventas totales de la semana", GeneralLabel: "Total general semanal"},
	PeriodMonth: {TotalIndicator: "Ventas totales del mes", GeneralLabel: "Total general mensual"},
}

func (p PeriodGranularity) IsValid() bool {
	_, ok := periodConfigs[p]
	return ok
}

// StatusQuotation marks a sale that was quoted but never closed. Quotations
// never count as revenue regardless of their active flag.
const StatusQuotation = "COTIZACION"
