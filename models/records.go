package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Raw transactional records as delivered by the POS fetch layer. The json
// tags mirror the upstream payload field names exactly, so a dataset dumped
// from the POS API decodes without any mapping step.

type Product struct {
	Id   int    `json:"id"`
	Name string `json:"nombre"`
}

// SaleLine is one line item of a sale. Cost is the unit cost; the line's
// total cost is Cost * Quantity.
type SaleLine struct {
	Id       int             `json:"id"`
	Quantity decimal.Decimal `json:"cantidad"`
	Cost     decimal.Decimal `json:"costo"`
	Total    decimal.Decimal `json:"total"`
	Discount decimal.Decimal `json:"descuento"`
	Product  Product         `json:"producto"`
	// Active is a tri-state flag upstream: absent means active, 0 means
	// cancelled, anything else means active.
	Active *int `json:"activo"`
}

func (l SaleLine) IsActive() bool {
	return l.Active == nil || *l.Active != 0
}

func (l SaleLine) LineCost() decimal.Decimal {
	return l.Cost.Mul(l.Quantity)
}

type Sale struct {
	Id           int             `json:"id"`
	Folio        string          `json:"folio"`
	Total        decimal.Decimal `json:"total"`
	Date         string          `json:"fecha"`
	Status       string          `json:"estado"`
	ReturnDate   string          `json:"fecha_devolucion"`
	Discount     decimal.Decimal `json:"descuento"`
	DiscountKind string          `json:"tipo_descuento"`
	Active       *int            `json:"activo"`
	Lines        []SaleLine      `json:"detalles"`
}

// IsActive reports whether the sale counts toward monetary aggregates:
// not cancelled and not a quotation.
func (s Sale) IsActive() bool {
	if s.Active != nil && *s.Active == 0 {
		return false
	}
	return s.Status != StatusQuotation
}

// HasDiscount is true when the sale carries a header discount or any active
// line carries one.
func (s Sale) HasDiscount() bool {
	if s.Discount.IsPositive() {
		return true
	}
	for _, line := range s.Lines {
		if line.IsActive() && line.Discount.IsPositive() {
			return true
		}
	}
	return false
}

type Expense struct {
	Id     int             `json:"id"`
	Amount decimal.Decimal `json:"monto"`
	Date   string          `json:"fecha"`
	Detail string          `json:"detalle"`
	Active *int            `json:"activo"`
}

func (e Expense) IsActive() bool {
	return e.Active == nil || *e.Active != 0
}

// Return is a returned sale. Its effective date is the return date when
// present, otherwise the original sale date.
type Return struct {
	Id         int             `json:"id"`
	Folio      string          `json:"folio"`
	Total      decimal.Decimal `json:"total"`
	Date       string          `json:"fecha"`
	ReturnDate string          `json:"fecha_devolucion"`
	Status     string          `json:"estado"`
}

func (r Return) EffectiveDate() string {
	if r.ReturnDate != "" {
		return r.ReturnDate
	}
	return r.Date
}

var recordDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseRecordDate parses an upstream date string and truncates it to a UTC
// calendar date. All bucketing works on date-only values, never clock time.
func ParseRecordDate(value string) (time.Time, bool) {
	for _, layout := range recordDateLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return DateOnly(t), true
	}
	return time.Time{}, false
}

// DateOnly drops the clock-time portion of t, keeping year/month/day in UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
