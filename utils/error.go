package utils

import "errors"

var (
	// ErrInvalidDateRange is the only hard rejection in the aggregation
	// engine: everything else degrades to a zero/neutral result.
	ErrInvalidDateRange = errors.New("la fecha inicial no puede ser mayor que la final")

	ErrEmptyDateRange = errors.New("selecciona un rango de fechas válido")
)
