package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// Source origen de datos de una agregación o serie de evolución.
// Enumeración cerrada; los tres orígenes comparten contrato de agregación,
// solo cambia el join y el par cantidad/precio que se suma.
type Source string

const (
	SourceSellOut Source = "sell-out" // ventas unidas a su snapshot
	SourceStock   Source = "stock"    // valoración de inventario a una fecha
	SourceSellIn  Source = "sell-in"  // líneas de pedido a proveedores
)

// ParseSource valida el origen. Vacío equivale a sell-out; "sales" se acepta
// como alias histórico de sell-out.
func ParseSource(s string) (Source, error) {
	switch s {
	case "", "sell-out", "sales":
		return SourceSellOut, nil
	case "stock":
		return SourceStock, nil
	case "sell-in":
		return SourceSellIn, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownSource, s)
	}
}

// parseDate interpreta YYYY-MM-DD en hora local.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: fecha %q (se espera YYYY-MM-DD)", domain.ErrInvalidInput, s)
	}
	return t, nil
}

// endOfDay lleva la fecha al último instante del día para que el rango sea
// inclusivo en el extremo final.
func endOfDay(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.Add(24*time.Hour - time.Nanosecond)
}

// splitCSV separa un parámetro CSV en valores no vacíos.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// parseFilter construye el filtro común a partir de los parámetros crudos.
// Valida el rango antes de cualquier acceso a datos.
func parseFilter(startStr, endStr, pharmacyCSV, codesCSV string) (repository.Filter, error) {
	f := repository.Filter{
		PharmacyIDs:  splitCSV(pharmacyCSV),
		ProductCodes: splitCSV(codesCSV),
	}
	if startStr == "" || endStr == "" {
		return repository.Filter{}, fmt.Errorf("%w: start_date y end_date son obligatorios", domain.ErrInvalidDateRange)
	}
	start, err := parseDate(startStr)
	if err != nil {
		return repository.Filter{}, err
	}
	end, err := parseDate(endStr)
	if err != nil {
		return repository.Filter{}, err
	}
	f.StartDate = start
	f.EndDate = endOfDay(end)
	if err := f.ValidateRange(); err != nil {
		return repository.Filter{}, err
	}
	return f, nil
}

// parseAsOf interpreta la fecha de corte; vacía equivale a hoy.
func parseAsOf(s string) (time.Time, error) {
	if s == "" {
		return endOfDay(time.Now()), nil
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return endOfDay(t), nil
}
