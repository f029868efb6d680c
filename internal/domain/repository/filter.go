package repository

import (
	"fmt"
	"time"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
)

// Filter filtros comunes de los streams de lectura.
// Conjuntos vacíos significan "todos"; nunca se interpolan en SQL,
// siempre viajan como parámetros de array.
type Filter struct {
	StartDate    time.Time
	EndDate      time.Time
	PharmacyIDs  []string // vacío = todas las farmacias
	ProductCodes []string // vacío = todos los códigos (code_13_ref)
}

// ValidateRange rechaza rangos ausentes o invertidos antes de tocar datos.
func (f Filter) ValidateRange() error {
	if f.StartDate.IsZero() || f.EndDate.IsZero() {
		return fmt.Errorf("%w: fechas de inicio y fin son obligatorias", domain.ErrInvalidDateRange)
	}
	if f.StartDate.After(f.EndDate) {
		return fmt.Errorf("%w: inicio %s posterior a fin %s",
			domain.ErrInvalidDateRange,
			f.StartDate.Format("2006-01-02"), f.EndDate.Format("2006-01-02"))
	}
	return nil
}
