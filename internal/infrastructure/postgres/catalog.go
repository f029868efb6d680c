package postgres

import (
	"time"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

// catalogCols destino de scan para las columnas del LEFT JOIN con el
// catálogo global. El código viaja como puntero: nil significa que el
// producto no tiene entrada de catálogo (el core lo mapea a "Uncategorized").
type catalogCols struct {
	code           *string
	universe       string
	category       string
	subCategory    string
	family         string
	subFamily      string
	brandLab       string
	labDistributor string
	rangeName      string
	specificity    string
}

func (c *catalogCols) dest() []any {
	return []any{
		&c.code, &c.universe, &c.category, &c.subCategory, &c.family,
		&c.subFamily, &c.brandLab, &c.labDistributor, &c.rangeName, &c.specificity,
	}
}

func (c catalogCols) entry() *entity.CatalogEntry {
	if c.code == nil {
		return nil
	}
	return &entity.CatalogEntry{
		Code13Ref:      *c.code,
		Universe:       c.universe,
		Category:       c.category,
		SubCategory:    c.subCategory,
		Family:         c.family,
		SubFamily:      c.subFamily,
		BrandLab:       c.brandLab,
		LabDistributor: c.labDistributor,
		RangeName:      c.rangeName,
		Specificity:    c.specificity,
	}
}

// Fragmento SQL compartido de las columnas de catálogo, en el mismo orden
// que catalogCols.dest().
const catalogSelect = `
	    g.code_13_ref,
	    COALESCE(g.universe,        ''),
	    COALESCE(g.category,        ''),
	    COALESCE(g.sub_category,    ''),
	    COALESCE(g.family,          ''),
	    COALESCE(g.sub_family,      ''),
	    COALESCE(g.brand_lab,       ''),
	    COALESCE(g.lab_distributor, ''),
	    COALESCE(g.range_name,      ''),
	    COALESCE(g.specificity,     '')`

// textArray normaliza un filtro de conjunto para viajar como text[]:
// pgx serializa nil como NULL y el SQL usa cardinality() = 0 como "todos".
func textArray(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// lowerBound devuelve el límite inferior opcional de fecha como parámetro
// nullable: fecha cero = sin límite.
func lowerBound(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
