// Package analytics contiene los servicios de dominio puros del core analítico:
// enumeración de dimensiones, cálculo de margen, resolución de snapshots,
// bucketing por intervalo y posicionamiento de precio.
package analytics

import (
	"fmt"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

// Dimension eje de taxonomía sobre el que se agrupa una agregación.
// Enumeración cerrada mapeada a accesores tipados: nunca se interpola
// un nombre de campo del cliente en una consulta.
type Dimension string

const (
	DimensionUniverse       Dimension = "universe"
	DimensionCategory       Dimension = "category"
	DimensionSubCategory    Dimension = "sub_category"
	DimensionBrandLab       Dimension = "brand_lab"
	DimensionLabDistributor Dimension = "lab_distributor"
	DimensionFamily         Dimension = "family"
	DimensionSubFamily      Dimension = "sub_family"
	DimensionRangeName      Dimension = "range_name"
	DimensionSpecificity    Dimension = "specificity"
)

// Uncategorized segmento asignado a productos sin entrada de catálogo
// o con el atributo de taxonomía vacío. Nunca se descarta un producto.
const Uncategorized = "Uncategorized"

var dimensionAccessors = map[Dimension]func(entity.CatalogEntry) string{
	DimensionUniverse:       func(c entity.CatalogEntry) string { return c.Universe },
	DimensionCategory:       func(c entity.CatalogEntry) string { return c.Category },
	DimensionSubCategory:    func(c entity.CatalogEntry) string { return c.SubCategory },
	DimensionBrandLab:       func(c entity.CatalogEntry) string { return c.BrandLab },
	DimensionLabDistributor: func(c entity.CatalogEntry) string { return c.LabDistributor },
	DimensionFamily:         func(c entity.CatalogEntry) string { return c.Family },
	DimensionSubFamily:      func(c entity.CatalogEntry) string { return c.SubFamily },
	DimensionRangeName:      func(c entity.CatalogEntry) string { return c.RangeName },
	DimensionSpecificity:    func(c entity.CatalogEntry) string { return c.Specificity },
}

// ParseDimension valida el nombre de dimensión contra la enumeración cerrada.
// Un valor no reconocido se rechaza como error del cliente, nunca se
// sustituye silenciosamente por una dimensión por defecto.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(s)
	if _, ok := dimensionAccessors[d]; !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnknownDimension, s)
	}
	return d, nil
}

// Segment devuelve el valor de segmento de una entrada de catálogo para esta
// dimensión. Entrada nil (producto sin catálogo) o atributo vacío → Uncategorized.
func (d Dimension) Segment(c *entity.CatalogEntry) string {
	if c == nil {
		return Uncategorized
	}
	accessor, ok := dimensionAccessors[d]
	if !ok {
		return Uncategorized
	}
	if v := accessor(*c); v != "" {
		return v
	}
	return Uncategorized
}
