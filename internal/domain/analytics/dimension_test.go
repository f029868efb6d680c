package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

func TestParseDimension(t *testing.T) {
	valid := []string{
		"universe", "category", "sub_category", "brand_lab", "lab_distributor",
		"family", "sub_family", "range_name", "specificity",
	}
	for _, s := range valid {
		d, err := analytics.ParseDimension(s)
		require.NoError(t, err, "dimensión %q", s)
		assert.Equal(t, analytics.Dimension(s), d)
	}

	_, err := analytics.ParseDimension("price")
	assert.ErrorIs(t, err, domain.ErrUnknownDimension, "dimensión fuera del enum se rechaza, sin defaults silenciosos")
}

func TestSegment_CatalogoAusente(t *testing.T) {
	got := analytics.DimensionUniverse.Segment(nil)
	assert.Equal(t, analytics.Uncategorized, got, "producto sin catálogo va al bucket Uncategorized")
}

func TestSegment_AtributoVacio(t *testing.T) {
	c := &entity.CatalogEntry{Universe: "OTC"}

	assert.Equal(t, "OTC", analytics.DimensionUniverse.Segment(c))
	assert.Equal(t, analytics.Uncategorized, analytics.DimensionFamily.Segment(c),
		"atributo vacío también cae en Uncategorized")
}
