package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func snap(id int64, productID string, date time.Time, stock int64) entity.InventorySnapshot {
	return entity.InventorySnapshot{
		ID:        id,
		ProductID: productID,
		Date:      date,
		Stock:     decimal.NewFromInt(stock),
	}
}

func TestResolve_FechaIntermedia(t *testing.T) {
	r := analytics.NewSnapshotResolver([]entity.InventorySnapshot{
		snap(1, "p1", day(2024, 1, 1), 10),
		snap(2, "p1", day(2024, 1, 10), 8),
		snap(3, "p1", day(2024, 1, 20), 5),
	})

	s, ok := r.Resolve("p1", day(2024, 1, 15))
	require.True(t, ok, "debe existir snapshot a 2024-01-15")
	assert.True(t, s.Date.Equal(day(2024, 1, 10)), "gana el snapshot más reciente ≤ corte")
	assert.Equal(t, int64(2), s.ID)
}

func TestResolve_SinDatosAnteriores(t *testing.T) {
	r := analytics.NewSnapshotResolver([]entity.InventorySnapshot{
		snap(1, "p1", day(2024, 1, 1), 10),
		snap(2, "p1", day(2024, 1, 10), 8),
		snap(3, "p1", day(2024, 1, 20), 5),
	})

	_, ok := r.Resolve("p1", day(2023, 12, 31))
	assert.False(t, ok, "sin snapshot anterior al corte debe reportar sin datos, no error")
}

func TestResolve_ProductoDesconocido(t *testing.T) {
	r := analytics.NewSnapshotResolver(nil)

	_, ok := r.Resolve("inexistente", day(2024, 1, 15))
	assert.False(t, ok)
}

func TestResolve_FechaExacta(t *testing.T) {
	r := analytics.NewSnapshotResolver([]entity.InventorySnapshot{
		snap(1, "p1", day(2024, 1, 10), 8),
	})

	s, ok := r.Resolve("p1", day(2024, 1, 10))
	require.True(t, ok, "el corte es inclusivo")
	assert.Equal(t, int64(1), s.ID)
}

// Fechas duplicadas por upstream malformado: gana la secuencia más alta,
// de forma determinista, nunca un promedio.
func TestResolve_FechasDuplicadas(t *testing.T) {
	r := analytics.NewSnapshotResolver([]entity.InventorySnapshot{
		snap(7, "p1", day(2024, 1, 10), 8),
		snap(9, "p1", day(2024, 1, 10), 3),
		snap(8, "p1", day(2024, 1, 10), 5),
	})

	s, ok := r.Resolve("p1", day(2024, 1, 15))
	require.True(t, ok)
	assert.Equal(t, int64(9), s.ID, "con fecha empatada gana la secuencia interna más alta")
}

// Cada producto se resuelve con su propia cadencia: un corte que deja fuera
// a un producto no arrastra a los demás.
func TestResolveAll_IndependientePorProducto(t *testing.T) {
	r := analytics.NewSnapshotResolver([]entity.InventorySnapshot{
		snap(1, "p1", day(2024, 1, 1), 10),
		snap(2, "p1", day(2024, 1, 14), 6),
		snap(3, "p2", day(2024, 1, 2), 4),
		snap(4, "p3", day(2024, 2, 1), 9), // posterior al corte
	})

	latest := r.ResolveAll(day(2024, 1, 15))

	require.Len(t, latest, 2)
	assert.Equal(t, int64(2), latest["p1"].ID)
	assert.Equal(t, int64(3), latest["p2"].ID)
	_, ok := latest["p3"]
	assert.False(t, ok, "p3 no tiene datos al corte y simplemente no aparece")
}
