package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Piamias-Victor/new-sub003/internal/application/usecase"
	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

func instancia(id int64, productID, pharmacyID, code, price string) repository.SnapshotRow {
	return repository.SnapshotRow{
		Snapshot: entity.InventorySnapshot{
			ID:           id,
			ProductID:    productID,
			Date:         day(2024, 1, 10),
			Stock:        dec("1"),
			PriceWithTax: dec(price),
		},
		PharmacyID: pharmacyID,
		Code13Ref:  code,
	}
}

func TestClassify_PromedioSobrePoblacionCompleta(t *testing.T) {
	// El mismo código en tres farmacias; la selección pide solo ph-a pero el
	// promedio se calcula sobre las tres.
	snapshots := &fakeSnapshots{rows: []repository.SnapshotRow{
		instancia(1, "p-a", "ph-a", "3400000000017", "100"),
		instancia(2, "p-b", "ph-b", "3400000000017", "110"),
		instancia(3, "p-c", "ph-c", "3400000000017", "90"),
	}}
	uc := usecase.NewPositioningUseCase(snapshots)

	out, err := uc.Classify(context.Background(), usecase.PositioningQuery{
		AsOf:        day(2024, 1, 15),
		PharmacyIDs: []string{"ph-a"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1, "la selección decide qué instancias devolver, no la población")

	pos := out[0]
	assert.Equal(t, "ph-a", pos.PharmacyID)
	assert.True(t, pos.AvgPrice.Equal(dec("100.00")), "promedio poblacional: %s", pos.AvgPrice)
	assert.True(t, pos.MinPrice.Equal(dec("90")))
	assert.True(t, pos.MaxPrice.Equal(dec("110")))
	assert.True(t, pos.PriceDifferencePercentage.IsZero())
	assert.Equal(t, "average", pos.Positioning)
}

func TestClassify_BandasPorDesviacion(t *testing.T) {
	// Población {100, 120}: promedio 110; 100 → −9.09 (low), 120 → 9.09 (high).
	snapshots := &fakeSnapshots{rows: []repository.SnapshotRow{
		instancia(1, "p-a", "ph-a", "3400000000024", "100"),
		instancia(2, "p-b", "ph-b", "3400000000024", "120"),
	}}
	uc := usecase.NewPositioningUseCase(snapshots)

	out, err := uc.Classify(context.Background(), usecase.PositioningQuery{AsOf: day(2024, 1, 15)})
	require.NoError(t, err)
	require.Len(t, out, 2)

	porProducto := make(map[string]string, 2)
	for _, pos := range out {
		porProducto[pos.ProductID] = pos.Positioning
	}
	assert.Equal(t, "low", porProducto["p-a"])
	assert.Equal(t, "high", porProducto["p-b"])
}

func TestClassify_UsaElSnapshotVigenteAlCorte(t *testing.T) {
	viejo := instancia(1, "p-a", "ph-a", "3400000000031", "100")
	vigente := instancia(2, "p-a", "ph-a", "3400000000031", "200")
	vigente.Snapshot.Date = day(2024, 1, 12)
	posterior := instancia(3, "p-a", "ph-a", "3400000000031", "300")
	posterior.Snapshot.Date = day(2024, 2, 1)

	snapshots := &fakeSnapshots{rows: []repository.SnapshotRow{viejo, vigente, posterior}}
	uc := usecase.NewPositioningUseCase(snapshots)

	out, err := uc.Classify(context.Background(), usecase.PositioningQuery{AsOf: day(2024, 1, 15)})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Price.Equal(dec("200")), "precio vigente al corte: %s", out[0].Price)
}

func TestClassify_PoblacionSinPrecio(t *testing.T) {
	snapshots := &fakeSnapshots{rows: []repository.SnapshotRow{
		instancia(1, "p-a", "ph-a", "3400000000048", "0"),
		instancia(2, "p-b", "ph-b", "3400000000048", "0"),
	}}
	uc := usecase.NewPositioningUseCase(snapshots)

	out, err := uc.Classify(context.Background(), usecase.PositioningQuery{AsOf: day(2024, 1, 15)})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, pos := range out {
		assert.True(t, pos.PriceDifferencePercentage.IsZero(), "promedio 0: desviación 0, sin división por cero")
		assert.Equal(t, "average", pos.Positioning)
	}
}

func TestClassify_OrdenDeterminista(t *testing.T) {
	snapshots := &fakeSnapshots{rows: []repository.SnapshotRow{
		instancia(1, "p-z", "ph-a", "3400000000055", "10"),
		instancia(2, "p-a", "ph-b", "3400000000055", "10"),
		instancia(3, "p-m", "ph-c", "3400000000017", "10"),
	}}
	uc := usecase.NewPositioningUseCase(snapshots)

	out, err := uc.Classify(context.Background(), usecase.PositioningQuery{AsOf: day(2024, 1, 15)})
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "p-m", out[0].ProductID, "orden por código y luego por producto")
	assert.Equal(t, "p-a", out[1].ProductID)
	assert.Equal(t, "p-z", out[2].ProductID)
}
