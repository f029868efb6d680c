package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

// Filas crudas de los streams de lectura. Las produce la DB (joins y filtrado
// únicamente); toda la agregación, agrupación y redondeo ocurre en el core.

// SellOutRow venta enlazada a su snapshot vigente, producto y catálogo.
type SellOutRow struct {
	ProductID            string
	PharmacyID           string
	Code13Ref            string
	Date                 time.Time
	Quantity             decimal.Decimal
	PriceWithTax         decimal.Decimal
	WeightedAveragePrice decimal.Decimal
	VATRate              decimal.Decimal
	Catalog              *entity.CatalogEntry // nil si el código no existe en el catálogo
}

// SellInRow línea de pedido de compra con el último snapshot del producto
// a la fecha de envío del pedido (resuelto por producto, no con corte global).
type SellInRow struct {
	ProductID            string
	PharmacyID           string
	Code13Ref            string
	SentDate             time.Time
	QuantityOrdered      decimal.Decimal
	QuantityReceived     decimal.Decimal
	PriceWithTax         decimal.Decimal
	WeightedAveragePrice decimal.Decimal
	VATRate              decimal.Decimal
	Catalog              *entity.CatalogEntry
}

// ShortfallRow línea en ruptura: recibido > 0 y pedido > recibido.
type ShortfallRow struct {
	Date     time.Time
	Quantity decimal.Decimal // pedido − recibido
}

// SnapshotRow snapshot histórico con los metadatos de producto que necesitan
// el agregador y el clasificador de posicionamiento.
type SnapshotRow struct {
	Snapshot   entity.InventorySnapshot
	PharmacyID string
	Code13Ref  string
	VATRate    decimal.Decimal
	Catalog    *entity.CatalogEntry
}

// SalesReader stream de sell-out (ventas al consumidor).
type SalesReader interface {
	// SellOut devuelve las ventas del rango con su par precio/costo del
	// snapshot referenciado. Respeta la cancelación del contexto.
	SellOut(ctx context.Context, f Filter) ([]SellOutRow, error)
}

// OrderReader stream de sell-in (pedidos a proveedores) y rupturas.
type OrderReader interface {
	// SellIn devuelve las líneas de pedido enviadas en el rango.
	SellIn(ctx context.Context, f Filter) ([]SellInRow, error)

	// Shortfalls devuelve las líneas en ruptura del rango, sin agrupar:
	// el bucketing por intervalo es responsabilidad del core.
	Shortfalls(ctx context.Context, f Filter) ([]ShortfallRow, error)
}

// SnapshotReader stream histórico de snapshots de inventario.
type SnapshotReader interface {
	// Snapshots devuelve el historial de snapshots con fecha ≤ f.EndDate de
	// los productos que pasan los filtros. StartDate cero = sin límite inferior.
	Snapshots(ctx context.Context, f Filter) ([]SnapshotRow, error)
}
