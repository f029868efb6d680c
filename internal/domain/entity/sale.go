package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleEvent venta al consumidor final (sell-out).
// Referencia el snapshot de inventario vigente al momento de la venta,
// que aporta el par precio/costo usado en los cálculos de margen.
type SaleEvent struct {
	ID         int64
	SnapshotID int64
	ProductID  string
	Date       time.Time
	Quantity   decimal.Decimal
}
