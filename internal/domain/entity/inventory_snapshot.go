package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot observación del estado de inventario de un producto en una fecha.
// Serie append-only: una fila por producto y fecha observada, fechas monótonas por producto.
// "Estado actual a la fecha D" = snapshot con la fecha máxima ≤ D.
type InventorySnapshot struct {
	ID                   int64 // secuencia interna; desempata fechas duplicadas
	ProductID            string
	Date                 time.Time
	Stock                decimal.Decimal // cantidad en stock observada
	WeightedAveragePrice decimal.Decimal // costo promedio ponderado por unidad
	PriceWithTax         decimal.Decimal // precio de venta con IVA
}
