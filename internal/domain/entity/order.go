package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrder pedido de compra a un proveedor (sell-in).
type PurchaseOrder struct {
	ID         string
	PharmacyID string
	SentDate   time.Time
}

// OrderLine línea de un pedido de compra.
type OrderLine struct {
	ID               int64
	OrderID          string
	ProductID        string
	QuantityOrdered  decimal.Decimal
	QuantityReceived decimal.Decimal
}

// Shortfall cantidad en ruptura de la línea: pedido − recibido.
// Solo hay ruptura si se recibió algo y se recibió menos de lo pedido.
func (l OrderLine) Shortfall() decimal.Decimal {
	if l.QuantityReceived.IsPositive() && l.QuantityOrdered.GreaterThan(l.QuantityReceived) {
		return l.QuantityOrdered.Sub(l.QuantityReceived)
	}
	return decimal.Zero
}
