package entity

import (
	"github.com/shopspring/decimal"
)

// Product instancia local de un producto en una farmacia.
// El enlace con el catálogo global se hace por Code13Ref (EAN13);
// un producto sin entrada en el catálogo sigue siendo válido.
// Este core lo trata como solo lectura: la ingesta externa es quien crea/actualiza.
type Product struct {
	ID         string
	PharmacyID string
	Code13Ref  string          // código EAN13 de referencia al catálogo global
	VATRate    decimal.Decimal // % de IVA (ej. 2.10, 5.50, 10.00, 20.00)
}
