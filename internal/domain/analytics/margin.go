package analytics

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Margin resultado del cálculo de margen unitario de un snapshot.
type Margin struct {
	PriceExVAT decimal.Decimal // precio sin IVA
	Amount     decimal.Decimal // precio sin IVA − costo promedio ponderado
	Percentage decimal.Decimal // Amount / costo * 100; 0 si el costo ≤ 0
}

// ComputeMargin deriva precio sin IVA, margen y % de margen.
//
//	price_ex_vat = price_with_tax / (1 + vat/100)
//	margin       = round(price_ex_vat − weighted_average_price, 2)
//	margin_pct   = round(margin / weighted_average_price * 100, 2)
//
// El porcentaje se define como 0 (nunca se calcula) cuando el costo promedio
// ponderado es ≤ 0: no hay base de costo, no hay excepción.
func ComputeMargin(priceWithTax, vatRate, weightedAveragePrice decimal.Decimal) Margin {
	priceExVAT := decimal.Zero
	divisor := decimal.NewFromInt(1).Add(vatRate.Div(hundred))
	if divisor.IsPositive() {
		priceExVAT = priceWithTax.Div(divisor)
	}
	amount := priceExVAT.Sub(weightedAveragePrice).Round(2)

	pct := decimal.Zero
	if weightedAveragePrice.IsPositive() {
		pct = amount.Div(weightedAveragePrice).Mul(hundred).Round(2)
	}
	return Margin{PriceExVAT: priceExVAT, Amount: amount, Percentage: pct}
}

// UnitMarginWithTax margen unitario usado por el agregador de segmentos:
// precio con IVA − costo promedio llevado a precio con IVA.
//
//	price_with_tax − weighted_average_price * (1 + vat/100)
func UnitMarginWithTax(priceWithTax, vatRate, weightedAveragePrice decimal.Decimal) decimal.Decimal {
	return priceWithTax.Sub(weightedAveragePrice.Mul(decimal.NewFromInt(1).Add(vatRate.Div(hundred))))
}

// MarginBand banda de clasificación del % de margen.
type MarginBand string

const (
	MarginNegative  MarginBand = "negative"  // < 0
	MarginLow       MarginBand = "low"       // [0, 10)
	MarginMedium    MarginBand = "medium"    // [10, 20)
	MarginGood      MarginBand = "good"      // [20, 35]
	MarginExcellent MarginBand = "excellent" // > 35
)

var (
	marginTen        = decimal.NewFromInt(10)
	marginTwenty     = decimal.NewFromInt(20)
	marginThirtyFive = decimal.NewFromInt(35)
)

// ClassifyMargin clasifica un % de margen en su banda.
// Los límites son exactamente los documentados: 35 incluido en "good".
func ClassifyMargin(pct decimal.Decimal) MarginBand {
	switch {
	case pct.IsNegative():
		return MarginNegative
	case pct.LessThan(marginTen):
		return MarginLow
	case pct.LessThan(marginTwenty):
		return MarginMedium
	case pct.LessThanOrEqual(marginThirtyFive):
		return MarginGood
	default:
		return MarginExcellent
	}
}
