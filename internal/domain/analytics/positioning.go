package analytics

import (
	"github.com/shopspring/decimal"
)

// PriceBand banda de posicionamiento de precio frente al promedio poblacional.
// Cinco bandas exclusivas, contiguas y con límites exactos; la asimetría
// ([−15,−5) frente a (5,15]) es una regla de negocio heredada y se preserva
// tal cual en vez de simetrizarse.
type PriceBand string

const (
	PriceVeryLow  PriceBand = "veryLow"  // (−∞, −15)
	PriceLow      PriceBand = "low"      // [−15, −5)
	PriceAverage  PriceBand = "average"  // [−5, 5]
	PriceHigh     PriceBand = "high"     // (5, 15]
	PriceVeryHigh PriceBand = "veryHigh" // (15, +∞)
)

var (
	posFive    = decimal.NewFromInt(5)
	posFifteen = decimal.NewFromInt(15)
	negFive    = decimal.NewFromInt(-5)
	negFifteen = decimal.NewFromInt(-15)
)

// PriceDifferencePct desviación porcentual del precio frente al promedio:
// round((price − avg) / avg * 100, 2); 0 cuando el promedio es 0.
func PriceDifferencePct(price, avg decimal.Decimal) decimal.Decimal {
	if avg.IsZero() {
		return decimal.Zero
	}
	return price.Sub(avg).Div(avg).Mul(hundred).Round(2)
}

// ClassifyPricePosition clasifica la desviación porcentual en su banda.
// Toda desviación cae en exactamente una banda.
func ClassifyPricePosition(diffPct decimal.Decimal) PriceBand {
	switch {
	case diffPct.LessThan(negFifteen):
		return PriceVeryLow
	case diffPct.LessThan(negFive):
		return PriceLow
	case diffPct.LessThanOrEqual(posFive):
		return PriceAverage
	case diffPct.LessThanOrEqual(posFifteen):
		return PriceHigh
	default:
		return PriceVeryHigh
	}
}
