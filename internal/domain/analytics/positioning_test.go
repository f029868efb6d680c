package analytics_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
)

func TestPriceDifferencePct(t *testing.T) {
	// (110 − 100) / 100 * 100 = 10.00
	got := analytics.PriceDifferencePct(dec("110"), dec("100"))
	assert.True(t, got.Equal(dec("10.00")), "desviación: %s", got)

	// Promedio 0 (población sin precio): desviación 0, nunca división por cero.
	assert.True(t, analytics.PriceDifferencePct(dec("50"), decimal.Zero).IsZero())
}

func TestClassifyPricePosition_LimitesExactos(t *testing.T) {
	// Las bandas son asimétricas: −15 y −5 abren banda, 5 y 15 la cierran.
	cases := []struct {
		diff string
		want analytics.PriceBand
	}{
		{"-15.01", analytics.PriceVeryLow},
		{"-15", analytics.PriceLow},
		{"-5.01", analytics.PriceLow},
		{"-5", analytics.PriceAverage},
		{"0", analytics.PriceAverage},
		{"5", analytics.PriceAverage},
		{"5.01", analytics.PriceHigh},
		{"15", analytics.PriceHigh},
		{"15.01", analytics.PriceVeryHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, analytics.ClassifyPricePosition(dec(c.diff)), "diff=%s", c.diff)
	}
}

// Toda desviación cae en exactamente una banda: barrido sobre un rango amplio.
func TestClassifyPricePosition_ParticionTotal(t *testing.T) {
	for d := -300; d <= 300; d++ {
		diff := decimal.NewFromInt(int64(d)).Div(decimal.NewFromInt(10))
		band := analytics.ClassifyPricePosition(diff)
		assert.Contains(t, []analytics.PriceBand{
			analytics.PriceVeryLow, analytics.PriceLow, analytics.PriceAverage,
			analytics.PriceHigh, analytics.PriceVeryHigh,
		}, band, "diff=%s sin banda", diff)
	}
}
