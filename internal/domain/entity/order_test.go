package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

func TestShortfall(t *testing.T) {
	line := func(ordered, received int64) entity.OrderLine {
		return entity.OrderLine{
			QuantityOrdered:  decimal.NewFromInt(ordered),
			QuantityReceived: decimal.NewFromInt(received),
		}
	}

	assert.True(t, line(10, 6).Shortfall().Equal(decimal.NewFromInt(4)))
	assert.True(t, line(10, 10).Shortfall().IsZero(), "pedido completo no es ruptura")
	assert.True(t, line(10, 0).Shortfall().IsZero(), "pedido aún sin recibir no es ruptura")
	assert.True(t, line(6, 10).Shortfall().IsZero(), "recibir de más no es ruptura")
}
