package repository_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Piamias-Victor/new-sub003/internal/domain"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

func TestValidateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, repository.Filter{StartDate: start, EndDate: end}.ValidateRange())
	assert.NoError(t, repository.Filter{StartDate: start, EndDate: start}.ValidateRange(),
		"un rango de un solo día es válido")

	err := repository.Filter{EndDate: end}.ValidateRange()
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange, "inicio ausente")

	err = repository.Filter{StartDate: end, EndDate: start}.ValidateRange()
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange, "rango invertido")
}
