package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/application/dto"
	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

const dashboardTopSegments = 5 // segmentos en el widget del dashboard

// DashboardUseCase resumen sell-out del mes en curso por universo, con
// comparación contra el mes anterior. Composición pura sobre el agregador:
// ningún cálculo nuevo, las dos agregaciones corren en paralelo.
type DashboardUseCase struct {
	segments *SegmentUseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(segments *SegmentUseCase) *DashboardUseCase {
	return &DashboardUseCase{segments: segments}
}

// Summary construye el resumen del mes en curso.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := endOfDay(now)
	prevStart := monthStart.AddDate(0, -1, 0)
	prevEnd := monthStart.Add(-time.Nanosecond)

	base := SegmentQuery{Dimension: analytics.DimensionUniverse, Source: SourceSellOut}

	type aggResult struct {
		rows []dto.SegmentRowDTO
		err  error
	}
	currentCh := make(chan aggResult, 1)
	previousCh := make(chan aggResult, 1)

	go func() {
		q := base
		q.Filter = repository.Filter{StartDate: monthStart, EndDate: monthEnd}
		rows, err := uc.segments.Aggregate(ctx, q)
		currentCh <- aggResult{rows, err}
	}()
	go func() {
		q := base
		q.Filter = repository.Filter{StartDate: prevStart, EndDate: prevEnd}
		rows, err := uc.segments.Aggregate(ctx, q)
		previousCh <- aggResult{rows, err}
	}()

	current := <-currentCh
	previous := <-previousCh

	if current.err != nil {
		return nil, fmt.Errorf("dashboard: mes en curso: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("dashboard: mes anterior: %w", previous.err)
	}

	revenue, margin := sumSegments(current.rows)
	prevRevenue, _ := sumSegments(previous.rows)

	marginPct := decimal.Zero
	if revenue.IsPositive() {
		marginPct = margin.Div(revenue).Mul(hundred).Round(2)
	}

	top := current.rows
	if len(top) > dashboardTopSegments {
		top = top[:dashboardTopSegments]
	}

	return &dto.DashboardSummaryDTO{
		MonthRevenue:        revenue.Round(2),
		MonthMargin:         margin.Round(2),
		MarginPercentage:    marginPct,
		EvolutionPercentage: evolutionPct(revenue, prevRevenue),
		TopSegments:         top,
	}, nil
}

func sumSegments(rows []dto.SegmentRowDTO) (revenue, margin decimal.Decimal) {
	for _, r := range rows {
		revenue = revenue.Add(r.TotalRevenue)
		margin = margin.Add(r.TotalMargin)
	}
	return revenue, margin
}
