package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/application/dto"
	"github.com/Piamias-Victor/new-sub003/internal/domain"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

// ComparisonUseCase ejecuta el agregador de segmentos (o el motor de
// evolución) sobre dos períodos disjuntos con filtros idénticos y calcula
// las variaciones período contra período. Las dos sub-agregaciones son
// independientes y corren en paralelo.
type ComparisonUseCase struct {
	segments  *SegmentUseCase
	evolution *EvolutionUseCase
}

// NewComparisonUseCase construye el caso de uso.
func NewComparisonUseCase(segments *SegmentUseCase, evolution *EvolutionUseCase) *ComparisonUseCase {
	return &ComparisonUseCase{segments: segments, evolution: evolution}
}

// ParseComparisonRange valida el rango del período de comparación.
func ParseComparisonRange(startStr, endStr string) (start, end time.Time, err error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{},
			fmt.Errorf("%w: comparison_start_date y comparison_end_date son obligatorios", domain.ErrInvalidDateRange)
	}
	start, err = parseDate(startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = parseDate(endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = endOfDay(end)
	if start.After(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: rango de comparación invertido", domain.ErrInvalidDateRange)
	}
	return start, end, nil
}

// evolutionPct variación porcentual período contra período sobre una métrica:
// round((current − previous) / previous * 100, 1); 0 cuando previous ≤ 0.
// La ausencia de línea base no es una condición de error.
func evolutionPct(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(1)
}

// CompareSegments agrega los dos períodos y hace outer join por clave de
// segmento: un segmento presente en cualquiera de los dos aparece en la
// salida, con el lado ausente en cero.
func (uc *ComparisonUseCase) CompareSegments(
	ctx context.Context,
	q SegmentQuery,
	prevStart, prevEnd time.Time,
) ([]dto.SegmentComparisonRowDTO, error) {
	prevQuery := q
	prevQuery.Filter = repository.Filter{
		StartDate:    prevStart,
		EndDate:      prevEnd,
		PharmacyIDs:  q.Filter.PharmacyIDs,
		ProductCodes: q.Filter.ProductCodes,
	}
	if err := prevQuery.Filter.ValidateRange(); err != nil {
		return nil, err
	}

	type aggResult struct {
		rows []dto.SegmentRowDTO
		err  error
	}
	currentCh := make(chan aggResult, 1)
	previousCh := make(chan aggResult, 1)

	go func() {
		rows, err := uc.segments.Aggregate(ctx, q)
		currentCh <- aggResult{rows, err}
	}()
	go func() {
		rows, err := uc.segments.Aggregate(ctx, prevQuery)
		previousCh <- aggResult{rows, err}
	}()

	current := <-currentCh
	previous := <-previousCh

	if current.err != nil {
		return nil, fmt.Errorf("comparación: período actual: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("comparación: período de comparación: %w", previous.err)
	}

	return joinSegments(current.rows, previous.rows), nil
}

// joinSegments outer join por segmento; el lado ausente queda zeroed.
func joinSegments(current, previous []dto.SegmentRowDTO) []dto.SegmentComparisonRowDTO {
	bySegment := make(map[string]*dto.SegmentComparisonRowDTO)
	order := make([]string, 0, len(current)+len(previous))

	for _, row := range current {
		bySegment[row.Segment] = &dto.SegmentComparisonRowDTO{Segment: row.Segment, Current: row}
		order = append(order, row.Segment)
	}
	for _, row := range previous {
		entry, ok := bySegment[row.Segment]
		if !ok {
			entry = &dto.SegmentComparisonRowDTO{Segment: row.Segment}
			bySegment[row.Segment] = entry
			order = append(order, row.Segment)
		}
		entry.Previous = row
	}

	rows := make([]dto.SegmentComparisonRowDTO, 0, len(order))
	for _, segment := range order {
		entry := bySegment[segment]
		entry.Current = zeroedSegment(segment, entry.Current)
		entry.Previous = zeroedSegment(segment, entry.Previous)
		entry.EvolutionPercentage = evolutionPct(entry.Current.TotalRevenue, entry.Previous.TotalRevenue)
		rows = append(rows, *entry)
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Current.TotalRevenue.Equal(rows[j].Current.TotalRevenue) {
			return rows[i].Current.TotalRevenue.GreaterThan(rows[j].Current.TotalRevenue)
		}
		return rows[i].Segment < rows[j].Segment
	})
	return rows
}

// zeroedSegment normaliza el lado ausente del join: métricas en cero
// explícito, nunca null en la salida.
func zeroedSegment(segment string, row dto.SegmentRowDTO) dto.SegmentRowDTO {
	if row.Segment != "" {
		return row
	}
	return dto.SegmentRowDTO{
		Segment:           segment,
		TotalRevenue:      decimal.Zero,
		TotalMargin:       decimal.Zero,
		MarginPercentage:  decimal.Zero,
		TotalQuantity:     decimal.Zero,
		RevenuePercentage: decimal.Zero,
	}
}

// CompareEvolution corre el motor de evolución sobre los dos períodos y
// devuelve ambas series con la variación del total.
func (uc *ComparisonUseCase) CompareEvolution(
	ctx context.Context,
	q EvolutionQuery,
	prevStart, prevEnd time.Time,
) (*dto.EvolutionComparisonDTO, error) {
	prevQuery := q
	prevQuery.Filter = repository.Filter{
		StartDate:    prevStart,
		EndDate:      prevEnd,
		PharmacyIDs:  q.Filter.PharmacyIDs,
		ProductCodes: q.Filter.ProductCodes,
	}
	if err := prevQuery.Filter.ValidateRange(); err != nil {
		return nil, err
	}

	type seriesResult struct {
		points []dto.EvolutionPointDTO
		err    error
	}
	currentCh := make(chan seriesResult, 1)
	previousCh := make(chan seriesResult, 1)

	go func() {
		points, err := uc.evolution.Series(ctx, q)
		currentCh <- seriesResult{points, err}
	}()
	go func() {
		points, err := uc.evolution.Series(ctx, prevQuery)
		previousCh <- seriesResult{points, err}
	}()

	current := <-currentCh
	previous := <-previousCh

	if current.err != nil {
		return nil, fmt.Errorf("comparación: serie actual: %w", current.err)
	}
	if previous.err != nil {
		return nil, fmt.Errorf("comparación: serie de comparación: %w", previous.err)
	}

	currentTotal := sumSeries(current.points)
	previousTotal := sumSeries(previous.points)
	return &dto.EvolutionComparisonDTO{
		Current:             current.points,
		Previous:            previous.points,
		CurrentTotal:        currentTotal,
		PreviousTotal:       previousTotal,
		EvolutionPercentage: evolutionPct(currentTotal, previousTotal),
	}, nil
}

func sumSeries(points []dto.EvolutionPointDTO) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Value)
	}
	return total
}
