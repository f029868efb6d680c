package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/application/dto"
	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

// EvolutionQuery consulta validada del motor de evolución.
type EvolutionQuery struct {
	Source   Source
	Interval analytics.Interval
	Filter   repository.Filter
}

// ParseEvolutionRequest valida los parámetros crudos del request.
func ParseEvolutionRequest(req dto.EvolutionRequest) (EvolutionQuery, error) {
	src, err := ParseSource(req.Source)
	if err != nil {
		return EvolutionQuery{}, err
	}
	interval, err := analytics.ParseInterval(req.Interval)
	if err != nil {
		return EvolutionQuery{}, err
	}
	f, err := parseFilter(req.StartDate, req.EndDate, req.PharmacyIDs, req.ProductCodes)
	if err != nil {
		return EvolutionQuery{}, err
	}
	return EvolutionQuery{Source: src, Interval: interval, Filter: f}, nil
}

// EvolutionUseCase trunca cada evento al límite de su intervalo, suma la
// métrica por bucket y anota los períodos en ruptura con un left-join de la
// serie de faltantes de pedidos. Las rupturas nunca crean buckets por sí
// solas: solo anotan buckets que ya tienen métrica.
type EvolutionUseCase struct {
	sales     repository.SalesReader
	snapshots repository.SnapshotReader
	orders    repository.OrderReader
}

// NewEvolutionUseCase construye el caso de uso.
func NewEvolutionUseCase(
	sales repository.SalesReader,
	snapshots repository.SnapshotReader,
	orders repository.OrderReader,
) *EvolutionUseCase {
	return &EvolutionUseCase{sales: sales, snapshots: snapshots, orders: orders}
}

// event punto crudo de la serie antes del bucketing.
type event struct {
	date     time.Time
	quantity decimal.Decimal
}

// Series devuelve la serie bucketizada en orden cronológico ascendente.
// La métrica y la serie de rupturas se consultan en paralelo; cualquier
// fallo de origen de datos aborta la invocación completa.
func (uc *EvolutionUseCase) Series(ctx context.Context, q EvolutionQuery) ([]dto.EvolutionPointDTO, error) {
	type eventsResult struct {
		events []event
		err    error
	}
	type shortfallResult struct {
		rows []repository.ShortfallRow
		err  error
	}

	eventsCh := make(chan eventsResult, 1)
	shortCh := make(chan shortfallResult, 1)

	go func() {
		events, err := uc.collectEvents(ctx, q)
		eventsCh <- eventsResult{events, err}
	}()
	go func() {
		rows, err := uc.orders.Shortfalls(ctx, q.Filter)
		shortCh <- shortfallResult{rows, err}
	}()

	evRes := <-eventsCh
	shRes := <-shortCh

	if evRes.err != nil {
		return nil, evRes.err
	}
	if shRes.err != nil {
		return nil, fmt.Errorf("evolución: rupturas: %w", shRes.err)
	}

	return bucketize(q.Interval, evRes.events, shRes.rows), nil
}

// collectEvents materializa la serie cruda del origen pedido.
func (uc *EvolutionUseCase) collectEvents(ctx context.Context, q EvolutionQuery) ([]event, error) {
	switch q.Source {
	case SourceSellOut:
		rows, err := uc.sales.SellOut(ctx, q.Filter)
		if err != nil {
			return nil, fmt.Errorf("evolución: ventas: %w", err)
		}
		events := make([]event, 0, len(rows))
		for _, r := range rows {
			events = append(events, event{date: r.Date, quantity: r.Quantity})
		}
		return events, nil

	case SourceStock:
		rows, err := uc.snapshots.Snapshots(ctx, q.Filter)
		if err != nil {
			return nil, fmt.Errorf("evolución: snapshots: %w", err)
		}
		events := make([]event, 0, len(rows))
		for _, r := range rows {
			// Observaciones fuera del rango inferior no forman serie.
			if !q.Filter.StartDate.IsZero() && r.Snapshot.Date.Before(q.Filter.StartDate) {
				continue
			}
			events = append(events, event{date: r.Snapshot.Date, quantity: r.Snapshot.Stock})
		}
		return events, nil

	case SourceSellIn:
		rows, err := uc.orders.SellIn(ctx, q.Filter)
		if err != nil {
			return nil, fmt.Errorf("evolución: sell-in: %w", err)
		}
		events := make([]event, 0, len(rows))
		for _, r := range rows {
			qty := r.QuantityReceived
			if !qty.IsPositive() {
				qty = r.QuantityOrdered
			}
			events = append(events, event{date: r.SentDate, quantity: qty})
		}
		return events, nil

	default:
		return nil, fmt.Errorf("evolución: origen sin colector: %q", q.Source)
	}
}

// bucketize trunca, suma por bucket y anota rupturas sobre los buckets
// existentes. Un bucket con métrica y sin ruptura queda en cero/false.
func bucketize(interval analytics.Interval, events []event, shortfalls []repository.ShortfallRow) []dto.EvolutionPointDTO {
	buckets := make(map[time.Time]decimal.Decimal)
	for _, e := range events {
		key := interval.Truncate(e.date)
		buckets[key] = buckets[key].Add(e.quantity)
	}

	ruptures := make(map[time.Time]decimal.Decimal)
	for _, s := range shortfalls {
		key := interval.Truncate(s.Date)
		ruptures[key] = ruptures[key].Add(s.Quantity)
	}

	keys := make([]time.Time, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	points := make([]dto.EvolutionPointDTO, 0, len(keys))
	for _, k := range keys {
		rupture := ruptures[k] // cero si el bucket no tiene faltantes
		points = append(points, dto.EvolutionPointDTO{
			Period:          interval.Label(k),
			Value:           buckets[k],
			RuptureQuantity: rupture,
			IsRupture:       rupture.IsPositive(),
		})
	}
	return points
}
