package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/application/dto"
	"github.com/Piamias-Victor/new-sub003/internal/domain/analytics"
	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

// SegmentQuery consulta validada del agregador de segmentos.
type SegmentQuery struct {
	Dimension analytics.Dimension
	Source    Source
	Filter    repository.Filter
	AsOf      time.Time // corte de valoración; solo aplica a SourceStock
}

// ParseSegmentRequest valida los parámetros crudos del request.
// Todos los rechazos (dimensión desconocida, rango ausente o invertido)
// ocurren aquí, antes de cualquier acceso a datos.
func ParseSegmentRequest(req dto.SegmentRequest) (SegmentQuery, error) {
	dim, err := analytics.ParseDimension(req.Dimension)
	if err != nil {
		return SegmentQuery{}, err
	}
	src, err := ParseSource(req.Source)
	if err != nil {
		return SegmentQuery{}, err
	}
	q := SegmentQuery{Dimension: dim, Source: src}

	if src == SourceStock {
		// La valoración de stock es a una sola fecha de corte, no a un rango.
		asOf, err := parseAsOf(req.AsOf)
		if err != nil {
			return SegmentQuery{}, err
		}
		q.AsOf = asOf
		q.Filter = repository.Filter{
			EndDate:      asOf,
			PharmacyIDs:  splitCSV(req.PharmacyIDs),
			ProductCodes: splitCSV(req.ProductCodes),
		}
		return q, nil
	}

	f, err := parseFilter(req.StartDate, req.EndDate, req.PharmacyIDs, req.ProductCodes)
	if err != nil {
		return SegmentQuery{}, err
	}
	q.Filter = f
	return q, nil
}

// SegmentUseCase agrupa sell-out, stock o sell-in por una dimensión de
// taxonomía elegida en el request y produce los roll-ups de ingresos,
// margen y cantidad. El contrato es idéntico para los tres orígenes:
// solo cambia qué par cantidad/precio se suma.
type SegmentUseCase struct {
	sales     repository.SalesReader
	snapshots repository.SnapshotReader
	orders    repository.OrderReader
}

// NewSegmentUseCase construye el caso de uso.
func NewSegmentUseCase(
	sales repository.SalesReader,
	snapshots repository.SnapshotReader,
	orders repository.OrderReader,
) *SegmentUseCase {
	return &SegmentUseCase{sales: sales, snapshots: snapshots, orders: orders}
}

// measure contribución de una fila al roll-up de su segmento.
type measure struct {
	productID string
	segment   string
	quantity  decimal.Decimal
	revenue   decimal.Decimal
	margin    decimal.Decimal
}

// Aggregate produce una fila por segmento, ordenadas por ingresos descendente.
// Un request válido que no encuentra filas devuelve la lista vacía, no un error.
func (uc *SegmentUseCase) Aggregate(ctx context.Context, q SegmentQuery) ([]dto.SegmentRowDTO, error) {
	measures, err := uc.collect(ctx, q)
	if err != nil {
		return nil, err
	}
	return rollUpSegments(measures), nil
}

// collect materializa las filas del origen en medidas homogéneas.
func (uc *SegmentUseCase) collect(ctx context.Context, q SegmentQuery) ([]measure, error) {
	switch q.Source {
	case SourceSellOut:
		rows, err := uc.sales.SellOut(ctx, q.Filter)
		if err != nil {
			return nil, fmt.Errorf("segmentos: sell-out: %w", err)
		}
		measures := make([]measure, 0, len(rows))
		for _, r := range rows {
			measures = append(measures, measure{
				productID: r.ProductID,
				segment:   q.Dimension.Segment(r.Catalog),
				quantity:  r.Quantity,
				revenue:   r.Quantity.Mul(r.PriceWithTax),
				margin:    r.Quantity.Mul(analytics.UnitMarginWithTax(r.PriceWithTax, r.VATRate, r.WeightedAveragePrice)),
			})
		}
		return measures, nil

	case SourceStock:
		return uc.collectStock(ctx, q)

	case SourceSellIn:
		rows, err := uc.orders.SellIn(ctx, q.Filter)
		if err != nil {
			return nil, fmt.Errorf("segmentos: sell-in: %w", err)
		}
		measures := make([]measure, 0, len(rows))
		for _, r := range rows {
			// Se valora lo recibido; un pedido aún no recibido cuenta por
			// la cantidad pedida.
			qty := r.QuantityReceived
			if !qty.IsPositive() {
				qty = r.QuantityOrdered
			}
			measures = append(measures, measure{
				productID: r.ProductID,
				segment:   q.Dimension.Segment(r.Catalog),
				quantity:  qty,
				revenue:   qty.Mul(r.PriceWithTax),
				margin:    qty.Mul(analytics.UnitMarginWithTax(r.PriceWithTax, r.VATRate, r.WeightedAveragePrice)),
			})
		}
		return measures, nil

	default:
		return nil, fmt.Errorf("segmentos: origen sin colector: %q", q.Source)
	}
}

// collectStock valora el inventario a la fecha de corte: último snapshot por
// producto (resuelto de forma independiente por producto) × precio con IVA.
func (uc *SegmentUseCase) collectStock(ctx context.Context, q SegmentQuery) ([]measure, error) {
	rows, err := uc.snapshots.Snapshots(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("segmentos: snapshots: %w", err)
	}

	snaps := make([]entity.InventorySnapshot, 0, len(rows))
	meta := make(map[string]repository.SnapshotRow, len(rows))
	for _, r := range rows {
		snaps = append(snaps, r.Snapshot)
		meta[r.Snapshot.ProductID] = r
	}

	latest := analytics.NewSnapshotResolver(snaps).ResolveAll(q.AsOf)
	measures := make([]measure, 0, len(latest))
	for productID, snap := range latest {
		m := meta[productID]
		measures = append(measures, measure{
			productID: productID,
			segment:   q.Dimension.Segment(m.Catalog),
			quantity:  snap.Stock,
			revenue:   snap.Stock.Mul(snap.PriceWithTax),
			margin:    snap.Stock.Mul(analytics.UnitMarginWithTax(snap.PriceWithTax, m.VATRate, snap.WeightedAveragePrice)),
		})
	}
	return measures, nil
}

// rollUpSegments agrupa las medidas por segmento y aplica las reglas de
// redondeo y de división por cero compartidas por los tres orígenes.
func rollUpSegments(measures []measure) []dto.SegmentRowDTO {
	type acc struct {
		revenue  decimal.Decimal
		margin   decimal.Decimal
		quantity decimal.Decimal
		products map[string]struct{}
	}

	accs := make(map[string]*acc)
	var totalRevenue decimal.Decimal
	for _, m := range measures {
		a, ok := accs[m.segment]
		if !ok {
			a = &acc{products: make(map[string]struct{})}
			accs[m.segment] = a
		}
		a.revenue = a.revenue.Add(m.revenue)
		a.margin = a.margin.Add(m.margin)
		a.quantity = a.quantity.Add(m.quantity)
		a.products[m.productID] = struct{}{}
		totalRevenue = totalRevenue.Add(m.revenue)
	}

	rows := make([]dto.SegmentRowDTO, 0, len(accs))
	for segment, a := range accs {
		marginPct := decimal.Zero
		if a.revenue.IsPositive() {
			marginPct = a.margin.Div(a.revenue).Mul(hundred).Round(2)
		}
		revenuePct := decimal.Zero
		if totalRevenue.IsPositive() {
			revenuePct = a.revenue.Div(totalRevenue).Mul(hundred).Round(2)
		}
		rows = append(rows, dto.SegmentRowDTO{
			Segment:           segment,
			TotalRevenue:      a.revenue.Round(2),
			TotalMargin:       a.margin.Round(2),
			MarginPercentage:  marginPct,
			TotalQuantity:     a.quantity,
			ProductCount:      len(a.products),
			RevenuePercentage: revenuePct,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].TotalRevenue.Equal(rows[j].TotalRevenue) {
			return rows[i].TotalRevenue.GreaterThan(rows[j].TotalRevenue)
		}
		return rows[i].Segment < rows[j].Segment
	})
	return rows
}
