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

// PositioningQuery consulta validada del clasificador de posicionamiento.
type PositioningQuery struct {
	AsOf         time.Time
	PharmacyIDs  []string // selección; vacío = todas
	ProductCodes []string // selección; vacío = todos
}

// ParsePositioningRequest valida los parámetros crudos del request.
func ParsePositioningRequest(req dto.PositioningRequest) (PositioningQuery, error) {
	asOf, err := parseAsOf(req.AsOf)
	if err != nil {
		return PositioningQuery{}, err
	}
	return PositioningQuery{
		AsOf:         asOf,
		PharmacyIDs:  splitCSV(req.PharmacyIDs),
		ProductCodes: splitCSV(req.ProductCodes),
	}, nil
}

// PositioningUseCase compara el precio de cada instancia de producto con el
// promedio de su población cruzada (mismo code_13_ref en todas las
// farmacias). Las estadísticas se calculan sobre la población completa sin
// filtrar; los filtros solo deciden qué instancias devolver.
type PositioningUseCase struct {
	snapshots repository.SnapshotReader
}

// NewPositioningUseCase construye el caso de uso.
func NewPositioningUseCase(snapshots repository.SnapshotReader) *PositioningUseCase {
	return &PositioningUseCase{snapshots: snapshots}
}

// populationStats promedio, mínimo y máximo de precio por code_13_ref.
type populationStats struct {
	sum   decimal.Decimal
	count int64
	min   decimal.Decimal
	max   decimal.Decimal
}

func (s populationStats) avg() decimal.Decimal {
	if s.count == 0 {
		return decimal.Zero
	}
	return s.sum.Div(decimal.NewFromInt(s.count))
}

// Classify resuelve el último snapshot de cada producto a la fecha de corte,
// calcula avg/min/max por código de catálogo y clasifica cada instancia
// seleccionada en exactamente una de las cinco bandas.
func (uc *PositioningUseCase) Classify(ctx context.Context, q PositioningQuery) ([]dto.PricePositionDTO, error) {
	// Población completa: sin filtros de selección, solo el corte temporal.
	rows, err := uc.snapshots.Snapshots(ctx, repository.Filter{EndDate: q.AsOf})
	if err != nil {
		return nil, fmt.Errorf("posicionamiento: snapshots: %w", err)
	}

	snaps := make([]entity.InventorySnapshot, 0, len(rows))
	meta := make(map[string]repository.SnapshotRow, len(rows))
	for _, r := range rows {
		snaps = append(snaps, r.Snapshot)
		meta[r.Snapshot.ProductID] = r
	}
	latest := analytics.NewSnapshotResolver(snaps).ResolveAll(q.AsOf)

	// Estadísticas por código sobre TODA la población resuelta.
	stats := make(map[string]*populationStats)
	for productID, snap := range latest {
		code := meta[productID].Code13Ref
		s, ok := stats[code]
		if !ok {
			s = &populationStats{min: snap.PriceWithTax, max: snap.PriceWithTax}
			stats[code] = s
		}
		s.sum = s.sum.Add(snap.PriceWithTax)
		s.count++
		if snap.PriceWithTax.LessThan(s.min) {
			s.min = snap.PriceWithTax
		}
		if snap.PriceWithTax.GreaterThan(s.max) {
			s.max = snap.PriceWithTax
		}
	}

	pharmacies := toSet(q.PharmacyIDs)
	codes := toSet(q.ProductCodes)

	results := make([]dto.PricePositionDTO, 0, len(latest))
	for productID, snap := range latest {
		m := meta[productID]
		if len(pharmacies) > 0 {
			if _, ok := pharmacies[m.PharmacyID]; !ok {
				continue
			}
		}
		if len(codes) > 0 {
			if _, ok := codes[m.Code13Ref]; !ok {
				continue
			}
		}
		s := stats[m.Code13Ref]
		avg := s.avg()
		diff := analytics.PriceDifferencePct(snap.PriceWithTax, avg)
		results = append(results, dto.PricePositionDTO{
			ProductID:                 productID,
			PharmacyID:                m.PharmacyID,
			Code13Ref:                 m.Code13Ref,
			Price:                     snap.PriceWithTax,
			AvgPrice:                  avg.Round(2),
			MinPrice:                  s.min,
			MaxPrice:                  s.max,
			PriceDifferencePercentage: diff,
			Positioning:               string(analytics.ClassifyPricePosition(diff)),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Code13Ref != results[j].Code13Ref {
			return results[i].Code13Ref < results[j].Code13Ref
		}
		return results[i].ProductID < results[j].ProductID
	})
	return results, nil
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
