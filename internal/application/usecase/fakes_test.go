package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

// Fakes en memoria de los streams de lectura. Aplican el filtro igual que la
// DB real (rango de fechas y conjuntos) para poder ejercitar comparaciones
// período contra período con un solo fixture, y respetan la cancelación del
// contexto como lo haría pgx.

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catalog(universe string) *entity.CatalogEntry {
	return &entity.CatalogEntry{Code13Ref: "3400000000000", Universe: universe}
}

func inRange(d time.Time, f repository.Filter) bool {
	if !f.StartDate.IsZero() && d.Before(f.StartDate) {
		return false
	}
	if !f.EndDate.IsZero() && d.After(f.EndDate) {
		return false
	}
	return true
}

func inSet(v string, set []string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

type fakeSales struct {
	rows []repository.SellOutRow
	err  error
}

func (f *fakeSales) SellOut(ctx context.Context, fl repository.Filter) ([]repository.SellOutRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.SellOutRow, 0, len(f.rows))
	for _, r := range f.rows {
		if inRange(r.Date, fl) && inSet(r.PharmacyID, fl.PharmacyIDs) && inSet(r.Code13Ref, fl.ProductCodes) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeOrders struct {
	sellIn     []repository.SellInRow
	shortfalls []repository.ShortfallRow
	err        error
}

func (f *fakeOrders) SellIn(ctx context.Context, fl repository.Filter) ([]repository.SellInRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.SellInRow, 0, len(f.sellIn))
	for _, r := range f.sellIn {
		if inRange(r.SentDate, fl) && inSet(r.PharmacyID, fl.PharmacyIDs) && inSet(r.Code13Ref, fl.ProductCodes) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeOrders) Shortfalls(ctx context.Context, fl repository.Filter) ([]repository.ShortfallRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.ShortfallRow, 0, len(f.shortfalls))
	for _, r := range f.shortfalls {
		if inRange(r.Date, fl) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSnapshots struct {
	rows []repository.SnapshotRow
	err  error
}

func (f *fakeSnapshots) Snapshots(ctx context.Context, fl repository.Filter) ([]repository.SnapshotRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	out := make([]repository.SnapshotRow, 0, len(f.rows))
	for _, r := range f.rows {
		if !fl.EndDate.IsZero() && r.Snapshot.Date.After(fl.EndDate) {
			continue
		}
		if !fl.StartDate.IsZero() && r.Snapshot.Date.Before(fl.StartDate) {
			continue
		}
		if inSet(r.PharmacyID, fl.PharmacyIDs) && inSet(r.Code13Ref, fl.ProductCodes) {
			out = append(out, r)
		}
	}
	return out, nil
}
