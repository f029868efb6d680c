package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

var _ repository.SnapshotReader = (*SnapshotRepo)(nil)

// SnapshotRepo stream histórico de snapshots de inventario.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

// NewSnapshotRepository construye el adaptador de snapshots.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Snapshots devuelve el historial con fecha ≤ EndDate de los productos que
// pasan los filtros, ordenado por (producto, fecha, secuencia) para que el
// resolver del core pueda indexar directamente. StartDate cero = sin límite
// inferior (el resolver necesita historia anterior al rango).
func (r *SnapshotRepo) Snapshots(ctx context.Context, f repository.Filter) ([]repository.SnapshotRow, error) {
	const query = `
	SELECT
	    snap.id,
	    snap.product_id,
	    snap.date,
	    snap.stock,
	    snap.weighted_average_price,
	    snap.price_with_tax,
	    p.pharmacy_id,
	    p.code_13_ref,
	    p.vat_rate,` + catalogSelect + `
	FROM inventory_snapshots snap
	JOIN products p             ON p.id = snap.product_id
	LEFT JOIN catalog_entries g ON g.code_13_ref = p.code_13_ref
	WHERE snap.date <= $1
	  AND ($2::timestamptz IS NULL OR snap.date >= $2)
	  AND (cardinality($3::text[]) = 0 OR p.pharmacy_id = ANY($3))
	  AND (cardinality($4::text[]) = 0 OR p.code_13_ref = ANY($4))
	ORDER BY snap.product_id, snap.date, snap.id`

	rows, err := r.pool.Query(ctx, query,
		f.EndDate, lowerBound(f.StartDate), textArray(f.PharmacyIDs), textArray(f.ProductCodes))
	if err != nil {
		return nil, fmt.Errorf("snapshots.Snapshots: %w", err)
	}
	defer rows.Close()

	var results []repository.SnapshotRow
	for rows.Next() {
		var row repository.SnapshotRow
		var cat catalogCols
		dest := []any{
			&row.Snapshot.ID,
			&row.Snapshot.ProductID,
			&row.Snapshot.Date,
			&row.Snapshot.Stock,
			&row.Snapshot.WeightedAveragePrice,
			&row.Snapshot.PriceWithTax,
			&row.PharmacyID,
			&row.Code13Ref,
			&row.VATRate,
		}
		if err := rows.Scan(append(dest, cat.dest()...)...); err != nil {
			return nil, fmt.Errorf("snapshots.Snapshots scan: %w", err)
		}
		row.Catalog = cat.entry()
		results = append(results, row)
	}
	return results, rows.Err()
}
