package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

var _ repository.SalesReader = (*SalesRepo)(nil)

// SalesRepo stream de sell-out sobre PostgreSQL: ventas unidas a su snapshot
// de inventario, producto y catálogo. Solo joins y filtrado; la agregación
// es del core.
type SalesRepo struct {
	pool *pgxpool.Pool
}

// NewSalesRepository construye el adaptador de ventas.
func NewSalesRepository(pool *pgxpool.Pool) *SalesRepo {
	return &SalesRepo{pool: pool}
}

// SellOut devuelve las ventas del rango con el par precio/costo del snapshot
// referenciado por cada venta. Los filtros de conjunto viajan como text[];
// array vacío significa "todos".
func (r *SalesRepo) SellOut(ctx context.Context, f repository.Filter) ([]repository.SellOutRow, error) {
	const query = `
	SELECT
	    s.id,
	    s.snapshot_id,
	    s.date,
	    s.quantity,
	    p.id,
	    p.pharmacy_id,
	    p.code_13_ref,
	    p.vat_rate,
	    snap.price_with_tax,
	    snap.weighted_average_price,` + catalogSelect + `
	FROM sales s
	JOIN inventory_snapshots snap ON snap.id = s.snapshot_id
	JOIN products p               ON p.id    = snap.product_id
	LEFT JOIN catalog_entries g   ON g.code_13_ref = p.code_13_ref
	WHERE s.date BETWEEN $1 AND $2
	  AND (cardinality($3::text[]) = 0 OR p.pharmacy_id = ANY($3))
	  AND (cardinality($4::text[]) = 0 OR p.code_13_ref = ANY($4))
	ORDER BY s.date, s.id`

	rows, err := r.pool.Query(ctx, query,
		f.StartDate, f.EndDate, textArray(f.PharmacyIDs), textArray(f.ProductCodes))
	if err != nil {
		return nil, fmt.Errorf("sales.SellOut: %w", err)
	}
	defer rows.Close()

	var results []repository.SellOutRow
	for rows.Next() {
		var (
			sale entity.SaleEvent
			prod entity.Product
			row  repository.SellOutRow
			cat  catalogCols
		)
		dest := []any{
			&sale.ID,
			&sale.SnapshotID,
			&sale.Date,
			&sale.Quantity,
			&prod.ID,
			&prod.PharmacyID,
			&prod.Code13Ref,
			&prod.VATRate,
			&row.PriceWithTax,
			&row.WeightedAveragePrice,
		}
		if err := rows.Scan(append(dest, cat.dest()...)...); err != nil {
			return nil, fmt.Errorf("sales.SellOut scan: %w", err)
		}
		row.ProductID = prod.ID
		row.PharmacyID = prod.PharmacyID
		row.Code13Ref = prod.Code13Ref
		row.VATRate = prod.VATRate
		row.Date = sale.Date
		row.Quantity = sale.Quantity
		row.Catalog = cat.entry()
		results = append(results, row)
	}
	return results, rows.Err()
}
