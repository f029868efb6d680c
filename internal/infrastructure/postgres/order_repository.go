package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
	"github.com/Piamias-Victor/new-sub003/internal/domain/repository"
)

var _ repository.OrderReader = (*OrderRepo)(nil)

// OrderRepo stream de sell-in y rupturas sobre PostgreSQL.
type OrderRepo struct {
	pool *pgxpool.Pool
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepo {
	return &OrderRepo{pool: pool}
}

// SellIn devuelve las líneas de pedido enviadas en el rango. El par
// precio/costo sale del último snapshot del producto a la fecha de envío,
// resuelto por producto con un LATERAL (nunca un corte global post-join).
// Sin snapshot a esa fecha los precios quedan en 0.
func (r *OrderRepo) SellIn(ctx context.Context, f repository.Filter) ([]repository.SellInRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.pharmacy_id,
	    p.code_13_ref,
	    o.sent_date,
	    l.quantity_ordered,
	    l.quantity_received,
	    COALESCE(snap.price_with_tax,         0),
	    COALESCE(snap.weighted_average_price, 0),
	    p.vat_rate,` + catalogSelect + `
	FROM order_lines l
	JOIN orders o   ON o.id = l.order_id
	JOIN products p ON p.id = l.product_id
	LEFT JOIN LATERAL (
	    SELECT s.price_with_tax, s.weighted_average_price
	    FROM inventory_snapshots s
	    WHERE s.product_id = p.id
	      AND s.date <= o.sent_date
	    ORDER BY s.date DESC, s.id DESC
	    LIMIT 1
	) snap ON TRUE
	LEFT JOIN catalog_entries g ON g.code_13_ref = p.code_13_ref
	WHERE o.sent_date BETWEEN $1 AND $2
	  AND (cardinality($3::text[]) = 0 OR p.pharmacy_id = ANY($3))
	  AND (cardinality($4::text[]) = 0 OR p.code_13_ref = ANY($4))
	ORDER BY o.sent_date, l.id`

	rows, err := r.pool.Query(ctx, query,
		f.StartDate, f.EndDate, textArray(f.PharmacyIDs), textArray(f.ProductCodes))
	if err != nil {
		return nil, fmt.Errorf("orders.SellIn: %w", err)
	}
	defer rows.Close()

	var results []repository.SellInRow
	for rows.Next() {
		var (
			order entity.PurchaseOrder
			line  entity.OrderLine
			prod  entity.Product
			row   repository.SellInRow
			cat   catalogCols
		)
		dest := []any{
			&prod.ID,
			&prod.PharmacyID,
			&prod.Code13Ref,
			&order.SentDate,
			&line.QuantityOrdered,
			&line.QuantityReceived,
			&row.PriceWithTax,
			&row.WeightedAveragePrice,
			&prod.VATRate,
		}
		if err := rows.Scan(append(dest, cat.dest()...)...); err != nil {
			return nil, fmt.Errorf("orders.SellIn scan: %w", err)
		}
		row.ProductID = prod.ID
		row.PharmacyID = prod.PharmacyID
		row.Code13Ref = prod.Code13Ref
		row.VATRate = prod.VATRate
		row.SentDate = order.SentDate
		row.QuantityOrdered = line.QuantityOrdered
		row.QuantityReceived = line.QuantityReceived
		row.Catalog = cat.entry()
		results = append(results, row)
	}
	return results, rows.Err()
}

// Shortfalls devuelve las líneas en ruptura del rango sin agrupar:
// recibido > 0 y pedido > recibido; faltante = pedido − recibido.
func (r *OrderRepo) Shortfalls(ctx context.Context, f repository.Filter) ([]repository.ShortfallRow, error) {
	const query = `
	SELECT
	    o.sent_date,
	    l.quantity_ordered,
	    l.quantity_received
	FROM order_lines l
	JOIN orders o   ON o.id = l.order_id
	JOIN products p ON p.id = l.product_id
	WHERE o.sent_date BETWEEN $1 AND $2
	  AND l.quantity_received > 0
	  AND l.quantity_ordered  > l.quantity_received
	  AND (cardinality($3::text[]) = 0 OR p.pharmacy_id = ANY($3))
	  AND (cardinality($4::text[]) = 0 OR p.code_13_ref = ANY($4))
	ORDER BY o.sent_date`

	rows, err := r.pool.Query(ctx, query,
		f.StartDate, f.EndDate, textArray(f.PharmacyIDs), textArray(f.ProductCodes))
	if err != nil {
		return nil, fmt.Errorf("orders.Shortfalls: %w", err)
	}
	defer rows.Close()

	var results []repository.ShortfallRow
	for rows.Next() {
		var row repository.ShortfallRow
		var line entity.OrderLine
		if err := rows.Scan(&row.Date, &line.QuantityOrdered, &line.QuantityReceived); err != nil {
			return nil, fmt.Errorf("orders.Shortfalls scan: %w", err)
		}
		// El faltante se calcula con la regla de dominio, no en SQL.
		row.Quantity = line.Shortfall()
		results = append(results, row)
	}
	return results, rows.Err()
}
