package analytics

import (
	"sort"
	"time"

	"github.com/Piamias-Victor/new-sub003/internal/domain/entity"
)

// SnapshotResolver resuelve el último snapshot conocido de cada producto a una
// fecha de corte, de forma independiente por producto: cada producto tiene su
// propia cadencia de observación, así que nunca se aplica un corte global
// después de un join multi-producto.
//
// Mantiene un índice ordenado por producto (fecha, secuencia) y hace búsqueda
// binaria de la entrada más reciente ≤ corte, en lugar de un escaneo completo.
type SnapshotResolver struct {
	byProduct map[string][]entity.InventorySnapshot
}

// NewSnapshotResolver indexa los snapshots por producto y los ordena por
// (fecha, id de secuencia) ascendente. Si el upstream malformado repite una
// fecha para un producto, gana la secuencia interna más alta: ambigüedad
// heredada del origen, resuelta de forma determinista en vez de promediar.
func NewSnapshotResolver(snapshots []entity.InventorySnapshot) *SnapshotResolver {
	byProduct := make(map[string][]entity.InventorySnapshot)
	for _, s := range snapshots {
		byProduct[s.ProductID] = append(byProduct[s.ProductID], s)
	}
	for id := range byProduct {
		list := byProduct[id]
		sort.Slice(list, func(i, j int) bool {
			if !list[i].Date.Equal(list[j].Date) {
				return list[i].Date.Before(list[j].Date)
			}
			return list[i].ID < list[j].ID
		})
		byProduct[id] = list
	}
	return &SnapshotResolver{byProduct: byProduct}
}

// Resolve devuelve el snapshot más reciente con fecha ≤ asOf para el producto.
// asOf cero equivale a "hoy". Si no existe snapshot a esa fecha o antes,
// devuelve ok=false: "sin datos" es un resultado válido, no un error.
func (r *SnapshotResolver) Resolve(productID string, asOf time.Time) (entity.InventorySnapshot, bool) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	list := r.byProduct[productID]
	if len(list) == 0 {
		return entity.InventorySnapshot{}, false
	}
	// Primer índice con fecha > asOf; el candidato es el anterior.
	i := sort.Search(len(list), func(i int) bool {
		return list[i].Date.After(asOf)
	})
	if i == 0 {
		return entity.InventorySnapshot{}, false
	}
	return list[i-1], true
}

// ResolveAll resuelve el último snapshot ≤ asOf de todos los productos
// indexados. Los productos sin datos a esa fecha simplemente no aparecen.
func (r *SnapshotResolver) ResolveAll(asOf time.Time) map[string]entity.InventorySnapshot {
	out := make(map[string]entity.InventorySnapshot, len(r.byProduct))
	for id := range r.byProduct {
		if s, ok := r.Resolve(id, asOf); ok {
			out[id] = s
		}
	}
	return out
}
