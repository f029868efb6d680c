package entity

// CatalogEntry entrada del catálogo global de productos, clave por Code13Ref.
// Lleva los atributos de taxonomía sobre los que se agrupa la analítica.
// Cualquier atributo puede venir vacío; el agregador lo mapea a "Uncategorized".
type CatalogEntry struct {
	Code13Ref      string
	Universe       string
	Category       string
	SubCategory    string
	Family         string
	SubFamily      string
	BrandLab       string
	LabDistributor string
	RangeName      string
	Specificity    string
}
