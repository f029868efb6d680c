package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// SegmentRequest parámetros para GET /api/analytics/segments.
type SegmentRequest struct {
	Dimension    string `query:"dimension"`     // universe|category|sub_category|brand_lab|lab_distributor|family|sub_family|range_name|specificity
	Source       string `query:"source"`        // sell-out (default) | stock | sell-in
	StartDate    string `query:"start_date"`    // YYYY-MM-DD (obligatorio salvo source=stock)
	EndDate      string `query:"end_date"`      // YYYY-MM-DD
	AsOf         string `query:"as_of"`         // YYYY-MM-DD; solo source=stock, default hoy
	PharmacyIDs  string `query:"pharmacy_ids"`  // CSV; vacío = todas
	ProductCodes string `query:"product_codes"` // CSV de code_13_ref; vacío = todos
}

// SegmentCompareRequest parámetros para GET /api/analytics/segments/compare.
type SegmentCompareRequest struct {
	SegmentRequest
	ComparisonStartDate string `query:"comparison_start_date"`
	ComparisonEndDate   string `query:"comparison_end_date"`
}

// EvolutionRequest parámetros para GET /api/analytics/evolution.
type EvolutionRequest struct {
	Source       string `query:"source"`   // sell-out (default) | stock | sell-in
	Interval     string `query:"interval"` // day | week | month
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
	PharmacyIDs  string `query:"pharmacy_ids"`
	ProductCodes string `query:"product_codes"`
}

// EvolutionCompareRequest parámetros para GET /api/analytics/evolution/compare.
type EvolutionCompareRequest struct {
	EvolutionRequest
	ComparisonStartDate string `query:"comparison_start_date"`
	ComparisonEndDate   string `query:"comparison_end_date"`
}

// PositioningRequest parámetros para GET /api/analytics/positioning.
type PositioningRequest struct {
	AsOf         string `query:"as_of"` // YYYY-MM-DD; default hoy
	PharmacyIDs  string `query:"pharmacy_ids"`
	ProductCodes string `query:"product_codes"`
}

// ── Agregación por segmento ───────────────────────────────────────────────────

// SegmentRowDTO una fila por valor de segmento, ordenadas por ingresos desc.
type SegmentRowDTO struct {
	Segment           string          `json:"segment"`            // valor de la dimensión o "Uncategorized"
	TotalRevenue      decimal.Decimal `json:"total_revenue"`      // Σ(qty × price_with_tax)
	TotalMargin       decimal.Decimal `json:"total_margin"`       // Σ(qty × margen unitario con IVA)
	MarginPercentage  decimal.Decimal `json:"margin_percentage"`  // margen/ingresos*100; 0 si ingresos ≤ 0
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	ProductCount      int             `json:"product_count"`      // productos distintos del segmento
	RevenuePercentage decimal.Decimal `json:"revenue_percentage"` // participación % en ingresos totales
}

// SegmentComparisonRowDTO outer join de un segmento entre dos períodos.
// El lado ausente viene en cero, nunca null.
type SegmentComparisonRowDTO struct {
	Segment             string          `json:"segment"`
	Current             SegmentRowDTO   `json:"current"`
	Previous            SegmentRowDTO   `json:"previous"`
	EvolutionPercentage decimal.Decimal `json:"evolution_percentage"` // sobre total_revenue, round 1; 0 si previous ≤ 0
}

// ── Evolución ─────────────────────────────────────────────────────────────────

// EvolutionPointDTO un bucket de la serie, orden cronológico ascendente.
type EvolutionPointDTO struct {
	Period          string          `json:"period"` // etiqueta según intervalo: fecha, año-Wsemana o año-mes
	Value           decimal.Decimal `json:"value"`
	RuptureQuantity decimal.Decimal `json:"rupture_quantity"`
	IsRupture       bool            `json:"is_rupture"`
}

// EvolutionComparisonDTO las dos series más la evolución del total.
type EvolutionComparisonDTO struct {
	Current             []EvolutionPointDTO `json:"current"`
	Previous            []EvolutionPointDTO `json:"previous"`
	CurrentTotal        decimal.Decimal     `json:"current_total"`
	PreviousTotal       decimal.Decimal     `json:"previous_total"`
	EvolutionPercentage decimal.Decimal     `json:"evolution_percentage"`
}

// ── Posicionamiento de precio ─────────────────────────────────────────────────

// PricePositionDTO posicionamiento de una instancia frente a su población.
type PricePositionDTO struct {
	ProductID                 string          `json:"product_id"`
	PharmacyID                string          `json:"pharmacy_id"`
	Code13Ref                 string          `json:"code_13_ref"`
	Price                     decimal.Decimal `json:"price"`
	AvgPrice                  decimal.Decimal `json:"avg_price"` // promedio de la población completa, no de la selección
	MinPrice                  decimal.Decimal `json:"min_price"`
	MaxPrice                  decimal.Decimal `json:"max_price"`
	PriceDifferencePercentage decimal.Decimal `json:"price_difference_percentage"`
	Positioning               string          `json:"positioning"` // veryLow|low|average|high|veryHigh
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardSummaryDTO resumen del mes en curso con comparación al mes anterior.
type DashboardSummaryDTO struct {
	MonthRevenue        decimal.Decimal `json:"month_revenue"`
	MonthMargin         decimal.Decimal `json:"month_margin"`
	MarginPercentage    decimal.Decimal `json:"margin_percentage"`
	EvolutionPercentage decimal.Decimal `json:"evolution_percentage"` // vs mes anterior, sobre ingresos
	TopSegments         []SegmentRowDTO `json:"top_segments"`         // top 5 por universo
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
