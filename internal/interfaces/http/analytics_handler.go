package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Piamias-Victor/new-sub003/internal/application/dto"
	"github.com/Piamias-Victor/new-sub003/internal/application/usecase"
	"github.com/Piamias-Victor/new-sub003/internal/domain"
)

// Puertos del handler hacia la capa de aplicación. Interfaces locales para
// poder testear el handler sin base de datos.
type (
	// SegmentAggregator agregación por dimensión de taxonomía.
	SegmentAggregator interface {
		Aggregate(ctx context.Context, q usecase.SegmentQuery) ([]dto.SegmentRowDTO, error)
	}

	// EvolutionEngine series bucketizadas por intervalo.
	EvolutionEngine interface {
		Series(ctx context.Context, q usecase.EvolutionQuery) ([]dto.EvolutionPointDTO, error)
	}

	// Comparator comparación período contra período.
	Comparator interface {
		CompareSegments(ctx context.Context, q usecase.SegmentQuery, prevStart, prevEnd time.Time) ([]dto.SegmentComparisonRowDTO, error)
		CompareEvolution(ctx context.Context, q usecase.EvolutionQuery, prevStart, prevEnd time.Time) (*dto.EvolutionComparisonDTO, error)
	}

	// PriceClassifier posicionamiento de precio.
	PriceClassifier interface {
		Classify(ctx context.Context, q usecase.PositioningQuery) ([]dto.PricePositionDTO, error)
	}

	// DashboardProvider resumen del mes en curso.
	DashboardProvider interface {
		Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error)
	}
)

// AnalyticsHandler expone los endpoints del core analítico.
type AnalyticsHandler struct {
	segments    SegmentAggregator
	evolution   EvolutionEngine
	comparison  Comparator
	positioning PriceClassifier
	dashboard   DashboardProvider
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(
	segments SegmentAggregator,
	evolution EvolutionEngine,
	comparison Comparator,
	positioning PriceClassifier,
	dashboard DashboardProvider,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		segments:    segments,
		evolution:   evolution,
		comparison:  comparison,
		positioning: positioning,
		dashboard:   dashboard,
	}
}

// GetSegments agregación por segmento sobre sell-out, stock o sell-in.
// GET /api/analytics/segments
func (h *AnalyticsHandler) GetSegments(c *fiber.Ctx) error {
	var req dto.SegmentRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	q, err := usecase.ParseSegmentRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.segments.Aggregate(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// GetStockValuation valoración de inventario por segmento a una fecha de corte.
// GET /api/analytics/stock-valuation
func (h *AnalyticsHandler) GetStockValuation(c *fiber.Ctx) error {
	var req dto.SegmentRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	req.Source = string(usecase.SourceStock)
	q, err := usecase.ParseSegmentRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.segments.Aggregate(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// CompareSegments agregación de dos períodos con outer join por segmento.
// GET /api/analytics/segments/compare
func (h *AnalyticsHandler) CompareSegments(c *fiber.Ctx) error {
	var req dto.SegmentCompareRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	q, err := usecase.ParseSegmentRequest(req.SegmentRequest)
	if err != nil {
		return respondError(c, err)
	}
	prevStart, prevEnd, err := usecase.ParseComparisonRange(req.ComparisonStartDate, req.ComparisonEndDate)
	if err != nil {
		return respondError(c, err)
	}
	rows, err := h.comparison.CompareSegments(c.Context(), q, prevStart, prevEnd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// GetEvolution serie de una métrica bucketizada por intervalo con rupturas.
// GET /api/analytics/evolution
func (h *AnalyticsHandler) GetEvolution(c *fiber.Ctx) error {
	var req dto.EvolutionRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	q, err := usecase.ParseEvolutionRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	points, err := h.evolution.Series(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(points)
}

// CompareEvolution dos series de evolución con la variación del total.
// GET /api/analytics/evolution/compare
func (h *AnalyticsHandler) CompareEvolution(c *fiber.Ctx) error {
	var req dto.EvolutionCompareRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	q, err := usecase.ParseEvolutionRequest(req.EvolutionRequest)
	if err != nil {
		return respondError(c, err)
	}
	prevStart, prevEnd, err := usecase.ParseComparisonRange(req.ComparisonStartDate, req.ComparisonEndDate)
	if err != nil {
		return respondError(c, err)
	}
	result, err := h.comparison.CompareEvolution(c.Context(), q, prevStart, prevEnd)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// GetPositioning posicionamiento de precio frente a la población.
// GET /api/analytics/positioning
func (h *AnalyticsHandler) GetPositioning(c *fiber.Ctx) error {
	var req dto.PositioningRequest
	if err := c.QueryParser(&req); err != nil {
		return badRequest(c, "INVALID_PARAMS", "parámetros de consulta inválidos")
	}
	q, err := usecase.ParsePositioningRequest(req)
	if err != nil {
		return respondError(c, err)
	}
	results, err := h.positioning.Classify(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(results)
}

// GetDashboard resumen del mes en curso.
// GET /api/analytics/dashboard
func (h *AnalyticsHandler) GetDashboard(c *fiber.Ctx) error {
	summary, err := h.dashboard.Summary(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// respondError traduce el error de dominio a un código HTTP. Los errores de
// argumentos son del cliente; todo lo demás (incluida la indisponibilidad
// del origen de datos) es un 500 sin resultado parcial.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownDimension):
		return badRequest(c, "UNKNOWN_DIMENSION", err.Error())
	case errors.Is(err, domain.ErrUnknownInterval):
		return badRequest(c, "UNKNOWN_INTERVAL", err.Error())
	case errors.Is(err, domain.ErrUnknownSource):
		return badRequest(c, "UNKNOWN_SOURCE", err.Error())
	case errors.Is(err, domain.ErrInvalidDateRange), errors.Is(err, domain.ErrInvalidInput):
		return badRequest(c, "INVALID_PARAMS", err.Error())
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno",
		})
	}
}

func badRequest(c *fiber.Ctx, code, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: message})
}
