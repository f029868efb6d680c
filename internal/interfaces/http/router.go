package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Segments    SegmentAggregator
	Evolution   EvolutionEngine
	Comparison  Comparator
	Positioning PriceClassifier
	Dashboard   DashboardProvider
}

// Router registra las rutas de la API analítica.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	analytics := api.Group("/analytics")
	handler := NewAnalyticsHandler(deps.Segments, deps.Evolution, deps.Comparison, deps.Positioning, deps.Dashboard)
	analytics.Get("/segments", handler.GetSegments)
	analytics.Get("/segments/compare", handler.CompareSegments)
	analytics.Get("/evolution", handler.GetEvolution)
	analytics.Get("/evolution/compare", handler.CompareEvolution)
	analytics.Get("/stock-valuation", handler.GetStockValuation)
	analytics.Get("/positioning", handler.GetPositioning)
	analytics.Get("/dashboard", handler.GetDashboard)
}
