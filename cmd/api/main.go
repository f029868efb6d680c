package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/Piamias-Victor/new-sub003/internal/application/usecase"
	"github.com/Piamias-Victor/new-sub003/internal/infrastructure/postgres"
	httpRouter "github.com/Piamias-Victor/new-sub003/internal/interfaces/http"
	"github.com/Piamias-Victor/new-sub003/pkg/config"
	"github.com/Piamias-Victor/new-sub003/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	salesRepo := postgres.NewSalesRepository(pool)
	snapshotRepo := postgres.NewSnapshotRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)

	segmentUC := usecase.NewSegmentUseCase(salesRepo, snapshotRepo, orderRepo)
	evolutionUC := usecase.NewEvolutionUseCase(salesRepo, snapshotRepo, orderRepo)
	comparisonUC := usecase.NewComparisonUseCase(segmentUC, evolutionUC)
	positioningUC := usecase.NewPositioningUseCase(snapshotRepo)
	dashboardUC := usecase.NewDashboardUseCase(segmentUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Segments:    segmentUC,
		Evolution:   evolutionUC,
		Comparison:  comparisonUC,
		Positioning: positioningUC,
		Dashboard:   dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
