package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vitalsalud/ventas-crm-api/internal/application/auth"
	appbilling "github.com/vitalsalud/ventas-crm-api/internal/application/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	infracache "github.com/vitalsalud/ventas-crm-api/internal/infrastructure/cache"
	infrapdf "github.com/vitalsalud/ventas-crm-api/internal/infrastructure/pdf"
	"github.com/vitalsalud/ventas-crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/vitalsalud/ventas-crm-api/internal/interfaces/http"
	"github.com/vitalsalud/ventas-crm-api/pkg/config"
	"github.com/vitalsalud/ventas-crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Reglas de facturación: tabla fija + política PASS configurable.
	rules := billing.DefaultRules()
	rules.PassRevenueZero = cfg.Billing.PassRevenueZero

	opRepo := postgres.NewOperationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	perfCache, err := infracache.NewPerformanceCache(cfg.Cache)
	if err != nil {
		// Sin Redis se sirve igual, solo que recalculando cada vez.
		log.Warn().Err(err).Msg("cache de performance no disponible, usando no-op")
		perfCache = infracache.NewNoopPerformanceCache()
	}

	leadUC := usecase.NewLeadUseCase(opRepo, txRunner, rules)
	performanceUC := usecase.NewPerformanceUseCase(opRepo, perfCache, rules)
	rankingUC := usecase.NewRankingUseCase(opRepo, rules)
	portfolioUC := usecase.NewPortfolioUseCase(clientRepo)
	liquidacionUC := appbilling.NewLiquidacionUseCase(opRepo, rules)
	pdfUC := appbilling.NewPDFUseCase(liquidacionUC, infrapdf.NewMarotoPDFGenerator())
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Ventas CRM API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		LeadUC:        leadUC,
		PerformanceUC: performanceUC,
		RankingUC:     rankingUC,
		PortfolioUC:   portfolioUC,
		LiquidacionUC: liquidacionUC,
		PDFUC:         pdfUC,
		JWTSecret:     cfg.JWT.Secret,
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
