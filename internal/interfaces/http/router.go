package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitalsalud/ventas-crm-api/internal/application/auth"
	appbilling "github.com/vitalsalud/ventas-crm-api/internal/application/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	LeadUC        *usecase.LeadUseCase
	PerformanceUC *usecase.PerformanceUseCase
	RankingUC     *usecase.RankingUseCase
	PortfolioUC   *usecase.PortfolioUseCase
	LiquidacionUC *appbilling.LiquidacionUseCase
	PDFUC         *appbilling.PDFUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Leads (protegido)
	leads := protected.Group("/leads")
	leadHandler := NewLeadHandler(deps.LeadUC)
	leads.Post("/", leadHandler.Create)
	leads.Get("/", leadHandler.List)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Put("/:id/status", leadHandler.ChangeStatus)
	// La compuerta de facturación y el monto manual son decisiones de
	// back-office: vendedores afuera.
	leads.Put("/:id/billing/approve",
		RequireRole(entity.RoleAdmin, entity.RoleSupervisor), leadHandler.ApproveBilling)
	leads.Put("/:id/billing/override",
		RequireRole(entity.RoleAdmin, entity.RoleSupervisor), leadHandler.SetOverride)

	// Performance y ranking (protegido)
	performance := protected.Group("/performance")
	performanceHandler := NewPerformanceHandler(deps.PerformanceUC, deps.RankingUC)
	performance.Get("/agent", performanceHandler.AgentPerformance)
	performance.Get("/team",
		RequireRole(entity.RoleAdmin, entity.RoleSupervisor), performanceHandler.TeamPerformance)
	performance.Get("/ranking", performanceHandler.Ranking)

	// Liquidación (protegido, solo back-office)
	liquidacion := protected.Group("/liquidacion",
		RequireRole(entity.RoleAdmin, entity.RoleSupervisor))
	liquidacionHandler := NewLiquidacionHandler(deps.LiquidacionUC, deps.PDFUC)
	liquidacion.Get("/", liquidacionHandler.Get)
	liquidacion.Get("/pdf", liquidacionHandler.DownloadPDF)

	// Cartera post-venta (protegido)
	cartera := protected.Group("/cartera")
	portfolioHandler := NewPortfolioHandler(deps.PortfolioUC)
	cartera.Get("/summary", portfolioHandler.Summary)
	cartera.Get("/", portfolioHandler.List)
	cartera.Get("/:id", portfolioHandler.GetByID)
	cartera.Put("/:id/mora",
		RequireRole(entity.RoleAdmin, entity.RoleSupervisor), portfolioHandler.UpdateMora)
}
