package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// PerformanceHandler expone los reportes de performance y el ranking.
type PerformanceHandler struct {
	perfUC    *usecase.PerformanceUseCase
	rankingUC *usecase.RankingUseCase
}

// NewPerformanceHandler construye el handler.
func NewPerformanceHandler(perfUC *usecase.PerformanceUseCase, rankingUC *usecase.RankingUseCase) *PerformanceHandler {
	return &PerformanceHandler{perfUC: perfUC, rankingUC: rankingUC}
}

// AgentPerformance godoc
// @Summary      Performance de un asesor en un período
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Param        agent   query  string  false  "Asesor; los vendedores solo se ven a sí mismos"
// @Success      200  {object}  dto.PerformanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/performance/agent [get]
func (h *PerformanceHandler) AgentPerformance(c *fiber.Ctx) error {
	var req dto.PerformanceRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	// Un vendedor solo consulta su propia performance.
	if GetRole(c) == entity.RoleVendedor || req.Agent == "" {
		req.Agent = GetName(c)
	}
	out, err := h.perfUC.GetAgentPerformance(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser YYYY-MM"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// TeamPerformance godoc
// @Summary      Performance agregada del equipo en un período
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Success      200  {object}  dto.PerformanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/performance/team [get]
func (h *PerformanceHandler) TeamPerformance(c *fiber.Ctx) error {
	var req dto.PerformanceRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.perfUC.GetTeamPerformance(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser YYYY-MM"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Ranking godoc
// @Summary      Ranking mensual de asesores
// @Tags         performance
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Success      200  {object}  dto.RankingDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/performance/ranking [get]
func (h *PerformanceHandler) Ranking(c *fiber.Ctx) error {
	out, err := h.rankingUC.GetRanking(c.Context(), c.Query("period"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser YYYY-MM"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}
