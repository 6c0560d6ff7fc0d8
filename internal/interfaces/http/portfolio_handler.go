package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
)

// PortfolioHandler maneja la cartera post-venta (protegido).
type PortfolioHandler struct {
	uc *usecase.PortfolioUseCase
}

// NewPortfolioHandler construye el handler.
func NewPortfolioHandler(uc *usecase.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// List godoc
// @Summary      Listar cartera
// @Tags         cartera
// @Security     Bearer
// @Produce      json
// @Param        estado_mora  query  string  false  "al_dia | mora_1 | mora_2 | mora_3 | baja"
// @Success      200  {array}   dto.ClientResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cartera [get]
func (h *PortfolioHandler) List(c *fiber.Ctx) error {
	var req dto.ListCarteraRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.uc.ListCartera(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente de cartera
// @Tags         cartera
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cartera/{id} [get]
func (h *PortfolioHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetClient(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// UpdateMora godoc
// @Summary      Actualizar estado de mora de un cliente
// @Tags         cartera
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del cliente"
// @Param        body  body  dto.UpdateMoraRequest  true  "Nuevo estado de mora"
// @Success      200   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cartera/{id}/mora [put]
func (h *PortfolioHandler) UpdateMora(c *fiber.Ctx) error {
	var in dto.UpdateMoraRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateMora(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// Summary godoc
// @Summary      Resumen de mora de la cartera
// @Tags         cartera
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CarteraSummaryDTO
// @Router       /api/cartera/summary [get]
func (h *PortfolioHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return c.JSON(out)
}
