package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// LeadHandler maneja las peticiones HTTP para leads/operaciones (protegido).
type LeadHandler struct {
	uc *usecase.LeadUseCase
}

// NewLeadHandler construye el handler.
func NewLeadHandler(uc *usecase.LeadUseCase) *LeadHandler {
	return &LeadHandler{uc: uc}
}

// Create godoc
// @Summary      Dar de alta un lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeadRequest  true  "Datos del lead"
// @Success      201   {object}  dto.LeadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Un vendedor solo carga leads a su propio nombre.
	if GetRole(c) == entity.RoleVendedor {
		in.AgentName = GetName(c)
	}
	out, err := h.uc.CreateLead(c.Context(), in)
	if err != nil {
		return internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar leads
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado del pipeline"
// @Param        agent   query  string  false  "Filtrar por asesor"
// @Success      200  {array}   dto.LeadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/leads [get]
func (h *LeadHandler) List(c *fiber.Ctx) error {
	var req dto.ListLeadsRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	if GetRole(c) == entity.RoleVendedor {
		req.Agent = GetName(c)
	}
	out, err := h.uc.List(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener lead por ID
// @Tags         leads
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la operación"
// @Success      200  {object}  dto.LeadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id} [get]
func (h *LeadHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operación no encontrada"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ChangeStatus godoc
// @Summary      Mover un lead en el pipeline
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.LeadResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/status [put]
func (h *LeadHandler) ChangeStatus(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ChangeStatus(c.Context(), id, entity.Status(in.Status))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operación no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidTransition) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: err.Error()})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// ApproveBilling godoc
// @Summary      Aprobar (o desaprobar) facturación de un lead
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.ApproveBillingRequest  true  "approved + billing_period"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/billing/approve [put]
func (h *LeadHandler) ApproveBilling(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.ApproveBillingRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.ApproveBilling(c.Context(), id, in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operación no encontrada"})
		}
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "billing_period debe ser YYYY-MM"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetOverride godoc
// @Summary      Fijar o limpiar el monto manual de liquidación
// @Tags         leads
// @Security     Bearer
// @Accept       json
// @Param        id    path  string  true  "ID de la operación"
// @Param        body  body  dto.BillingOverrideRequest  true  "override (null limpia)"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/billing/override [put]
func (h *LeadHandler) SetOverride(c *fiber.Ctx) error {
	id := c.Params("id")
	var in dto.BillingOverrideRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetOverride(c.Context(), id, in); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "operación no encontrada"})
		}
		return internalError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
