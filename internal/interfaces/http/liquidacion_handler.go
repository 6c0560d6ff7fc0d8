package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appbilling "github.com/vitalsalud/ventas-crm-api/internal/application/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
)

// LiquidacionHandler expone la liquidación mensual y su descarga en PDF.
type LiquidacionHandler struct {
	liquidacionUC *appbilling.LiquidacionUseCase
	pdfUC         *appbilling.PDFUseCase
}

// NewLiquidacionHandler construye el handler.
func NewLiquidacionHandler(liquidacionUC *appbilling.LiquidacionUseCase, pdfUC *appbilling.PDFUseCase) *LiquidacionHandler {
	return &LiquidacionHandler{liquidacionUC: liquidacionUC, pdfUC: pdfUC}
}

// Get godoc
// @Summary      Liquidación de un período
// @Tags         liquidacion
// @Security     Bearer
// @Produce      json
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Success      200  {object}  dto.LiquidacionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/liquidacion [get]
func (h *LiquidacionHandler) Get(c *fiber.Ctx) error {
	var req dto.LiquidacionRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	out, err := h.liquidacionUC.GetLiquidacion(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser YYYY-MM"})
		}
		return internalError(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF godoc
// @Summary      Descargar la liquidación del período en PDF
// @Tags         liquidacion
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  false  "YYYY-MM (default: mes en curso)"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/liquidacion/pdf [get]
func (h *LiquidacionHandler) DownloadPDF(c *fiber.Ctx) error {
	var req dto.LiquidacionRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "query inválida"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadLiquidacionPDF(c.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidPeriod) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PERIOD", Message: "period debe ser YYYY-MM"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin operaciones liquidadas en el período"})
		}
		return internalError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Send(pdfBytes)
}
