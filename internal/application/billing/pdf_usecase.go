package billing

import (
	"context"
	"fmt"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
)

// PDFUseCase genera la versión descargable (PDF) de la liquidación mensual.
type PDFUseCase struct {
	liquidacion *LiquidacionUseCase
	generator   LiquidacionPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(liquidacion *LiquidacionUseCase, generator LiquidacionPDFGenerator) *PDFUseCase {
	return &PDFUseCase{liquidacion: liquidacion, generator: generator}
}

// DownloadLiquidacionPDF calcula la liquidación del período y la vuelca a
// PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrInvalidPeriod    si el período no tiene formato YYYY-MM.
//   - domain.ErrNotFound         si el período no tiene operaciones liquidadas.
func (uc *PDFUseCase) DownloadLiquidacionPDF(ctx context.Context, req dto.LiquidacionRequest) (pdfBytes []byte, filename string, err error) {
	report, err := uc.liquidacion.GetLiquidacion(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if report.TotalOps == 0 {
		return nil, "", fmt.Errorf("%w: sin operaciones liquidadas en %s", domain.ErrNotFound, report.Period)
	}

	pdfBytes, err = uc.generator.GenerateLiquidacionPDF(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("liquidacion_%s.pdf", report.Period)
	return pdfBytes, filename, nil
}
