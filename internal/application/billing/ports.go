package billing

import (
	"context"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
)

// LiquidacionPDFGenerator genera la representación gráfica (PDF) de un
// reporte de liquidación ya calculado.
type LiquidacionPDFGenerator interface {
	GenerateLiquidacionPDF(ctx context.Context, report *dto.LiquidacionDTO) ([]byte, error)
}
