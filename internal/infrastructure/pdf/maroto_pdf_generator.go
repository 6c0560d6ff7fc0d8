// Package pdf implementa la versión imprimible de la liquidación mensual
// de comisiones.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + período  │  Totales del mes               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUBTOTALES POR ASESOR: Asesor | Ops | Cápitas | Neto       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Operación | Asesor | Prepaga | Tipo | Neto        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: promedios y leyenda                                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/vitalsalud/ventas-crm-api/internal/application/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 80}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.LiquidacionPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.LiquidacionPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateLiquidacionPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateLiquidacionPDF(_ context.Context, report *dto.LiquidacionDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Liquidación "+report.Period, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	// Subtotales por asesor
	m.AddRows(sectionTitle("SUBTOTALES POR ASESOR"))
	m.AddRows(agentHeaderRow())
	for _, r := range agentRows(report.Agents) {
		m.AddRows(r)
	}

	// Detalle de operaciones
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("DETALLE DE OPERACIONES"))
	m.AddRows(lineHeaderRow())
	for _, r := range lineRows(report.Lines) {
		m.AddRows(r)
	}

	// Footer
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + período (izq) y totales del mes (der).
func headerRow(report *dto.LiquidacionDTO) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("LIQUIDACIÓN DE COMISIONES", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Período: "+report.Period, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%d operaciones (%d PASS)", report.TotalOps, report.TotalPass), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("NETO TOTAL: $"+formatMoney(report.NetoTotal.StringFixed(0)), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 8, Color: colorPrimary,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func agentHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Asesor", 5, align.Left),
		h("Ops", 2, align.Center),
		h("Cápitas", 2, align.Center),
		h("Neto", 3, align.Right),
	)
}

func agentRows(agents []dto.LiquidacionAgentDTO) []core.Row {
	result := make([]core.Row, 0, len(agents))
	for _, a := range agents {
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(a.Agent, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", a.Ops), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(a.Capitas.StringFixed(0), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+formatMoney(a.NetoTotal.StringFixed(0)), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func lineHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 1,
		}))
	}
	return row.New(6).Add(
		h("Operación", 3, align.Left),
		h("Asesor", 3, align.Left),
		h("Prepaga", 2, align.Left),
		h("Tipo", 1, align.Center),
		h("Neto", 3, align.Right),
	)
}

func lineRows(lines []dto.LiquidacionLineDTO) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		neto := "$" + formatMoney(l.Neto.StringFixed(0))
		if l.Overridden {
			neto += " *"
		}
		result = append(result, row.New(5).Add(
			col.New(3).Add(text.New(shorten(l.OperationID, 18), props.Text{Size: 7, Top: 1})),
			col.New(3).Add(text.New(l.Agent, props.Text{Size: 7, Top: 1})),
			col.New(2).Add(text.New(l.Prepaga, props.Text{Size: 7, Top: 1})),
			col.New(1).Add(text.New(l.Kind, props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New(neto, props.Text{Size: 7, Align: align.Right, Top: 1})),
		))
	}
	return result
}

// footerRow: promedios del período y leyenda del asterisco.
func footerRow(report *dto.LiquidacionDTO) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Promedio por operación: $%s   |   Ticket por cápita: $%s",
				formatMoney(report.AvgPerOp.StringFixed(0)),
				formatMoney(report.AvgPerCap.StringFixed(0)),
			), props.Text{Size: 8, Top: 2, Color: colorGray}),
			text.New("(*) operación con monto de facturación cargado a mano.", props.Text{
				Size: 6.5, Top: 8, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// shorten corta s a max n caracteres con elipsis.
func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
