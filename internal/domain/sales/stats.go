package sales

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// Stats son los rollups de performance de un conjunto de operaciones dentro
// de un período. Todas son reducciones puras sobre el conjunto normalizado
// más los registros crudos; no hay I/O adicional.
type Stats struct {
	TotalLeads     int             // ingresos (created_at en período), mide intake
	TotalSales     decimal.Decimal // suma de puntos ALTA del conjunto normalizado
	SalesPass      int             // cantidad de PASS del conjunto normalizado
	TotalCompleted int             // operaciones liquidadas oficialmente
	CompletedPass  int             // liquidadas clasificadas PASS
	ConversionRate int             // % redondeado: (ventas + pass) / leads
	ComplianceRate int             // % redondeado: liquidadas / (ventas + pass)
	AverageTicket  decimal.Decimal // neto liquidado por capita liquidada, redondeado
	AvgDaysToClose float64         // promedio de días fecha_ingreso → cierre
	NetoTotal      decimal.Decimal // neto facturable total del conjunto liquidado
	CapitasLiq     decimal.Decimal // capitas liquidadas (solo ALTA)
}

// EsLiquidada indica si la operación cuenta para la liquidación oficial del
// período: estado cumplidas, facturación aprobada, y billing_period igual al
// período objetivo (o, si no tiene billing_period, created_at dentro del
// período). billing_period es autoritativo cuando está presente.
func EsLiquidada(op *entity.Operation, p Period) bool {
	if op.Status != entity.StatusCumplidas || !op.BillingApproved {
		return false
	}
	if op.BillingPeriod != "" {
		return op.BillingPeriod == p.MonthKey()
	}
	return p.Contains(op.CreatedAt)
}

var cien = decimal.NewFromInt(100)

// ComputeStats deriva los rollups del período: normaliza las ventas, filtra
// la liquidación oficial y calcula tasas, ticket y velocidad de cierre.
// El neto usa billing.CalculateNet con las reglas recibidas (incluida la
// política PASS); no existe otra copia de la fórmula.
func ComputeStats(records []*entity.Operation, p Period, rules billing.Rules) Stats {
	st := Stats{
		TotalSales:    decimal.Zero,
		AverageTicket: decimal.Zero,
		NetoTotal:     decimal.Zero,
		CapitasLiq:    decimal.Zero,
	}

	// Deduplicar por id también para las reducciones sobre crudos, con el
	// mismo criterio del normalizador (gana la primera aparición).
	seen := make(map[string]bool, len(records))
	dedup := make([]*entity.Operation, 0, len(records))
	for _, op := range records {
		if op == nil || seen[op.ID] {
			continue
		}
		seen[op.ID] = true
		dedup = append(dedup, op)
	}

	// Conjunto normalizado: ventas del período.
	for _, ev := range Normalize(dedup, p) {
		st.TotalSales = st.TotalSales.Add(ev.AltasPoints)
		st.SalesPass += ev.PassCount
	}

	// Intake: leads creados dentro del período (independiente de la
	// atribución por fecha de venta).
	var liquidadas []*entity.Operation
	for _, op := range dedup {
		if p.Contains(op.CreatedAt) {
			st.TotalLeads++
		}
		if EsLiquidada(op, p) {
			liquidadas = append(liquidadas, op)
		}
	}

	// Liquidación oficial: neto, capitas y velocidad de cierre.
	var diasTotal float64
	var diasCount int
	for _, op := range liquidadas {
		st.TotalCompleted++
		if op.IsPass() {
			st.CompletedPass++
		} else {
			st.CapitasLiq = st.CapitasLiq.Add(AltaPoints(op))
		}
		st.NetoTotal = st.NetoTotal.Add(billing.CalculateNet(op, rules))

		if inicio, ok := ResolveSaleDate(op.FechaIngreso); ok {
			fin := op.CreatedAt
			if op.LastUpdate != nil {
				fin = *op.LastUpdate
			}
			dias := math.Round(fin.Sub(inicio).Hours() / 24)
			if dias < 0 {
				dias = 0
			}
			diasTotal += dias
			diasCount++
		}
	}

	ventasTotales := st.TotalSales.Add(decimal.NewFromInt(int64(st.SalesPass)))
	if st.TotalLeads > 0 {
		st.ConversionRate = int(ventasTotales.Mul(cien).
			DivRound(decimal.NewFromInt(int64(st.TotalLeads)), 0).IntPart())
	}
	if ventasTotales.IsPositive() {
		st.ComplianceRate = int(decimal.NewFromInt(int64(st.TotalCompleted)).
			Mul(cien).DivRound(ventasTotales, 0).IntPart())
	}
	if st.CapitasLiq.IsPositive() {
		st.AverageTicket = st.NetoTotal.DivRound(st.CapitasLiq, 0)
	}
	if diasCount > 0 {
		st.AvgDaysToClose = diasTotal / float64(diasCount)
	}
	return st
}
