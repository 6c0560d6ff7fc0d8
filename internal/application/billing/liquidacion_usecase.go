package billing

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	calc "github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

// margenLiquidacion amplía la ventana de created_at al buscar operaciones
// sin billing_period explícito: las cargas tardías del período anterior
// siguen siendo alcanzables.
const margenLiquidacion = 45 * 24 * time.Hour

// LiquidacionUseCase arma el reporte de liquidación de un período: cada
// operación cumplida y aprobada con su neto, subtotales por asesor y
// totales generales. El neto sale siempre de calc.CalculateNet; este caso
// de uso solo agrega y presenta.
type LiquidacionUseCase struct {
	opRepo repository.OperationRepository
	rules  calc.Rules
}

// NewLiquidacionUseCase construye el caso de uso.
func NewLiquidacionUseCase(opRepo repository.OperationRepository, rules calc.Rules) *LiquidacionUseCase {
	return &LiquidacionUseCase{opRepo: opRepo, rules: rules}
}

// GetLiquidacion devuelve el reporte del período pedido (mes en curso si
// viene vacío).
func (uc *LiquidacionUseCase) GetLiquidacion(ctx context.Context, req dto.LiquidacionRequest) (*dto.LiquidacionDTO, error) {
	var period sales.Period
	var err error
	if req.Period == "" {
		local := time.Now().In(sales.ZonaVentas)
		period = sales.MonthPeriod(local.Year(), local.Month())
	} else {
		period, err = sales.ParseMonth(req.Period)
		if err != nil {
			return nil, err
		}
	}

	ops, err := uc.opRepo.ListLiquidables(ctx, period.MonthKey(),
		period.Start.Add(-margenLiquidacion), period.End.Add(margenLiquidacion))
	if err != nil {
		return nil, fmt.Errorf("liquidación %s: %w", period.MonthKey(), err)
	}

	report := &dto.LiquidacionDTO{
		Period:    period.MonthKey(),
		Capitas:   decimal.Zero,
		NetoTotal: decimal.Zero,
		AvgPerOp:  decimal.Zero,
		AvgPerCap: decimal.Zero,
	}

	agentTotals := make(map[string]*dto.LiquidacionAgentDTO)
	seen := make(map[string]bool)
	for _, op := range ops {
		if op.ID != "" && seen[op.ID] {
			continue
		}
		seen[op.ID] = true
		if !sales.EsLiquidada(op, period) {
			continue
		}

		neto := calc.CalculateNet(op, uc.rules)
		line := dto.LiquidacionLineDTO{
			OperationID: op.ID,
			Agent:       op.AgentName,
			Prepaga:     op.Prepaga,
			Plan:        op.PlanEfectivo(),
			Kind:        string(sales.KindAlta),
			Capitas:     decimal.Zero,
			Neto:        neto,
			Overridden:  op.BillingOverride.Valid,
		}
		if op.IsPass() {
			line.Kind = string(sales.KindPass)
			report.TotalPass++
		} else {
			line.Capitas = sales.AltaPoints(op)
		}
		report.Lines = append(report.Lines, line)
		report.TotalOps++
		report.Capitas = report.Capitas.Add(line.Capitas)
		report.NetoTotal = report.NetoTotal.Add(neto)

		key := normalize.Key(op.AgentName)
		agg, ok := agentTotals[key]
		if !ok {
			agg = &dto.LiquidacionAgentDTO{Agent: op.AgentName, Capitas: decimal.Zero, NetoTotal: decimal.Zero}
			agentTotals[key] = agg
		}
		agg.Ops++
		agg.Capitas = agg.Capitas.Add(line.Capitas)
		agg.NetoTotal = agg.NetoTotal.Add(neto)
	}

	for _, agg := range agentTotals {
		report.Agents = append(report.Agents, *agg)
	}
	sort.Slice(report.Agents, func(i, j int) bool {
		if !report.Agents[i].NetoTotal.Equal(report.Agents[j].NetoTotal) {
			return report.Agents[i].NetoTotal.GreaterThan(report.Agents[j].NetoTotal)
		}
		return report.Agents[i].Agent < report.Agents[j].Agent
	})

	if report.TotalOps > 0 {
		report.AvgPerOp = report.NetoTotal.DivRound(decimal.NewFromInt(int64(report.TotalOps)), 2)
	}
	if report.Capitas.IsPositive() {
		report.AvgPerCap = report.NetoTotal.DivRound(report.Capitas, 2)
	}
	return report, nil
}
