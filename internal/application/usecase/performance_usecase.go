package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

// PerformanceCache cachea los reportes de performance ya calculados.
// Las implementaciones deben tolerar indisponibilidad: un error de cache
// degrada a recalcular, nunca corta el reporte.
type PerformanceCache interface {
	GetPerformance(ctx context.Context, key string) (*dto.PerformanceDTO, bool, error)
	SetPerformance(ctx context.Context, key string, report *dto.PerformanceDTO) error
}

// ventanaAtribucion amplía la consulta por created_at alrededor del período:
// fecha_ingreso es texto libre que solo el normalizador interpreta, y puede
// diferir de created_at (cargas tardías, importaciones).
const ventanaAtribucion = 45 * 24 * time.Hour

// PerformanceUseCase calcula las métricas de un asesor o del equipo en un
// período: trae los registros crudos, delega todo el cálculo en
// sales.ComputeStats y arma el desglose semanal.
type PerformanceUseCase struct {
	opRepo repository.OperationRepository
	cache  PerformanceCache
	rules  billing.Rules
}

// NewPerformanceUseCase construye el caso de uso.
func NewPerformanceUseCase(opRepo repository.OperationRepository, cache PerformanceCache, rules billing.Rules) *PerformanceUseCase {
	return &PerformanceUseCase{opRepo: opRepo, cache: cache, rules: rules}
}

// resolvePeriod interpreta el período pedido, con el mes en curso como
// default. El reloj se lee acá, en el borde; el núcleo no usa "ahora".
func resolvePeriod(raw string, now time.Time) (sales.Period, error) {
	if raw == "" {
		local := now.In(sales.ZonaVentas)
		return sales.MonthPeriod(local.Year(), local.Month()), nil
	}
	return sales.ParseMonth(raw)
}

// GetAgentPerformance devuelve las métricas de un asesor en el período.
func (uc *PerformanceUseCase) GetAgentPerformance(ctx context.Context, req dto.PerformanceRequest) (*dto.PerformanceDTO, error) {
	period, err := resolvePeriod(req.Period, time.Now())
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("performance:%s:%s", normalize.Key(req.Agent), period.MonthKey())
	if cached, ok, err := uc.cache.GetPerformance(ctx, key); err == nil && ok {
		return cached, nil
	}

	ops, err := uc.opRepo.ListByAgent(ctx, req.Agent)
	if err != nil {
		return nil, fmt.Errorf("performance de %s: %w", req.Agent, err)
	}

	report := uc.buildReport(ops, period)
	report.Agent = req.Agent
	// Cache best-effort: si falla se recalcula la próxima vez.
	_ = uc.cache.SetPerformance(ctx, key, report)
	return report, nil
}

// GetTeamPerformance devuelve las métricas agregadas de todo el equipo.
func (uc *PerformanceUseCase) GetTeamPerformance(ctx context.Context, req dto.PerformanceRequest) (*dto.PerformanceDTO, error) {
	period, err := resolvePeriod(req.Period, time.Now())
	if err != nil {
		return nil, err
	}
	ops, err := uc.opRepo.ListWindow(ctx,
		period.Start.Add(-ventanaAtribucion), period.End.Add(ventanaAtribucion))
	if err != nil {
		return nil, fmt.Errorf("performance del equipo: %w", err)
	}
	return uc.buildReport(ops, period), nil
}

func (uc *PerformanceUseCase) buildReport(ops []*entity.Operation, period sales.Period) *dto.PerformanceDTO {
	st := sales.ComputeStats(ops, period, uc.rules)

	weekly := make([]dto.WeeklyPointsDTO, 5)
	for i := range weekly {
		weekly[i] = dto.WeeklyPointsDTO{Week: i + 1, Altas: decimal.Zero}
	}
	for _, ev := range sales.Normalize(ops, period) {
		w := &weekly[ev.WeekIndex-1]
		w.Altas = w.Altas.Add(ev.AltasPoints)
		w.Passes += ev.PassCount
	}

	return &dto.PerformanceDTO{
		Period:         period.MonthKey(),
		TotalLeads:     st.TotalLeads,
		TotalSales:     st.TotalSales,
		SalesPass:      st.SalesPass,
		TotalCompleted: st.TotalCompleted,
		CompletedPass:  st.CompletedPass,
		ConversionRate: st.ConversionRate,
		ComplianceRate: st.ComplianceRate,
		AverageTicket:  st.AverageTicket,
		AvgDaysToClose: st.AvgDaysToClose,
		NetoTotal:      st.NetoTotal,
		Weekly:         weekly,
	}
}
