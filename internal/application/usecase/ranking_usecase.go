package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

// RankingUseCase arma el ranking mensual de asesores. Agrupa por nombre
// normalizado para que "María Pérez" y "maria perez " sumen en la misma
// fila, y ordena por puntos y luego por neto.
type RankingUseCase struct {
	opRepo repository.OperationRepository
	rules  billing.Rules
}

// NewRankingUseCase construye el caso de uso.
func NewRankingUseCase(opRepo repository.OperationRepository, rules billing.Rules) *RankingUseCase {
	return &RankingUseCase{opRepo: opRepo, rules: rules}
}

// GetRanking devuelve el ranking del período pedido (mes en curso si viene
// vacío).
func (uc *RankingUseCase) GetRanking(ctx context.Context, rawPeriod string) (*dto.RankingDTO, error) {
	period, err := resolvePeriod(rawPeriod, time.Now())
	if err != nil {
		return nil, err
	}

	ops, err := uc.opRepo.ListWindow(ctx,
		period.Start.Add(-ventanaAtribucion), period.End.Add(ventanaAtribucion))
	if err != nil {
		return nil, fmt.Errorf("ranking %s: %w", period.MonthKey(), err)
	}

	// Agrupa por clave normalizada y conserva el primer nombre visto como
	// etiqueta visible de la fila.
	groups := make(map[string][]*entity.Operation)
	labels := make(map[string]string)
	for _, op := range ops {
		key := normalize.Key(op.AgentName)
		if key == "" {
			continue
		}
		if _, seen := labels[key]; !seen {
			labels[key] = op.AgentName
		}
		groups[key] = append(groups[key], op)
	}

	rows := make([]dto.RankingRowDTO, 0, len(groups))
	for key, agentOps := range groups {
		altas := decimal.Zero
		passes := 0
		for _, ev := range sales.Normalize(agentOps, period) {
			altas = altas.Add(ev.AltasPoints)
			passes += ev.PassCount
		}
		if altas.IsZero() && passes == 0 {
			continue
		}
		st := sales.ComputeStats(agentOps, period, uc.rules)
		rows = append(rows, dto.RankingRowDTO{
			Agent:     labels[key],
			Altas:     altas,
			Passes:    passes,
			Puntos:    altas.Add(decimal.NewFromInt(int64(passes))),
			NetoTotal: st.NetoTotal,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Puntos.Equal(rows[j].Puntos) {
			return rows[i].Puntos.GreaterThan(rows[j].Puntos)
		}
		if !rows[i].NetoTotal.Equal(rows[j].NetoTotal) {
			return rows[i].NetoTotal.GreaterThan(rows[j].NetoTotal)
		}
		return rows[i].Agent < rows[j].Agent
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return &dto.RankingDTO{Period: period.MonthKey(), Rows: rows}, nil
}
