package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
)

// PortfolioUseCase administra la cartera post-venta: listado de afiliados,
// seguimiento de mora y resumen de deuda.
type PortfolioUseCase struct {
	clientRepo repository.ClientRepository
}

// NewPortfolioUseCase construye el caso de uso.
func NewPortfolioUseCase(clientRepo repository.ClientRepository) *PortfolioUseCase {
	return &PortfolioUseCase{clientRepo: clientRepo}
}

// ListCartera devuelve la cartera paginada, opcionalmente filtrada por
// estado de mora.
func (uc *PortfolioUseCase) ListCartera(ctx context.Context, req dto.ListCarteraRequest) ([]dto.ClientResponse, error) {
	if req.EstadoMora != "" && !entity.EsEstadoMora(req.EstadoMora) {
		return nil, fmt.Errorf("%w: estado de mora %q", domain.ErrInvalidInput, req.EstadoMora)
	}
	req.DefaultPage()
	clients, err := uc.clientRepo.List(ctx, req.EstadoMora, req.Limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar cartera: %w", err)
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// GetClient devuelve un cliente de cartera por id.
func (uc *PortfolioUseCase) GetClient(ctx context.Context, id string) (*dto.ClientResponse, error) {
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toClientResponse(c)
	return &resp, nil
}

// UpdateMora cambia el estado de mora de un cliente y su deuda asociada.
func (uc *PortfolioUseCase) UpdateMora(ctx context.Context, id string, req dto.UpdateMoraRequest) (*dto.ClientResponse, error) {
	if !entity.EsEstadoMora(req.EstadoMora) {
		return nil, fmt.Errorf("%w: estado de mora %q", domain.ErrInvalidInput, req.EstadoMora)
	}
	c, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.EstadoMora = req.EstadoMora
	if req.MontoDeuda.Valid {
		c.MontoDeuda = req.MontoDeuda.Decimal
	}
	if req.EstadoMora == entity.MoraAlDia {
		c.MontoDeuda = decimal.Zero
	}
	c.Vencimiento = req.Vencimiento
	if err := uc.clientRepo.UpdateMora(ctx, c); err != nil {
		return nil, fmt.Errorf("actualizar mora de %s: %w", id, err)
	}
	resp := toClientResponse(c)
	return &resp, nil
}

type countsResult struct {
	counts map[string]int
	err    error
}

type deudaResult struct {
	deuda decimal.Decimal
	err   error
}

// GetSummary devuelve el resumen de mora de toda la cartera. El conteo por
// estado y la suma de deuda son consultas independientes y se lanzan en
// paralelo.
func (uc *PortfolioUseCase) GetSummary(ctx context.Context) (*dto.CarteraSummaryDTO, error) {
	countsChan := make(chan countsResult, 1)
	deudaChan := make(chan deudaResult, 1)

	go func() {
		counts, err := uc.clientRepo.CountByMora(ctx)
		countsChan <- countsResult{counts, err}
	}()
	go func() {
		// La deuda total se suma sobre los clientes con mora activa.
		deuda := decimal.Zero
		for _, estado := range []string{entity.Mora1, entity.Mora2, entity.Mora3} {
			clients, err := uc.clientRepo.List(ctx, estado, 0, 0)
			if err != nil {
				deudaChan <- deudaResult{decimal.Zero, err}
				return
			}
			for _, c := range clients {
				deuda = deuda.Add(c.MontoDeuda)
			}
		}
		deudaChan <- deudaResult{deuda, nil}
	}()

	countsRes := <-countsChan
	deudaRes := <-deudaChan

	if countsRes.err != nil {
		return nil, fmt.Errorf("resumen de cartera: conteo por estado: %w", countsRes.err)
	}
	if deudaRes.err != nil {
		return nil, fmt.Errorf("resumen de cartera: deuda: %w", deudaRes.err)
	}

	total := 0
	for _, n := range countsRes.counts {
		total += n
	}

	return &dto.CarteraSummaryDTO{Total: total, PorEstado: countsRes.counts, DeudaTotal: deudaRes.deuda}, nil
}

func toClientResponse(c *entity.Client) dto.ClientResponse {
	return dto.ClientResponse{
		ID:          c.ID,
		OperationID: c.OperationID,
		Nombre:      c.Nombre,
		Prepaga:     c.Prepaga,
		Plan:        c.Plan,
		Capitas:     c.Capitas,
		AgentName:   c.AgentName,
		EstadoMora:  c.EstadoMora,
		MontoDeuda:  c.MontoDeuda,
		Vencimiento: c.Vencimiento,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
