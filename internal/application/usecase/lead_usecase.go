package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/sales"
)

// TxRunner ejecuta un callback con repos atados a una transacción. La
// transición a cumplidas toca operación y cartera en forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.OperationRepository,
		clientRepo repository.ClientRepository,
	) error) error
}

// LeadUseCase orquesta el alta y el movimiento de leads por el pipeline.
//
// El núcleo de cálculo solo clasifica el estado vigente; la validación de
// transiciones (camino feliz + estados laterales) se impone acá, en el
// borde de la aplicación.
type LeadUseCase struct {
	opRepo   repository.OperationRepository
	txRunner TxRunner
	rules    billing.Rules
}

// NewLeadUseCase construye el caso de uso.
func NewLeadUseCase(opRepo repository.OperationRepository, txRunner TxRunner, rules billing.Rules) *LeadUseCase {
	return &LeadUseCase{opRepo: opRepo, txRunner: txRunner, rules: rules}
}

// CreateLead da de alta un lead en estado ingresado. Si no viene
// fecha_ingreso se asigna el día de hoy en el huso comercial.
func (uc *LeadUseCase) CreateLead(ctx context.Context, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	now := time.Now()
	fecha := in.FechaIngreso
	if fecha == "" {
		fecha = now.In(sales.ZonaVentas).Format("2006-01-02")
	}
	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.TipoAlta
	}
	op := &entity.Operation{
		ID:               uuid.New().String(),
		Titular:          in.Titular,
		Status:           entity.StatusIngresado,
		Tipo:             tipo,
		Origen:           in.Origen,
		Prepaga:          in.Prepaga,
		QuotedPrepaga:    in.QuotedPrepaga,
		Plan:             in.Plan,
		QuotedPlan:       in.QuotedPlan,
		CondicionLaboral: in.CondicionLaboral,
		Capitas:          in.Capitas,
		FullPrice:        in.FullPrice,
		Aportes:          in.Aportes,
		Descuento:        in.Descuento,
		FechaIngreso:     fecha,
		CreatedAt:        now,
		AgentName:        in.AgentName,
	}
	if err := uc.opRepo.Create(ctx, op); err != nil {
		return nil, fmt.Errorf("crear lead: %w", err)
	}
	return uc.toResponse(op), nil
}

// GetByID devuelve una operación con su neto calculado.
func (uc *LeadUseCase) GetByID(ctx context.Context, id string) (*dto.LeadResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(op), nil
}

// List devuelve operaciones filtradas por estado y/o asesor.
func (uc *LeadUseCase) List(ctx context.Context, req dto.ListLeadsRequest) ([]*dto.LeadResponse, error) {
	req.DefaultPage()
	status := entity.Status(req.Status)
	if req.Status != "" && !status.EsOperativo() {
		return nil, fmt.Errorf("estado %q: %w", req.Status, domain.ErrInvalidInput)
	}
	ops, err := uc.opRepo.List(ctx, repository.OperationFilter{
		Status:    status,
		AgentName: req.Agent,
		Limit:     req.Limit,
		Offset:    req.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]*dto.LeadResponse, 0, len(ops))
	for _, op := range ops {
		out = append(out, uc.toResponse(op))
	}
	return out, nil
}

// ChangeStatus mueve una operación en el pipeline validando la transición.
// Cuando una operación llega a cumplidas se crea (si no existe) el cliente
// de cartera en la misma transacción.
func (uc *LeadUseCase) ChangeStatus(ctx context.Context, id string, newStatus entity.Status) (*dto.LeadResponse, error) {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.ValidTransition(op.Status, newStatus) {
		return nil, fmt.Errorf("%s → %s: %w", op.Status, newStatus, domain.ErrInvalidTransition)
	}

	if newStatus == entity.StatusCumplidas {
		err = uc.txRunner.Run(ctx, func(
			opRepo repository.OperationRepository,
			clientRepo repository.ClientRepository,
		) error {
			if err := opRepo.UpdateStatus(ctx, id, newStatus); err != nil {
				return err
			}
			existing, err := clientRepo.GetByOperationID(ctx, id)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return err
			}
			if existing != nil {
				return nil // reingreso de una operación ya cumplida antes
			}
			now := time.Now()
			capitas := int(op.Capitas.Decimal().IntPart())
			if capitas <= 0 {
				capitas = 1
			}
			return clientRepo.Create(ctx, &entity.Client{
				ID:          uuid.New().String(),
				OperationID: op.ID,
				Nombre:      op.Titular,
				Prepaga:     op.Prepaga,
				Plan:        op.Plan,
				Capitas:     capitas,
				AgentName:   op.AgentName,
				EstadoMora:  entity.MoraAlDia,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		})
	} else {
		err = uc.opRepo.UpdateStatus(ctx, id, newStatus)
	}
	if err != nil {
		return nil, fmt.Errorf("transición de %s: %w", id, err)
	}
	op.Status = newStatus
	return uc.toResponse(op), nil
}

// ApproveBilling fija la compuerta manual de facturación y, opcionalmente,
// el período de liquidación (YYYY-MM) de la operación.
func (uc *LeadUseCase) ApproveBilling(ctx context.Context, id string, in dto.ApproveBillingRequest) error {
	if in.BillingPeriod != "" {
		if _, err := sales.ParseMonth(in.BillingPeriod); err != nil {
			return err
		}
	}
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if op == nil {
		return domain.ErrNotFound
	}
	return uc.opRepo.SetBillingApproved(ctx, id, in.Approved, in.BillingPeriod)
}

// SetOverride fija (o limpia) el monto manual de liquidación.
func (uc *LeadUseCase) SetOverride(ctx context.Context, id string, in dto.BillingOverrideRequest) error {
	op, err := uc.opRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if op == nil {
		return domain.ErrNotFound
	}
	return uc.opRepo.SetBillingOverride(ctx, id, in.Override)
}

func (uc *LeadUseCase) toResponse(op *entity.Operation) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:              op.ID,
		Titular:         op.Titular,
		Status:          string(op.Status),
		Tipo:            op.Tipo,
		SubState:        op.SubState,
		Origen:          op.Origen,
		Prepaga:         op.Prepaga,
		Plan:            op.Plan,
		Capitas:         op.Capitas,
		FullPrice:       op.FullPrice,
		Neto:            billing.CalculateNet(op, uc.rules),
		BillingOverride: op.BillingOverride,
		BillingPeriod:   op.BillingPeriod,
		BillingApproved: op.BillingApproved,
		FechaIngreso:    op.FechaIngreso,
		AgentName:       op.AgentName,
		CreatedAt:       op.CreatedAt,
		LastUpdate:      op.LastUpdate,
	}
}
