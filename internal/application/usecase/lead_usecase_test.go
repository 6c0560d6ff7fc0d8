package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsalud/ventas-crm-api/internal/application/dto"
	"github.com/vitalsalud/ventas-crm-api/internal/application/usecase"
	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/billing"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeOpRepo struct {
	ops map[string]*entity.Operation
}

func newFakeOpRepo() *fakeOpRepo {
	return &fakeOpRepo{ops: make(map[string]*entity.Operation)}
}

func (r *fakeOpRepo) Create(_ context.Context, op *entity.Operation) error {
	if _, ok := r.ops[op.ID]; ok {
		return domain.ErrDuplicate
	}
	cp := *op
	r.ops[op.ID] = &cp
	return nil
}

func (r *fakeOpRepo) GetByID(_ context.Context, id string) (*entity.Operation, error) {
	op, ok := r.ops[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *op
	return &cp, nil
}

func (r *fakeOpRepo) List(_ context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.ops {
		if f.Status != "" && op.Status != f.Status {
			continue
		}
		cp := *op
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeOpRepo) ListWindow(_ context.Context, from, to time.Time) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.ops {
		if !op.CreatedAt.Before(from) && op.CreatedAt.Before(to) {
			cp := *op
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOpRepo) ListByAgent(_ context.Context, _ string) ([]*entity.Operation, error) {
	return r.List(context.Background(), repository.OperationFilter{})
}

func (r *fakeOpRepo) ListLiquidables(_ context.Context, _ string, _, _ time.Time) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for _, op := range r.ops {
		if op.Status == entity.StatusCumplidas && op.BillingApproved {
			cp := *op
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeOpRepo) UpdateStatus(_ context.Context, id string, status entity.Status) error {
	op, ok := r.ops[id]
	if !ok {
		return domain.ErrNotFound
	}
	op.Status = status
	return nil
}

func (r *fakeOpRepo) SetBillingApproved(_ context.Context, id string, approved bool, billingPeriod string) error {
	op, ok := r.ops[id]
	if !ok {
		return domain.ErrNotFound
	}
	op.BillingApproved = approved
	op.BillingPeriod = billingPeriod
	return nil
}

func (r *fakeOpRepo) SetBillingOverride(_ context.Context, id string, override decimal.NullDecimal) error {
	op, ok := r.ops[id]
	if !ok {
		return domain.ErrNotFound
	}
	op.BillingOverride = override
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client // por operation_id
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*entity.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, client *entity.Client) error {
	if _, ok := r.clients[client.OperationID]; ok {
		return domain.ErrDuplicate
	}
	cp := *client
	r.clients[client.OperationID] = &cp
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*entity.Client, error) {
	for _, c := range r.clients {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeClientRepo) GetByOperationID(_ context.Context, operationID string) (*entity.Client, error) {
	c, ok := r.clients[operationID]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeClientRepo) List(_ context.Context, estadoMora string, _, _ int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range r.clients {
		if estadoMora != "" && c.EstadoMora != estadoMora {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeClientRepo) CountByMora(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, c := range r.clients {
		counts[c.EstadoMora]++
	}
	return counts, nil
}

func (r *fakeClientRepo) UpdateMora(_ context.Context, client *entity.Client) error {
	for opID, c := range r.clients {
		if c.ID == client.ID {
			cp := *client
			r.clients[opID] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTxRunner ejecuta el callback directo, sin transacción real.
type fakeTxRunner struct {
	opRepo     *fakeOpRepo
	clientRepo *fakeClientRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	opRepo repository.OperationRepository,
	clientRepo repository.ClientRepository,
) error) error {
	return fn(r.opRepo, r.clientRepo)
}

func newLeadUC() (*usecase.LeadUseCase, *fakeOpRepo, *fakeClientRepo) {
	opRepo := newFakeOpRepo()
	clientRepo := newFakeClientRepo()
	uc := usecase.NewLeadUseCase(opRepo, &fakeTxRunner{opRepo: opRepo, clientRepo: clientRepo}, billing.DefaultRules())
	return uc, opRepo, clientRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLead_Defaults(t *testing.T) {
	uc, _, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{
		Titular:   "Juan García",
		Prepaga:   "Prevención Salud",
		Plan:      "A2",
		Capitas:   entity.Flex("3"),
		FullPrice: entity.Flex("90000"),
		AgentName: "María Pérez",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID, "debe asignarse un ID")
	assert.Equal(t, "ingresado", out.Status, "un lead nuevo arranca en ingresado")
	assert.Equal(t, "alta", out.Tipo, "sin tipo explícito el lead es un alta")
	assert.NotEmpty(t, out.FechaIngreso, "sin fecha explícita se asigna el día de hoy")
	// Prevención A2: 90000 * 1.30
	assert.True(t, decimal.NewFromInt(117000).Equal(out.Neto),
		"el neto debe calcularse con la tarifa de la prepaga: %s", out.Neto)
}

func TestChangeStatus_CaminoFeliz(t *testing.T) {
	uc, _, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{Titular: "X"})
	require.NoError(t, err)

	for _, next := range []entity.Status{
		entity.StatusPrecarga, entity.StatusMedicas, entity.StatusLegajo, entity.StatusCumplidas,
	} {
		out, err = uc.ChangeStatus(context.Background(), out.ID, next)
		require.NoError(t, err, "la transición a %s debe ser válida", next)
		assert.Equal(t, string(next), out.Status)
	}
}

func TestChangeStatus_SaltoInvalido(t *testing.T) {
	uc, _, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{Titular: "X"})
	require.NoError(t, err)

	// ingresado → cumplidas saltea tres pasos del pipeline.
	_, err = uc.ChangeStatus(context.Background(), out.ID, entity.StatusCumplidas)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestChangeStatus_LateralYReingreso(t *testing.T) {
	uc, _, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{Titular: "X"})
	require.NoError(t, err)

	out, err = uc.ChangeStatus(context.Background(), out.ID, entity.StatusDemoras)
	require.NoError(t, err, "cualquier estado del camino puede pasar a demoras")

	// Desde demoras solo se puede reingresar.
	_, err = uc.ChangeStatus(context.Background(), out.ID, entity.StatusPrecarga)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	out, err = uc.ChangeStatus(context.Background(), out.ID, entity.StatusIngresado)
	require.NoError(t, err)
	assert.Equal(t, "ingresado", out.Status)
}

func TestChangeStatus_CumplidasCreaClienteDeCartera(t *testing.T) {
	uc, _, clientRepo := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{
		Titular:   "Ana López",
		Prepaga:   "DoctoRed",
		Plan:      "500",
		Capitas:   entity.Flex("2"),
		AgentName: "Carlos Díaz",
	})
	require.NoError(t, err)

	for _, next := range []entity.Status{
		entity.StatusPrecarga, entity.StatusMedicas, entity.StatusLegajo, entity.StatusCumplidas,
	} {
		out, err = uc.ChangeStatus(context.Background(), out.ID, next)
		require.NoError(t, err)
	}

	c, err := clientRepo.GetByOperationID(context.Background(), out.ID)
	require.NoError(t, err)
	require.NotNil(t, c, "al cumplir debe nacer el cliente de cartera")
	assert.Equal(t, "Ana López", c.Nombre)
	assert.Equal(t, 2, c.Capitas)
	assert.Equal(t, entity.MoraAlDia, c.EstadoMora, "un cliente nuevo arranca al día")
}

func TestApproveBilling_PeriodoInvalido(t *testing.T) {
	uc, _, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{Titular: "X"})
	require.NoError(t, err)

	err = uc.ApproveBilling(context.Background(), out.ID, dto.ApproveBillingRequest{
		Approved:      true,
		BillingPeriod: "03-2025", // formato incorrecto
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)
}

func TestSetOverride_SeReflejaEnElNeto(t *testing.T) {
	uc, opRepo, _ := newLeadUC()

	out, err := uc.CreateLead(context.Background(), dto.CreateLeadRequest{
		Titular:   "X",
		Prepaga:   "Prevención Salud",
		Plan:      "A2",
		FullPrice: entity.Flex("90000"),
	})
	require.NoError(t, err)

	err = uc.SetOverride(context.Background(), out.ID, dto.BillingOverrideRequest{
		Override: decimal.NullDecimal{Valid: true, Decimal: decimal.NewFromInt(40000)},
	})
	require.NoError(t, err)

	op, err := opRepo.GetByID(context.Background(), out.ID)
	require.NoError(t, err)
	got := billing.CalculateNet(op, billing.DefaultRules())
	assert.True(t, decimal.NewFromInt(40000).Equal(got),
		"el monto manual manda sobre la fórmula: %s", got)
}
