package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// OperationFilter filtros opcionales para listados de operaciones.
type OperationFilter struct {
	Status    entity.Status // vacío = todos
	AgentName string        // vacío = todos; matching insensible a mayúsculas/espacios
	Limit     int
	Offset    int
}

// OperationRepository define el puerto de persistencia para Operation.
//
// El origen de datos es la tabla de operaciones del CRM; las consultas de
// atribución por período traen una ventana ampliada por created_at porque
// fecha_ingreso se guarda como texto libre y solo el normalizador de ventas
// sabe interpretarla.
type OperationRepository interface {
	Create(ctx context.Context, op *entity.Operation) error
	GetByID(ctx context.Context, id string) (*entity.Operation, error)
	List(ctx context.Context, f OperationFilter) ([]*entity.Operation, error)

	// ListWindow devuelve las operaciones con created_at en [from, to).
	// Los llamadores amplían la ventana del período para no perder filas
	// cuya fecha_ingreso cae dentro aunque created_at quede afuera.
	ListWindow(ctx context.Context, from, to time.Time) ([]*entity.Operation, error)

	// ListByAgent devuelve todas las operaciones atribuidas al asesor
	// (matching insensible a mayúsculas y espacios sobre agent_name).
	ListByAgent(ctx context.Context, agentName string) ([]*entity.Operation, error)

	// ListLiquidables devuelve las operaciones que cuentan para la
	// liquidación del período: cumplidas + billing_approved, con
	// billing_period igual a monthKey o, si es nulo/vacío, created_at
	// dentro de [from, to).
	ListLiquidables(ctx context.Context, monthKey string, from, to time.Time) ([]*entity.Operation, error)

	UpdateStatus(ctx context.Context, id string, status entity.Status) error
	SetBillingApproved(ctx context.Context, id string, approved bool, billingPeriod string) error
	SetBillingOverride(ctx context.Context, id string, override decimal.NullDecimal) error
}
