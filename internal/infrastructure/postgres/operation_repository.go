package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
	"github.com/vitalsalud/ventas-crm-api/pkg/normalize"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación del puerto OperationRepository sobre
// PostgreSQL (usable con pool o tx).
//
// Los campos numéricos flexibles (capitas, precios, aportes) se guardan
// como TEXT tal cual llegaron del origen; el dominio los interpreta.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `
	id, COALESCE(titular,''), status, COALESCE(tipo,''), COALESCE(sub_state,''),
	COALESCE(origen,''), COALESCE(prepaga,''), COALESCE(quoted_prepaga,''),
	COALESCE(plan,''), COALESCE(quoted_plan,''), COALESCE(condicion_laboral,''),
	COALESCE(capitas,''), COALESCE(full_price,''), COALESCE(price,''),
	COALESCE(aportes,''), COALESCE(descuento,''), billing_override,
	COALESCE(fecha_ingreso,''), created_at, last_update, sold_at,
	COALESCE(billing_period,''), billing_approved, COALESCE(agent_name,'')`

// Create persiste una nueva operación.
func (r *OperationRepo) Create(ctx context.Context, op *entity.Operation) error {
	query := `
		INSERT INTO operations (
			id, titular, status, tipo, sub_state, origen,
			prepaga, quoted_prepaga, plan, quoted_plan, condicion_laboral,
			capitas, full_price, price, aportes, descuento, billing_override,
			fecha_ingreso, created_at, last_update, sold_at,
			billing_period, billing_approved, agent_name
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)`
	_, err := r.q.Exec(ctx, query,
		op.ID, op.Titular, string(op.Status), op.Tipo, op.SubState, op.Origen,
		op.Prepaga, op.QuotedPrepaga, op.Plan, op.QuotedPlan, op.CondicionLaboral,
		op.Capitas.Raw(), op.FullPrice.Raw(), op.Price.Raw(), op.Aportes.Raw(), op.Descuento.Raw(),
		op.BillingOverride,
		op.FechaIngreso, op.CreatedAt, op.LastUpdate, op.SoldAt,
		op.BillingPeriod, op.BillingApproved, op.AgentName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: operación %s", domain.ErrDuplicate, op.ID)
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	return nil
}

// GetByID obtiene una operación por ID.
func (r *OperationRepo) GetByID(ctx context.Context, id string) (*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE id = $1`
	op, err := scanOperation(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get operation %s: %w", id, err)
	}
	return op, nil
}

// List devuelve operaciones con filtros opcionales, más recientes primero.
func (r *OperationRepo) List(ctx context.Context, f repository.OperationFilter) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE 1=1`
	args := []any{}
	if f.Status != "" {
		args = append(args, string(f.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.AgentName != "" {
		// Prefiltro case-insensitive en SQL; la insensibilidad a acentos
		// queda para los listados que agrupan en memoria.
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(f.AgentName))+"%")
		query += fmt.Sprintf(" AND lower(btrim(agent_name)) LIKE $%d", len(args))
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()
	return collectOperations(rows)
}

// ListWindow devuelve las operaciones con created_at en [from, to).
func (r *OperationRepo) ListWindow(ctx context.Context, from, to time.Time) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list operations window: %w", err)
	}
	defer rows.Close()
	return collectOperations(rows)
}

// ListByAgent devuelve las operaciones del asesor. El prefiltro en SQL baja
// por lower/trim; el matching fino (diacríticos, espacios internos) se
// termina en memoria con normalize.SameName.
func (r *OperationRepo) ListByAgent(ctx context.Context, agentName string) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations
		WHERE agent_name IS NOT NULL AND btrim(agent_name) <> ''
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list operations by agent: %w", err)
	}
	defer rows.Close()

	all, err := collectOperations(rows)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Operation, 0, len(all))
	for _, op := range all {
		if normalize.SameName(op.AgentName, agentName) {
			out = append(out, op)
		}
	}
	return out, nil
}

// ListLiquidables devuelve las operaciones candidatas a liquidación del
// período: cumplidas y aprobadas, con billing_period igual a monthKey o,
// si no lo tienen, created_at dentro de [from, to).
func (r *OperationRepo) ListLiquidables(ctx context.Context, monthKey string, from, to time.Time) ([]*entity.Operation, error) {
	query := `SELECT ` + operationColumns + `
		FROM operations
		WHERE status = $1 AND billing_approved
		  AND (billing_period = $2
		       OR (COALESCE(billing_period,'') = '' AND created_at >= $3 AND created_at < $4))
		ORDER BY agent_name, created_at`
	rows, err := r.q.Query(ctx, query, string(entity.StatusCumplidas), monthKey, from, to)
	if err != nil {
		return nil, fmt.Errorf("list liquidables %s: %w", monthKey, err)
	}
	defer rows.Close()
	return collectOperations(rows)
}

// UpdateStatus cambia el estado del pipeline y registra last_update.
func (r *OperationRepo) UpdateStatus(ctx context.Context, id string, status entity.Status) error {
	query := `UPDATE operations SET status = $1, last_update = now() WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, string(status), id)
	if err != nil {
		return fmt.Errorf("update status de %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	return nil
}

// SetBillingApproved marca la operación como aprobada para facturación y
// fija su período de liquidación.
func (r *OperationRepo) SetBillingApproved(ctx context.Context, id string, approved bool, billingPeriod string) error {
	query := `UPDATE operations SET billing_approved = $1, billing_period = $2, last_update = now() WHERE id = $3`
	tag, err := r.q.Exec(ctx, query, approved, billingPeriod, id)
	if err != nil {
		return fmt.Errorf("aprobar facturación de %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	return nil
}

// SetBillingOverride fija (o limpia, con NullDecimal inválido) el monto
// manual de facturación.
func (r *OperationRepo) SetBillingOverride(ctx context.Context, id string, override decimal.NullDecimal) error {
	query := `UPDATE operations SET billing_override = $1, last_update = now() WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, override, id)
	if err != nil {
		return fmt.Errorf("override de %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: operación %s", domain.ErrNotFound, id)
	}
	return nil
}

func scanOperation(row pgx.Row) (*entity.Operation, error) {
	var op entity.Operation
	err := row.Scan(
		&op.ID, &op.Titular, &op.Status, &op.Tipo, &op.SubState,
		&op.Origen, &op.Prepaga, &op.QuotedPrepaga,
		&op.Plan, &op.QuotedPlan, &op.CondicionLaboral,
		&op.Capitas, &op.FullPrice, &op.Price,
		&op.Aportes, &op.Descuento, &op.BillingOverride,
		&op.FechaIngreso, &op.CreatedAt, &op.LastUpdate, &op.SoldAt,
		&op.BillingPeriod, &op.BillingApproved, &op.AgentName,
	)
	if err != nil {
		return nil, err
	}
	return &op, nil
}

func collectOperations(rows pgx.Rows) ([]*entity.Operation, error) {
	var ops []*entity.Operation
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		ops = append(ops, op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar operations: %w", err)
	}
	return ops, nil
}
