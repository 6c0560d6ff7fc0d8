package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vitalsalud/ventas-crm-api/internal/domain"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
	"github.com/vitalsalud/ventas-crm-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación del puerto ClientRepository sobre PostgreSQL
// (usable con pool o tx). Persiste la cartera post-venta.
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientColumns = `
	id, operation_id, nombre, COALESCE(prepaga,''), COALESCE(plan,''),
	capitas, COALESCE(agent_name,''), estado_mora, monto_deuda,
	vencimiento, created_at, updated_at`

// Create persiste un nuevo cliente de cartera.
func (r *ClientRepo) Create(ctx context.Context, client *entity.Client) error {
	query := `
		INSERT INTO portfolio_clients (
			id, operation_id, nombre, prepaga, plan, capitas, agent_name,
			estado_mora, monto_deuda, vencimiento, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.q.Exec(ctx, query,
		client.ID, client.OperationID, client.Nombre, client.Prepaga, client.Plan,
		client.Capitas, client.AgentName, client.EstadoMora, client.MontoDeuda,
		client.Vencimiento, client.CreatedAt, client.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cliente de la operación %s", domain.ErrDuplicate, client.OperationID)
		}
		return fmt.Errorf("insert portfolio client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM portfolio_clients WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id))
}

// GetByOperationID obtiene el cliente nacido de una operación.
func (r *ClientRepo) GetByOperationID(ctx context.Context, operationID string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM portfolio_clients WHERE operation_id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, operationID))
}

// List devuelve la cartera; estadoMora vacío trae todos, limit <= 0 no
// aplica tope.
func (r *ClientRepo) List(ctx context.Context, estadoMora string, limit, offset int) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM portfolio_clients WHERE 1=1`
	args := []any{}
	if estadoMora != "" {
		args = append(args, estadoMora)
		query += fmt.Sprintf(" AND estado_mora = $%d", len(args))
	}
	query += " ORDER BY updated_at DESC"
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list portfolio: %w", err)
	}
	defer rows.Close()

	var clients []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar portfolio: %w", err)
	}
	return clients, nil
}

// CountByMora devuelve la cantidad de clientes por estado de mora.
func (r *ClientRepo) CountByMora(ctx context.Context) (map[string]int, error) {
	query := `SELECT estado_mora, COUNT(*) FROM portfolio_clients GROUP BY estado_mora`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count portfolio by mora: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var estado string
		var n int
		if err := rows.Scan(&estado, &n); err != nil {
			return nil, fmt.Errorf("scan mora count: %w", err)
		}
		counts[estado] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar mora counts: %w", err)
	}
	return counts, nil
}

// UpdateMora persiste un cambio de estado de mora, deuda y vencimiento.
func (r *ClientRepo) UpdateMora(ctx context.Context, client *entity.Client) error {
	query := `
		UPDATE portfolio_clients
		SET estado_mora = $1, monto_deuda = $2, vencimiento = $3, updated_at = now()
		WHERE id = $4`
	tag, err := r.q.Exec(ctx, query,
		client.EstadoMora, client.MontoDeuda, client.Vencimiento, client.ID)
	if err != nil {
		return fmt.Errorf("update mora de %s: %w", client.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, client.ID)
	}
	return nil
}

func (r *ClientRepo) scanOne(row pgx.Row) (*entity.Client, error) {
	c, err := scanClient(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return c, err
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(
		&c.ID, &c.OperationID, &c.Nombre, &c.Prepaga, &c.Plan,
		&c.Capitas, &c.AgentName, &c.EstadoMora, &c.MontoDeuda,
		&c.Vencimiento, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
