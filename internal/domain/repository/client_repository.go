package repository

import (
	"context"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para la cartera
// post-venta (clientes con seguimiento de mora).
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByOperationID(ctx context.Context, operationID string) (*entity.Client, error)
	// List devuelve la cartera; estadoMora vacío = todos, limit <= 0 = sin tope.
	List(ctx context.Context, estadoMora string, limit, offset int) ([]*entity.Client, error)
	// CountByMora devuelve la cantidad de clientes por estado de mora.
	CountByMora(ctx context.Context) (map[string]int, error)
	UpdateMora(ctx context.Context, client *entity.Client) error
}
