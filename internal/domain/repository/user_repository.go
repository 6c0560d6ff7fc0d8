package repository

import (
	"context"

	"github.com/vitalsalud/ventas-crm-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	// ListAgents devuelve los usuarios con rol vendedor activos.
	ListAgents(ctx context.Context) ([]*entity.User, error)
}
