package repository

import (
	"context"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListByEmpresa lista usuarios; empresaID vacío lista todos.
	ListByEmpresa(ctx context.Context, empresaID string, limit, offset int) ([]*entity.User, error)
	SetActive(ctx context.Context, id string, activo bool, at time.Time) error
	ExistsWithRole(ctx context.Context, rol string) (bool, error)
}
