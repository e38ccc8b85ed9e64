package repository

import (
	"context"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
)

// CompanyFilter criterios de listado de empresas.
type CompanyFilter struct {
	Estado string // vacío = todos
	Limit  int
	Offset int
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure. Los Get* devuelven (nil, nil) si no existe.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetByIDForShare bloquea la fila en modo compartido; sólo tiene efecto dentro de una transacción.
	GetByIDForShare(ctx context.Context, id string) (*entity.Company, error)
	GetByRFC(ctx context.Context, rfc string) (*entity.Company, error)
	Update(ctx context.Context, company *entity.Company) error
	UpdateStatus(ctx context.Context, id, estado string, at time.Time) error
	List(ctx context.Context, filter CompanyFilter) ([]*entity.Company, error)
}
