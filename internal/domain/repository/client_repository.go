package repository

import (
	"context"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
)

// ClientFilter criterios de listado de clientes.
type ClientFilter struct {
	EmpresaID   string // vacío = todas las empresas
	TipoCliente string // vacío = todos los tipos
	Limit       int
	Offset      int
}

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	GetByEmpresaAndRFC(ctx context.Context, empresaID, rfc string) (*entity.Client, error)
	List(ctx context.Context, filter ClientFilter) ([]*entity.Client, error)
}
