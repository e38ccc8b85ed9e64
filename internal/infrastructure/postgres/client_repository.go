package postgres

import (
	"context"
	"fmt"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id::text, empresa_id::text, nombre_entidad, tipo_cliente, nacionalidad, rfc, estado,
	nivel_riesgo, monto_estimado, datos_completos, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente. El RFC repetido dentro de la empresa devuelve domain.ErrDuplicate.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `
		INSERT INTO clientes (id, empresa_id, nombre_entidad, tipo_cliente, nacionalidad, rfc, estado,
			nivel_riesgo, monto_estimado, datos_completos, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.EmpresaID, c.NombreEntidad, c.TipoCliente, c.Nacionalidad, c.RFC, c.Estado,
		c.NivelRiesgo, c.MontoEstimado, jsonOrEmpty(c.DatosCompletos), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID; (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clientes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// GetByEmpresaAndRFC obtiene un cliente por empresa y RFC.
func (r *ClientRepo) GetByEmpresaAndRFC(ctx context.Context, empresaID, rfc string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clientes WHERE empresa_id = $1 AND rfc = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, empresaID, rfc))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente by rfc: %w", err)
	}
	return c, nil
}

// List lista clientes con paginación y filtros opcionales de empresa y tipo.
func (r *ClientRepo) List(ctx context.Context, f repository.ClientFilter) ([]*entity.Client, error) {
	limit, offset := normalizeLimit(f.Limit, f.Offset)
	query := `
		SELECT ` + clientColumns + `
		FROM clientes
		WHERE ($1 = '' OR empresa_id = NULLIF($1, '')::uuid)
		  AND ($2 = '' OR tipo_cliente = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.EmpresaID, f.TipoCliente, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanClient(row rowScanner) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.EmpresaID, &c.NombreEntidad, &c.TipoCliente, &c.Nacionalidad, &c.RFC, &c.Estado,
		&c.NivelRiesgo, &c.MontoEstimado, &c.DatosCompletos, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
