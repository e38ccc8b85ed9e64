package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id::text, nombre_legal, rfc, tipo_entidad,
	calle, numero_exterior, numero_interior, colonia, municipio, entidad_federativa, codigo_postal, pais,
	estado, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL (pool o tx).
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa. Un RFC repetido devuelve domain.ErrDuplicate.
func (r *CompanyRepo) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO empresas (id, nombre_legal, rfc, tipo_entidad,
			calle, numero_exterior, numero_interior, colonia, municipio, entidad_federativa, codigo_postal, pais,
			estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	d := c.Domicilio
	_, err := r.q.Exec(ctx, query,
		c.ID, c.NombreLegal, c.RFC, c.TipoEntidad,
		d.Calle, d.NumeroExterior, d.NumeroInterior, d.Colonia, d.Municipio, d.EntidadFederativa, d.CodigoPostal, d.Pais,
		c.Estado, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID; (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM empresas WHERE id = $1`, id)
}

// GetByIDForShare como GetByID pero bloquea la fila (FOR SHARE) hasta el fin de la transacción,
// de modo que la empresa no cambie de estado mientras se registra un cliente.
func (r *CompanyRepo) GetByIDForShare(ctx context.Context, id string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM empresas WHERE id = $1 FOR SHARE`, id)
}

// GetByRFC obtiene una empresa por RFC.
func (r *CompanyRepo) GetByRFC(ctx context.Context, rfc string) (*entity.Company, error) {
	return r.getOne(ctx, `SELECT `+companyColumns+` FROM empresas WHERE rfc = $1`, rfc)
}

func (r *CompanyRepo) getOne(ctx context.Context, query string, arg any) (*entity.Company, error) {
	c, err := scanCompany(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return c, nil
}

// Update actualiza los datos editables de una empresa (no el estado).
func (r *CompanyRepo) Update(ctx context.Context, c *entity.Company) error {
	query := `
		UPDATE empresas SET nombre_legal = $2, rfc = $3, tipo_entidad = $4,
			calle = $5, numero_exterior = $6, numero_interior = $7, colonia = $8, municipio = $9,
			entidad_federativa = $10, codigo_postal = $11, pais = $12, updated_at = $13
		WHERE id = $1`
	d := c.Domicilio
	cmd, err := r.q.Exec(ctx, query,
		c.ID, c.NombreLegal, c.RFC, c.TipoEntidad,
		d.Calle, d.NumeroExterior, d.NumeroInterior, d.Colonia, d.Municipio, d.EntidadFederativa, d.CodigoPostal, d.Pais,
		c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado (activo, inactivo, suspendido).
func (r *CompanyRepo) UpdateStatus(ctx context.Context, id, estado string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE empresas SET estado = $2, updated_at = $3 WHERE id = $1`, id, estado, at)
	if err != nil {
		return fmt.Errorf("update estado empresa: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve empresas con paginación, más recientes primero.
func (r *CompanyRepo) List(ctx context.Context, f repository.CompanyFilter) ([]*entity.Company, error) {
	limit, offset := normalizeLimit(f.Limit, f.Offset)
	query := `
		SELECT ` + companyColumns + `
		FROM empresas
		WHERE ($1 = '' OR estado = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, f.Estado, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (*entity.Company, error) {
	var c entity.Company
	d := &c.Domicilio
	err := row.Scan(&c.ID, &c.NombreLegal, &c.RFC, &c.TipoEntidad,
		&d.Calle, &d.NumeroExterior, &d.NumeroInterior, &d.Colonia, &d.Municipio, &d.EntidadFederativa, &d.CodigoPostal, &d.Pais,
		&c.Estado, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
