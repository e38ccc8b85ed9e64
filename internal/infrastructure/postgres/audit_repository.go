package postgres

import (
	"context"
	"fmt"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo bitácora append-only sobre PostgreSQL.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador de la bitácora.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append inserta un evento. usuario_id y empresa_id vacíos se guardan como NULL.
func (r *AuditRepo) Append(ctx context.Context, e *entity.AuditEvent) error {
	query := `
		INSERT INTO bitacora (id, usuario_id, empresa_id, accion, entidad, entidad_id, detalle, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.UsuarioID, e.EmpresaID, e.Accion, e.Entidad, e.EntidadID, jsonOrEmpty(e.Detalle), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bitacora: %w", err)
	}
	return nil
}

// List devuelve eventos del más reciente al más antiguo.
func (r *AuditRepo) List(ctx context.Context, limit, offset int) ([]*entity.AuditEvent, error) {
	limit, offset = normalizeLimit(limit, offset)
	query := `
		SELECT id::text, COALESCE(usuario_id::text, ''), COALESCE(empresa_id::text, ''),
			accion, entidad, entidad_id, detalle, created_at
		FROM bitacora ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bitacora: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AuditEvent, 0)
	for rows.Next() {
		var e entity.AuditEvent
		if err := rows.Scan(&e.ID, &e.UsuarioID, &e.EmpresaID, &e.Accion, &e.Entidad, &e.EntidadID, &e.Detalle, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bitacora: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
