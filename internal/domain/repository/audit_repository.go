package repository

import (
	"context"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
)

// AuditRepository persistencia append-only de la bitácora.
type AuditRepository interface {
	Append(ctx context.Context, event *entity.AuditEvent) error
	List(ctx context.Context, limit, offset int) ([]*entity.AuditEvent, error)
}
