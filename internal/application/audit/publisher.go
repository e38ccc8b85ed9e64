// Package audit registra en la bitácora las acciones relevantes del portal.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

// Event datos de una acción a registrar. Detalle se serializa a JSON.
type Event struct {
	UsuarioID string
	EmpresaID string
	Accion    string
	Entidad   string
	EntidadID string
	Detalle   map[string]any
}

// Publisher escribe eventos en la bitácora. Un fallo al escribir se registra en el log
// y no interrumpe la operación que lo originó.
type Publisher struct {
	repo repository.AuditRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewPublisher construye el publisher sobre el repositorio de bitácora.
func NewPublisher(repo repository.AuditRepository, log *logger.Logger) *Publisher {
	return &Publisher{repo: repo, log: log, now: time.Now}
}

// Emit agrega el evento a la bitácora.
func (p *Publisher) Emit(ctx context.Context, e Event) {
	if p == nil || p.repo == nil {
		return
	}
	var detalle json.RawMessage
	if len(e.Detalle) > 0 {
		b, err := json.Marshal(e.Detalle)
		if err == nil {
			detalle = b
		}
	}
	ev := &entity.AuditEvent{
		ID:        uuid.New().String(),
		UsuarioID: e.UsuarioID,
		EmpresaID: e.EmpresaID,
		Accion:    e.Accion,
		Entidad:   e.Entidad,
		EntidadID: e.EntidadID,
		Detalle:   detalle,
		CreatedAt: p.now(),
	}
	if err := p.repo.Append(ctx, ev); err != nil {
		p.log.Warn().Err(err).Str("accion", e.Accion).Str("entidad_id", e.EntidadID).Msg("no se pudo registrar en bitácora")
	}
}

// List devuelve la bitácora paginada.
func (p *Publisher) List(ctx context.Context, page dto.PageRequest) (*dto.AuditListResponse, error) {
	page.DefaultPage()
	events, err := p.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditEventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, dto.AuditEventResponse{
			ID:        e.ID,
			UsuarioID: e.UsuarioID,
			EmpresaID: e.EmpresaID,
			Accion:    e.Accion,
			Entidad:   e.Entidad,
			EntidadID: e.EntidadID,
			Detalle:   e.Detalle,
			CreatedAt: e.CreatedAt,
		})
	}
	return &dto.AuditListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}
