package dto

import (
	"encoding/json"
	"time"
)

// AuditEventResponse entrada de la bitácora.
type AuditEventResponse struct {
	ID        string          `json:"id"`
	UsuarioID string          `json:"usuario_id,omitempty"`
	EmpresaID string          `json:"empresa_id,omitempty"`
	Accion    string          `json:"accion"`
	Entidad   string          `json:"entidad"`
	EntidadID string          `json:"entidad_id,omitempty"`
	Detalle   json.RawMessage `json:"detalle,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// AuditListResponse listado paginado de la bitácora.
type AuditListResponse struct {
	Items []AuditEventResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}
