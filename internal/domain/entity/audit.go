package entity

import (
	"encoding/json"
	"time"
)

// Acciones registradas en la bitácora.
const (
	AccionLogin             = "login"
	AccionEmpresaCreada     = "empresa.creada"
	AccionEmpresaEditada    = "empresa.editada"
	AccionEmpresaEstado     = "empresa.estado"
	AccionUsuarioCreado     = "usuario.creado"
	AccionUsuarioEstado     = "usuario.estado"
	AccionClienteRegistrado = "cliente.registrado"
)

// AuditEvent entrada append-only de la bitácora.
type AuditEvent struct {
	ID        string
	UsuarioID string
	EmpresaID string
	Accion    string
	Entidad   string
	EntidadID string
	Detalle   json.RawMessage
	CreatedAt time.Time
}
