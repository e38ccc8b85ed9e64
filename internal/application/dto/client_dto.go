package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
)

// RegisterClientRequest entrada de registrar-cliente. datos_completos depende de tipo_cliente.
type RegisterClientRequest struct {
	EmpresaID      string           `json:"empresa_id"`
	NombreEntidad  string           `json:"nombre_entidad"`
	TipoCliente    string           `json:"tipo_cliente"`
	Nacionalidad   string           `json:"nacionalidad"`
	MontoEstimado  *decimal.Decimal `json:"monto_estimado,omitempty"`
	DatosCompletos json.RawMessage  `json:"datos_completos"`
}

// ClientListRequest filtros de mis-clientes.
type ClientListRequest struct {
	PageRequest
	EmpresaID   string `query:"empresa_id"`
	TipoCliente string `query:"tipo_cliente"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string           `json:"id"`
	EmpresaID      string           `json:"empresa_id"`
	NombreEntidad  string           `json:"nombre_entidad"`
	TipoCliente    string           `json:"tipo_cliente"`
	Nacionalidad   string           `json:"nacionalidad"`
	RFC            string           `json:"rfc"`
	Estado         string           `json:"estado"`
	NivelRiesgo    string           `json:"nivel_riesgo"`
	MontoEstimado  *decimal.Decimal `json:"monto_estimado,omitempty"`
	DatosCompletos json.RawMessage  `json:"datos_completos"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// ClientListResponse listado paginado de clientes.
type ClientListResponse struct {
	Items []ClientResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// ValidateClientResponse resultado de /cliente/validar.
type ValidateClientResponse struct {
	Valido   bool                    `json:"valido"`
	Detalles []validation.FieldError `json:"detalles"`
}
