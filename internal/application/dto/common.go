package dto

import "github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero o están fuera de rango.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total,omitempty"`
}

// ErrorResponse cuerpo de error HTTP: {error, code, detalles?}.
type ErrorResponse struct {
	Error    string                  `json:"error"`
	Code     string                  `json:"code"`
	Detalles []validation.FieldError `json:"detalles,omitempty"`
}

// MessageResponse respuesta simple {message}.
type MessageResponse struct {
	Message string `json:"message"`
}
