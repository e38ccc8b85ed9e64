package dto

import "time"

// DomicilioDTO domicilio fiscal de una empresa.
type DomicilioDTO struct {
	Calle             string `json:"calle" validate:"max=200"`
	NumeroExterior    string `json:"numero_exterior" validate:"max=20"`
	NumeroInterior    string `json:"numero_interior" validate:"max=20"`
	Colonia           string `json:"colonia" validate:"max=120"`
	Municipio         string `json:"municipio" validate:"max=120"`
	EntidadFederativa string `json:"entidad_federativa" validate:"max=80"`
	CodigoPostal      string `json:"codigo_postal" validate:"omitempty,codigo_postal"`
	Pais              string `json:"pais" validate:"max=80"`
}

// CreateCompanyRequest entrada para crear o editar una empresa.
// El RFC debe corresponder a tipo_entidad (13 caracteres física, 12 moral).
type CreateCompanyRequest struct {
	NombreLegal string       `json:"nombre_legal" validate:"required,max=250"`
	RFC         string       `json:"rfc" validate:"required"`
	TipoEntidad string       `json:"tipo_entidad" validate:"required,oneof=persona_fisica persona_moral"`
	Domicilio   DomicilioDTO `json:"domicilio"`
}

// UpdateCompanyStatusRequest cambio de estado de una empresa.
type UpdateCompanyStatusRequest struct {
	Estado string `json:"estado" validate:"required,oneof=activo inactivo suspendido"`
}

// CompanyResponse salida de empresa.
type CompanyResponse struct {
	ID          string       `json:"id"`
	NombreLegal string       `json:"nombre_legal"`
	RFC         string       `json:"rfc"`
	TipoEntidad string       `json:"tipo_entidad"`
	Domicilio   DomicilioDTO `json:"domicilio"`
	Estado      string       `json:"estado"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
