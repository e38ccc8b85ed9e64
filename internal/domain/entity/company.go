package entity

import "time"

// Estados de Company.
const (
	CompanyActiva     = "activo"
	CompanyInactiva   = "inactivo"
	CompanySuspendida = "suspendido"
)

// Tipos de entidad de Company (determinan el formato de RFC esperado).
const (
	EntidadPersonaFisica = "persona_fisica"
	EntidadPersonaMoral  = "persona_moral"
)

// ValidCompanyStatus indica si el estado es uno de los admitidos.
func ValidCompanyStatus(s string) bool {
	return s == CompanyActiva || s == CompanyInactiva || s == CompanySuspendida
}

// Domicilio datos de ubicación fiscal.
type Domicilio struct {
	Calle             string
	NumeroExterior    string
	NumeroInterior    string
	Colonia           string
	Municipio         string
	EntidadFederativa string
	CodigoPostal      string
	Pais              string
}

// Company representa una empresa sujeta obligada registrada en el portal (tenant).
type Company struct {
	ID          string
	NombreLegal string
	RFC         string
	TipoEntidad string // persona_fisica, persona_moral
	Domicilio   Domicilio
	Estado      string // activo, inactivo, suspendido
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si la empresa puede registrar clientes.
func (c *Company) IsActive() bool {
	return c != nil && c.Estado == CompanyActiva
}
