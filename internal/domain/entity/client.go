package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cliente del formulario PLD.
const (
	ClientePersonaFisica = "persona_fisica"
	ClientePersonaMoral  = "persona_moral"
	ClienteFideicomiso   = "fideicomiso"
)

// ValidClientType indica si el tipo de cliente es uno de los admitidos.
func ValidClientType(t string) bool {
	return t == ClientePersonaFisica || t == ClientePersonaMoral || t == ClienteFideicomiso
}

// Estados de Client.
const (
	ClienteActivo   = "activo"
	ClienteInactivo = "inactivo"
)

// Niveles de riesgo PLD.
const (
	RiesgoBajo  = "bajo"
	RiesgoMedio = "medio"
	RiesgoAlto  = "alto"
)

// Client representa un cliente de una empresa sujeta a identificación PLD.
// DatosCompletos guarda el JSON anidado (contacto, identificación, representante) propio de cada tipo.
type Client struct {
	ID             string
	EmpresaID      string
	NombreEntidad  string
	TipoCliente    string // persona_fisica, persona_moral, fideicomiso
	Nacionalidad   string
	RFC            string
	Estado         string
	NivelRiesgo    string
	MontoEstimado  decimal.NullDecimal
	DatosCompletos json.RawMessage
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
