package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/mxid"
)

// Domicilio dirección capturada en el formulario. Para domicilios en México el código
// postal debe ser de 5 dígitos; en el extranjero sólo es obligatorio.
type Domicilio struct {
	Calle             string `json:"calle" validate:"required,max=200"`
	NumeroExterior    string `json:"numero_exterior" validate:"required,max=20"`
	NumeroInterior    string `json:"numero_interior,omitempty" validate:"max=20"`
	Colonia           string `json:"colonia" validate:"required,max=120"`
	Municipio         string `json:"municipio" validate:"required,max=120"`
	EntidadFederativa string `json:"entidad_federativa" validate:"required,max=80"`
	CodigoPostal      string `json:"codigo_postal" validate:"required,max=10"`
	Pais              string `json:"pais,omitempty" validate:"max=80"`
}

// Contacto datos de contacto comunes a los tres tipos de cliente.
type Contacto struct {
	Email     string     `json:"email,omitempty" validate:"omitempty,email"`
	Telefono  string     `json:"telefono,omitempty" validate:"omitempty,telefono"`
	Domicilio *Domicilio `json:"domicilio" validate:"required"`
}

// RepresentanteLegal apoderado o representante de una persona moral o fideicomiso.
type RepresentanteLegal struct {
	Nombre          string `json:"nombre" validate:"required,max=120"`
	ApellidoPaterno string `json:"apellido_paterno" validate:"required,max=120"`
	ApellidoMaterno string `json:"apellido_materno,omitempty" validate:"max=120"`
	RFC             string `json:"rfc" validate:"required,rfc_fisica"`
	CURP            string `json:"curp,omitempty" validate:"omitempty,curp"`
	FechaNacimiento string `json:"fecha_nacimiento,omitempty" validate:"omitempty,fecha_pasada"`
}

// PersonaFisicaDatos datos_completos de una persona física.
type PersonaFisicaDatos struct {
	Nombre             string    `json:"nombre" validate:"required,max=120"`
	ApellidoPaterno    string    `json:"apellido_paterno" validate:"required,max=120"`
	ApellidoMaterno    string    `json:"apellido_materno,omitempty" validate:"max=120"`
	FechaNacimiento    string    `json:"fecha_nacimiento" validate:"required,fecha_pasada"`
	RFC                string    `json:"rfc" validate:"required,rfc_fisica"`
	CURP               string    `json:"curp,omitempty" validate:"omitempty,curp"`
	PaisNacimiento     string    `json:"pais_nacimiento,omitempty" validate:"max=80"`
	ActividadEconomica string    `json:"actividad_economica" validate:"required,max=200"`
	Contacto           *Contacto `json:"contacto" validate:"required"`
}

// PersonaMoralDatos datos_completos de una persona moral.
type PersonaMoralDatos struct {
	RazonSocial        string              `json:"razon_social" validate:"required,max=250"`
	RFC                string              `json:"rfc" validate:"required,rfc_moral"`
	FechaConstitucion  string              `json:"fecha_constitucion" validate:"required,fecha_pasada"`
	GiroMercantil      string              `json:"giro_mercantil" validate:"required,max=200"`
	PaisConstitucion   string              `json:"pais_constitucion,omitempty" validate:"max=80"`
	RepresentanteLegal *RepresentanteLegal `json:"representante_legal" validate:"required"`
	Contacto           *Contacto           `json:"contacto" validate:"required"`
}

// FideicomisoDatos datos_completos de un fideicomiso.
type FideicomisoDatos struct {
	NumeroFideicomiso      string              `json:"numero_fideicomiso" validate:"required,max=60"`
	DenominacionFiduciario string              `json:"denominacion_fiduciario" validate:"required,max=250"`
	RFCFiduciario          string              `json:"rfc_fiduciario" validate:"required,rfc_moral"`
	FechaConstitucion      string              `json:"fecha_constitucion" validate:"required,fecha_pasada"`
	Finalidad              string              `json:"finalidad,omitempty" validate:"max=500"`
	RepresentanteLegal     *RepresentanteLegal `json:"representante_legal" validate:"required"`
	Contacto               *Contacto           `json:"contacto" validate:"required"`
}

// ClientInput campos del formulario registrar-cliente que se validan.
type ClientInput struct {
	TipoCliente    string
	NombreEntidad  string
	Nacionalidad   string
	MontoEstimado  *decimal.Decimal
	DatosCompletos json.RawMessage
}

// ClientIdentity identificadores extraídos y normalizados de un cliente válido.
type ClientIdentity struct {
	RFC  string
	CURP string
}

// ValidateClient aplica la validación por campo del formulario según el tipo de cliente
// y devuelve los identificadores normalizados. Todos los errores se acumulan en un *Error.
func (val *Validator) ValidateClient(in ClientInput) (*ClientIdentity, error) {
	verr := &Error{}
	tipo := strings.TrimSpace(in.TipoCliente)
	switch {
	case tipo == "":
		verr.Add("tipo_cliente", "es obligatorio")
	case !entity.ValidClientType(tipo):
		verr.Add("tipo_cliente", "debe ser uno de: persona_fisica persona_moral fideicomiso")
	}
	if strings.TrimSpace(in.NombreEntidad) == "" {
		verr.Add("nombre_entidad", "es obligatorio")
	} else if len([]rune(in.NombreEntidad)) > 250 {
		verr.Add("nombre_entidad", "debe tener como máximo 250 caracteres")
	}
	if strings.TrimSpace(in.Nacionalidad) == "" {
		verr.Add("nacionalidad", "es obligatorio")
	}
	if in.MontoEstimado != nil && in.MontoEstimado.IsNegative() {
		verr.Add("monto_estimado", "no puede ser negativo")
	}

	raw := bytes.TrimSpace(in.DatosCompletos)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		verr.Add("datos_completos", "es obligatorio")
		return nil, verr
	}
	if !entity.ValidClientType(tipo) {
		return nil, verr
	}

	var target any
	switch tipo {
	case entity.ClientePersonaFisica:
		target = &PersonaFisicaDatos{}
	case entity.ClientePersonaMoral:
		target = &PersonaMoralDatos{}
	case entity.ClienteFideicomiso:
		target = &FideicomisoDatos{}
	}
	if err := json.Unmarshal(raw, target); err != nil {
		verr.Add("datos_completos", "no es un objeto JSON válido para "+tipo)
		return nil, verr
	}
	if err := val.Struct(target, "datos_completos"); err != nil {
		var fe *Error
		if errors.As(err, &fe) {
			verr.Detalles = append(verr.Detalles, fe.Detalles...)
		} else {
			return nil, err
		}
	}
	if d, ok := target.(*PersonaFisicaDatos); ok && IsMexican(in.Nacionalidad) && strings.TrimSpace(d.CURP) == "" {
		verr.Add("datos_completos.curp", "es obligatorio para personas de nacionalidad mexicana")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	return identityOf(target), nil
}

func identityOf(datos any) *ClientIdentity {
	switch d := datos.(type) {
	case *PersonaFisicaDatos:
		return &ClientIdentity{RFC: mxid.Normalize(d.RFC), CURP: mxid.Normalize(d.CURP)}
	case *PersonaMoralDatos:
		return &ClientIdentity{RFC: mxid.Normalize(d.RFC)}
	case *FideicomisoDatos:
		return &ClientIdentity{RFC: mxid.Normalize(d.RFCFiduciario)}
	}
	return &ClientIdentity{}
}

// IsMexican interpreta el campo libre nacionalidad ("Mexicana", "MÉXICO", "mx", ...).
func IsMexican(nacionalidad string) bool {
	switch Fold(nacionalidad) {
	case "mexicana", "mexicano", "mexico", "mx", "mex":
		return true
	}
	return false
}

// Fold pasa a minúsculas y elimina acentos para comparar texto libre.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

func domicilioStructLevel(sl validator.StructLevel) {
	d := sl.Current().Interface().(Domicilio)
	if d.CodigoPostal == "" {
		return
	}
	if d.Pais != "" && !IsMexican(d.Pais) {
		return
	}
	if mxid.ValidateCodigoPostal(strings.TrimSpace(d.CodigoPostal)) != nil {
		sl.ReportError(d.CodigoPostal, "codigo_postal", "CodigoPostal", "codigo_postal", "")
	}
}
