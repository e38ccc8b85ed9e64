// Package validation concentra la validación de entradas del portal: etiquetas de
// go-playground/validator para identificadores mexicanos y el formulario de alta de
// clientes por tipo (persona física, persona moral, fideicomiso).
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/mxid"
)

const dateLayout = "2006-01-02"

// FieldError error de validación de un campo, con el nombre JSON del campo.
type FieldError struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// Error agrupa los errores de campo de una entrada. errors.Is(err, domain.ErrInvalidInput) es true.
type Error struct {
	Detalles []FieldError
}

// NewError construye un Error con un único campo.
func NewError(campo, mensaje string) *Error {
	return &Error{Detalles: []FieldError{{Campo: campo, Mensaje: mensaje}}}
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Detalles))
	for _, d := range e.Detalles {
		parts = append(parts, d.Campo+": "+d.Mensaje)
	}
	return domain.ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return domain.ErrInvalidInput }

// Add agrega un error de campo.
func (e *Error) Add(campo, mensaje string) {
	e.Detalles = append(e.Detalles, FieldError{Campo: campo, Mensaje: mensaje})
}

// OrNil devuelve nil si no hay detalles.
func (e *Error) OrNil() error {
	if e == nil || len(e.Detalles) == 0 {
		return nil
	}
	return e
}

// Validator envuelve validator.Validate con las etiquetas propias del portal:
// rfc, rfc_fisica, rfc_moral, curp, codigo_postal, telefono, fecha, fecha_pasada.
// Con strict=true las etiquetas rfc*/curp verifican además el dígito verificador.
type Validator struct {
	v      *validator.Validate
	strict bool
}

// New construye el validador y registra las etiquetas personalizadas.
func New(strict bool) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	out := &Validator{v: v, strict: strict}
	_ = v.RegisterValidation("rfc", out.rfcTag(nil))
	_ = v.RegisterValidation("rfc_fisica", out.rfcTag(mxid.ValidateRFCFisica))
	_ = v.RegisterValidation("rfc_moral", out.rfcTag(mxid.ValidateRFCMoral))
	_ = v.RegisterValidation("curp", out.curpTag)
	_ = v.RegisterValidation("codigo_postal", func(fl validator.FieldLevel) bool {
		return mxid.ValidateCodigoPostal(strings.TrimSpace(fl.Field().String())) == nil
	})
	_ = v.RegisterValidation("telefono", func(fl validator.FieldLevel) bool {
		return mxid.ValidateTelefono(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("fecha", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("fecha_pasada", func(fl validator.FieldLevel) bool {
		d, err := time.Parse(dateLayout, fl.Field().String())
		return err == nil && d.Before(time.Now())
	})
	v.RegisterStructValidation(domicilioStructLevel, Domicilio{})
	return out
}

// Strict indica si se verifican dígitos verificadores.
func (val *Validator) Strict() bool { return val.strict }

func (val *Validator) rfcTag(ofType func(string) error) validator.Func {
	return func(fl validator.FieldLevel) bool {
		rfc := mxid.Normalize(fl.Field().String())
		if ofType != nil {
			if ofType(rfc) != nil {
				return false
			}
		} else if _, err := mxid.ValidateRFC(rfc); err != nil {
			return false
		}
		if val.strict {
			return mxid.VerifyRFCCheckDigit(rfc) == nil
		}
		return true
	}
}

func (val *Validator) curpTag(fl validator.FieldLevel) bool {
	curp := mxid.Normalize(fl.Field().String())
	if val.strict {
		return mxid.VerifyCURPCheckDigit(curp) == nil
	}
	return mxid.ValidateCURP(curp) == nil
}

// RFC valida un RFC suelto con las mismas reglas que la etiqueta rfc (respeta strict).
func (val *Validator) RFC(rfc string) (mxid.TipoPersona, error) {
	rfc = mxid.Normalize(rfc)
	tipo, err := mxid.ValidateRFC(rfc)
	if err != nil {
		return 0, err
	}
	if val.strict {
		if err := mxid.VerifyRFCCheckDigit(rfc); err != nil {
			return 0, err
		}
	}
	return tipo, nil
}

// Struct valida s y traduce los errores a *Error con nombres JSON. prefix reemplaza
// el nombre del tipo raíz en la ruta del campo (vacío = sin prefijo).
func (val *Validator) Struct(s any, prefix string) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe.Namespace(), prefix), message(fe))
	}
	return out
}

func fieldPath(namespace, prefix string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		namespace = namespace[i+1:]
	}
	if prefix == "" {
		return namespace
	}
	return prefix + "." + namespace
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "email":
		return "no es un correo válido"
	case "min":
		if fe.Kind() == reflect.String {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser al menos " + fe.Param()
	case "max":
		if fe.Kind() == reflect.String {
			return "debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser como máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "uuid":
		return "no es un UUID válido"
	case "rfc":
		return "no es un RFC válido"
	case "rfc_fisica":
		return "no es un RFC válido de persona física (13 caracteres)"
	case "rfc_moral":
		return "no es un RFC válido de persona moral (12 caracteres)"
	case "curp":
		return "no es una CURP válida"
	case "codigo_postal":
		return "no es un código postal válido (5 dígitos)"
	case "telefono":
		return "debe tener 10 dígitos"
	case "fecha":
		return "debe tener formato AAAA-MM-DD"
	case "fecha_pasada":
		return "debe ser una fecha pasada con formato AAAA-MM-DD"
	default:
		return "valor inválido"
	}
}
