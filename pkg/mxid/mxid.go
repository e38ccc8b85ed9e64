// Package mxid valida identificadores regulatorios mexicanos: RFC (SAT), CURP (RENAPO)
// y código postal (SEPOMEX).
//
// Las funciones Validate* revisan formato y fecha embebida. El dígito verificador se
// revisa aparte (Verify*CheckDigit) porque existen registros históricos con homoclave
// asignada a mano que no lo cumplen.
package mxid

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Errores de validación; los Validate* los envuelven con el valor recibido.
var (
	ErrRFCFormato   = errors.New("RFC con formato inválido")
	ErrRFCFecha     = errors.New("RFC con fecha inválida")
	ErrRFCTipo      = errors.New("RFC no corresponde al tipo de persona")
	ErrRFCDigito    = errors.New("RFC con dígito verificador inválido")
	ErrCURPFormato  = errors.New("CURP con formato inválido")
	ErrCURPFecha    = errors.New("CURP con fecha de nacimiento inválida")
	ErrCURPDigito   = errors.New("CURP con dígito verificador inválido")
	ErrCodigoPostal = errors.New("código postal inválido")
	ErrTelefono     = errors.New("teléfono inválido: se esperan 10 dígitos")
)

var upper = cases.Upper(language.MustParse("es-MX"))

// Normalize quita espacios y guiones y pasa a mayúsculas con reglas del español
// (ñ -> Ñ). Se aplica antes de validar o persistir RFC y CURP.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer(" ", "", "-", "", ".", "").Replace(s)
	return upper.String(s)
}
