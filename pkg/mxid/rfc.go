package mxid

import (
	"fmt"
	"regexp"
	"time"
)

// TipoPersona distingue los dos formatos de RFC.
type TipoPersona int

const (
	PersonaFisica TipoPersona = iota + 1 // 13 caracteres
	PersonaMoral                         // 12 caracteres
)

// RFC genéricos del SAT: público en general y extranjeros sin RFC.
const (
	RFCGenericoNacional   = "XAXX010101000"
	RFCGenericoExtranjero = "XEXX010101000"
)

var (
	rfcFisicaRe = regexp.MustCompile(`^[A-ZÑ&]{4}[0-9]{6}[A-Z0-9]{2}[0-9A]$`)
	rfcMoralRe  = regexp.MustCompile(`^[A-ZÑ&]{3}[0-9]{6}[A-Z0-9]{2}[0-9A]$`)
)

// diccionario del anexo 20 para el cálculo del dígito verificador (valor = posición).
const rfcDigitAlphabet = "0123456789ABCDEFGHIJKLMN&OPQRSTUVWXYZ Ñ"

// ValidateRFC valida un RFC de cualquier tipo y devuelve el tipo detectado.
func ValidateRFC(rfc string) (TipoPersona, error) {
	r := []rune(rfc)
	switch {
	case len(r) == 13 && rfcFisicaRe.MatchString(rfc):
		if err := validateRFCDate(string(r[4:10])); err != nil {
			return 0, err
		}
		return PersonaFisica, nil
	case len(r) == 12 && rfcMoralRe.MatchString(rfc):
		if err := validateRFCDate(string(r[3:9])); err != nil {
			return 0, err
		}
		return PersonaMoral, nil
	default:
		return 0, ErrRFCFormato
	}
}

// ValidateRFCFisica valida un RFC de persona física (13 caracteres).
func ValidateRFCFisica(rfc string) error {
	return validateRFCOfType(rfc, PersonaFisica)
}

// ValidateRFCMoral valida un RFC de persona moral (12 caracteres).
func ValidateRFCMoral(rfc string) error {
	return validateRFCOfType(rfc, PersonaMoral)
}

func validateRFCOfType(rfc string, want TipoPersona) error {
	got, err := ValidateRFC(rfc)
	if err != nil {
		return err
	}
	if got != want {
		return ErrRFCTipo
	}
	return nil
}

// IsGenericRFC indica si el RFC es uno de los genéricos publicados por el SAT.
func IsGenericRFC(rfc string) bool {
	return rfc == RFCGenericoNacional || rfc == RFCGenericoExtranjero
}

func validateRFCDate(yymmdd string) error {
	if _, err := time.Parse("060102", yymmdd); err != nil {
		return fmt.Errorf("%w: %s", ErrRFCFecha, yymmdd)
	}
	return nil
}

// RFCCheckDigit calcula el dígito verificador (módulo 11) de los primeros 11 o 12
// caracteres del RFC. Los RFC de persona moral se completan con un espacio a la izquierda.
func RFCCheckDigit(rfc string) (rune, error) {
	r := []rune(rfc)
	switch len(r) {
	case 12, 13:
		r = r[:len(r)-1]
	default:
		return 0, ErrRFCFormato
	}
	if len(r) == 11 {
		r = append([]rune{' '}, r...)
	}
	sum := 0
	for i, c := range r {
		v := indexRune(rfcDigitAlphabet, c)
		if v < 0 {
			return 0, ErrRFCFormato
		}
		sum += v * (13 - i)
	}
	rem := sum % 11
	switch {
	case rem == 0:
		return '0', nil
	case 11-rem == 10:
		return 'A', nil
	default:
		return rune('0' + 11 - rem), nil
	}
}

// VerifyRFCCheckDigit valida formato y dígito verificador. Los RFC genéricos se aceptan sin cálculo.
func VerifyRFCCheckDigit(rfc string) error {
	if _, err := ValidateRFC(rfc); err != nil {
		return err
	}
	if IsGenericRFC(rfc) {
		return nil
	}
	expected, err := RFCCheckDigit(rfc)
	if err != nil {
		return err
	}
	r := []rune(rfc)
	if r[len(r)-1] != expected {
		return fmt.Errorf("%w: esperado %c, recibido %c", ErrRFCDigito, expected, r[len(r)-1])
	}
	return nil
}

func indexRune(alphabet string, c rune) int {
	i := 0
	for _, a := range alphabet {
		if a == c {
			return i
		}
		i++
	}
	return -1
}
