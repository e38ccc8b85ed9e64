package mxid

import "regexp"

var (
	codigoPostalRe = regexp.MustCompile(`^(0[1-9]|[1-9][0-9])[0-9]{3}$`)
	telefonoRe     = regexp.MustCompile(`^[0-9]{10}$`)
)

// ValidateCodigoPostal valida un código postal de 5 dígitos (01000 a 99999).
func ValidateCodigoPostal(cp string) error {
	if !codigoPostalRe.MatchString(cp) {
		return ErrCodigoPostal
	}
	return nil
}

// ValidateTelefono valida un número nacional de 10 dígitos (sin lada internacional).
// Acepta espacios, guiones y paréntesis como separadores.
func ValidateTelefono(tel string) error {
	digits := make([]byte, 0, len(tel))
	for i := 0; i < len(tel); i++ {
		switch c := tel[i]; {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
		case c == ' ' || c == '-' || c == '(' || c == ')':
		default:
			return ErrTelefono
		}
	}
	if !telefonoRe.Match(digits) {
		return ErrTelefono
	}
	return nil
}
