package mxid

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var curpRe = regexp.MustCompile(`^[A-Z][AEIOUX][A-Z]{2}[0-9]{6}[HMX]` +
	`(AS|BC|BS|CC|CL|CM|CS|CH|DF|DG|GT|GR|HG|JC|MC|MN|MS|NT|NL|OC|PL|QT|QR|SP|SL|SR|TC|TS|TL|VZ|YN|ZS|NE)` +
	`[B-DF-HJ-NP-TV-Z]{3}[0-9A-Z][0-9]$`)

const curpDigitAlphabet = "0123456789ABCDEFGHIJKLMNÑOPQRSTUVWXYZ"

// ValidateCURP valida estructura y fecha de nacimiento de una CURP de 18 caracteres.
// El siglo se toma del carácter diferenciador (posición 17): dígito para nacidos
// antes de 2000, letra a partir de 2000.
func ValidateCURP(curp string) error {
	if len(curp) != 18 || !curpRe.MatchString(curp) {
		return ErrCURPFormato
	}
	century := 1900
	if d := curp[16]; d >= 'A' && d <= 'Z' {
		century = 2000
	}
	yy, _ := strconv.Atoi(curp[4:6])
	mm, _ := strconv.Atoi(curp[6:8])
	dd, _ := strconv.Atoi(curp[8:10])
	born := time.Date(century+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	if born.Year() != century+yy || int(born.Month()) != mm || born.Day() != dd {
		return fmt.Errorf("%w: %s", ErrCURPFecha, curp[4:10])
	}
	return nil
}

// CURPCheckDigit calcula el dígito verificador (módulo 10) de los primeros 17 caracteres.
func CURPCheckDigit(curp string) (byte, error) {
	r := []rune(curp)
	if len(r) < 17 {
		return 0, ErrCURPFormato
	}
	sum := 0
	for i, c := range r[:17] {
		v := indexRune(curpDigitAlphabet, c)
		if v < 0 {
			return 0, ErrCURPFormato
		}
		sum += v * (18 - i)
	}
	return byte('0' + (10-sum%10)%10), nil
}

// VerifyCURPCheckDigit valida formato y dígito verificador.
func VerifyCURPCheckDigit(curp string) error {
	if err := ValidateCURP(curp); err != nil {
		return err
	}
	expected, err := CURPCheckDigit(curp)
	if err != nil {
		return err
	}
	if curp[17] != expected {
		return fmt.Errorf("%w: esperado %c, recibido %c", ErrCURPDigito, expected, curp[17])
	}
	return nil
}
