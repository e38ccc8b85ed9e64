package clients

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/mxid"
)

const (
	// MaxBulkRows filas de datos aceptadas por carga.
	MaxBulkRows = 5000
	// maxBulkErrors errores de fila incluidos en la respuesta; el conteo sigue siendo exacto.
	maxBulkErrors = 100
)

var requiredBulkColumns = []string{"nombre_entidad", "tipo_cliente", "rfc"}

// BulkUseCase cuenta las filas bien formadas de un CSV de clientes. No persiste nada.
type BulkUseCase struct {
	val *validation.Validator
}

// NewBulkUseCase construye el caso de uso de carga masiva.
func NewBulkUseCase(val *validation.Validator) *BulkUseCase {
	return &BulkUseCase{val: val}
}

// Count analiza el contenido y devuelve cuántas filas son válidas e inválidas, con el motivo
// de cada rechazo. Acepta UTF-8 (con o sin BOM) y Windows-1252, separado por coma o punto y coma.
func (uc *BulkUseCase) Count(raw []byte) (*dto.BulkUploadResponse, error) {
	content, err := decodeUpload(raw)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, validation.NewError("contenido", "es obligatorio")
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = detectDelimiter(content)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, validation.NewError("contenido", "no se pudo leer el encabezado CSV")
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[headerKey(h)] = i
	}
	var missing []string
	for _, c := range requiredBulkColumns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, validation.NewError("contenido", "faltan columnas: "+strings.Join(missing, ", "))
	}

	out := &dto.BulkUploadResponse{Errores: []dto.BulkRowError{}}
	seen := make(map[string]int)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if out.TotalFilas >= MaxBulkRows {
			return nil, validation.NewError("contenido", fmt.Sprintf("la carga excede el máximo de %d filas", MaxBulkRows))
		}
		out.TotalFilas++
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, validation.NewError("contenido", "no se pudo leer el CSV")
			}
			uc.reject(out, perr.StartLine, "fila CSV mal formada")
			continue
		}
		line, _ := r.FieldPos(0)
		if reason := uc.checkRow(rec, len(header), cols); reason != "" {
			uc.reject(out, line, reason)
			continue
		}
		rfc := mxid.Normalize(rec[cols["rfc"]])
		if !mxid.IsGenericRFC(rfc) {
			if prev, dup := seen[rfc]; dup {
				uc.reject(out, line, fmt.Sprintf("RFC repetido (fila %d)", prev))
				continue
			}
			seen[rfc] = line
		}
		out.FilasValidas++
	}
	out.Message = fmt.Sprintf("Carga procesada: %d de %d filas válidas", out.FilasValidas, out.TotalFilas)
	return out, nil
}

func (uc *BulkUseCase) reject(out *dto.BulkUploadResponse, line int, reason string) {
	out.FilasInvalidas++
	if len(out.Errores) < maxBulkErrors {
		out.Errores = append(out.Errores, dto.BulkRowError{Fila: line, Error: reason})
	}
}

func (uc *BulkUseCase) checkRow(rec []string, want int, cols map[string]int) string {
	if len(rec) != want {
		return fmt.Sprintf("se esperaban %d columnas, hay %d", want, len(rec))
	}
	tipo := strings.TrimSpace(rec[cols["tipo_cliente"]])
	if !entity.ValidClientType(tipo) {
		return "tipo_cliente desconocido: " + tipo
	}
	if strings.TrimSpace(rec[cols["nombre_entidad"]]) == "" {
		return "nombre_entidad vacío"
	}
	got, err := uc.val.RFC(rec[cols["rfc"]])
	if err != nil {
		return "RFC inválido"
	}
	wantTipo := mxid.PersonaMoral
	if tipo == entity.ClientePersonaFisica {
		wantTipo = mxid.PersonaFisica
	}
	if got != wantTipo {
		return "el RFC no corresponde a " + tipo
	}
	return ""
}

// decodeUpload quita el BOM y transcodifica Windows-1252 (exportaciones de Excel) a UTF-8.
func decodeUpload(raw []byte) (string, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	out, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), raw)
	if err != nil {
		return "", validation.NewError("contenido", "codificación de texto no soportada")
	}
	return string(out), nil
}

// detectDelimiter elige ';' cuando la primera línea tiene más puntos y coma que comas.
func detectDelimiter(content string) rune {
	first := content
	if i := strings.IndexAny(content, "\r\n"); i >= 0 {
		first = content[:i]
	}
	if strings.Count(first, ";") > strings.Count(first, ",") {
		return ';'
	}
	return ','
}

func headerKey(h string) string {
	return strings.ReplaceAll(validation.Fold(h), " ", "_")
}
