// Package pdf genera la representación impresa del expediente PLD de un cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + RFC        │  EXPEDIENTE + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre, tipo, RFC, nacionalidad, estado            │
//	│  PERFIL: nivel de riesgo + monto estimado                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS COMPLETOS: campo | valor                              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR de referencia + leyenda                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ clients.ExpedientePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa clients.ExpedientePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateExpedientePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateExpedientePDF(_ context.Context, exp clients.Expediente) ([]byte, error) {
	if exp.Empresa == nil || exp.Cliente == nil {
		return nil, fmt.Errorf("pdf: expediente incompleto")
	}
	campos, err := flattenDatos(exp.Cliente.DatosCompletos)
	if err != nil {
		return nil, fmt.Errorf("pdf: datos_completos: %w", err)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Expediente PLD "+exp.Cliente.RFC, true).
		WithAuthor(exp.Empresa.NombreLegal, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(exp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clienteRow(exp.Cliente))
	m.AddRows(perfilRow(exp.Cliente))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range datosRows(campos) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(exp) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + RFC (izq) y título + fecha de generación (der).
func headerRow(exp clients.Expediente) core.Row {
	fecha := exp.GeneradoEn.Format("02/01/2006 15:04")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(exp.Empresa.NombreLegal, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("RFC: "+exp.Empresa.RFC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("EXPEDIENTE DE IDENTIFICACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(exp.Cliente.RFC, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func clienteRow(c *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(c.NombreEntidad, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Tipo: %s   |   Nacionalidad: %s   |   Estado: %s   |   Alta: %s",
				tipoLegible(c.TipoCliente),
				nonEmpty(c.Nacionalidad, "—"),
				nonEmpty(c.Estado, "—"),
				c.CreatedAt.Format("02/01/2006"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// perfilRow: nivel de riesgo (resaltado si es alto) y monto estimado.
func perfilRow(c *entity.Client) core.Row {
	riesgoColor := colorPrimary
	if c.NivelRiesgo == entity.RiesgoAlto {
		riesgoColor = colorAlert
	}
	monto := "—"
	if c.MontoEstimado.Valid {
		monto = "$" + formatMoney(c.MontoEstimado.Decimal)
	}
	return row.New(10).Add(
		col.New(6).Add(text.New("Nivel de riesgo: "+strings.ToUpper(nonEmpty(c.NivelRiesgo, "—")), props.Text{
			Style: fontstyle.Bold, Size: 9, Color: riesgoColor, Top: 2,
		})),
		col.New(6).Add(text.New("Monto estimado: "+monto, props.Text{
			Size: 9, Align: align.Right, Top: 2,
		})),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Left,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Campo", 4),
		h("Valor", 8),
	)
}

// datosRows: una fila por hoja de datos_completos; valores largos se parten.
func datosRows(campos []campo) []core.Row {
	if len(campos) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("Sin datos complementarios.", props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
		))}
	}
	result := make([]core.Row, 0, len(campos))
	for _, c := range campos {
		for i, chunk := range splitEvery(nonEmpty(c.Valor, "—"), 70) {
			label := ""
			if i == 0 {
				label = c.Ruta
			}
			result = append(result, row.New(6).Add(
				col.New(4).Add(text.New(label, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
				col.New(8).Add(text.New(chunk, props.Text{Size: 8, Top: 1, Left: 1})),
			))
		}
	}
	return result
}

// footerRows: QR con la referencia del expediente + leyenda.
func footerRows(exp clients.Expediente) []core.Row {
	ref := fmt.Sprintf("expediente:%s:%s:%s", exp.Empresa.ID, exp.Cliente.ID, exp.GeneradoEn.UTC().Format(time.RFC3339))
	return []core.Row{
		row.New(40).Add(
			col.New(3).Add(code.NewQr(ref, props.Rect{Percent: 95, Center: true})),
			col.New(9).Add(
				text.New("Referencia del expediente", props.Text{
					Style: fontstyle.Bold, Size: 8, Top: 4, Left: 3, Color: colorPrimary,
				}),
				text.New(ref, props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray}),
			),
		),
		row.New(8).Add(col.New(12).Add(
			text.New(
				"Documento generado para la integración del expediente de identificación del cliente "+
					"conforme a la normativa de prevención de operaciones con recursos de procedencia ilícita.",
				props.Text{Size: 6.5, Color: colorGray, Top: 2},
			),
		)),
	}
}

// ── datos_completos ───────────────────────────────────────────────────────────

type campo struct {
	Ruta  string
	Valor string
}

// flattenDatos convierte el JSON anidado en pares ruta/valor ordenados por ruta.
func flattenDatos(raw json.RawMessage) ([]campo, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	var out []campo
	walk("", v, &out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Ruta < out[j].Ruta })
	return out, nil
}

func walk(prefix string, v any, out *[]campo) {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			walk(join(prefix, k), child, out)
		}
	case []any:
		for i, child := range t {
			walk(prefix+"["+strconv.Itoa(i)+"]", child, out)
		}
	case nil:
		*out = append(*out, campo{Ruta: prefix})
	case string:
		*out = append(*out, campo{Ruta: prefix, Valor: t})
	case bool:
		v := "No"
		if t {
			v = "Sí"
		}
		*out = append(*out, campo{Ruta: prefix, Valor: v})
	default:
		*out = append(*out, campo{Ruta: prefix, Valor: fmt.Sprint(t)})
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tipoLegible(t string) string {
	switch t {
	case entity.ClientePersonaFisica:
		return "Persona física"
	case entity.ClientePersonaMoral:
		return "Persona moral"
	case entity.ClienteFideicomiso:
		return "Fideicomiso"
	}
	return nonEmpty(t, "—")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con separador de miles "," y dos decimales.
// Ej: 1500000.5 → "1,500,000.50"
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	if d.IsNegative() {
		buf = append(buf, '-')
	}
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + frac
}

// splitEvery divide s en trozos de max n runas.
func splitEvery(s string, n int) []string {
	r := []rune(s)
	var parts []string
	for len(r) > n {
		parts = append(parts, string(r[:n]))
		r = r[n:]
	}
	if len(r) > 0 {
		parts = append(parts, string(r))
	}
	return parts
}
