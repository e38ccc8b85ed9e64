// Package expediente genera la representación XML del expediente de un cliente.
// El documento se entrega en forma canónica (C14N) junto con su digest SHA-256, de modo que
// quien lo reciba pueda verificar que no cambió.
package expediente

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"regexp"
	"sort"
	"time"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
)

// Namespace del documento de expediente.
const Namespace = "urn:portal-pld:expediente:1.0"

var _ clients.ExpedienteXMLBuilder = (*XMLBuilder)(nil)

var xmlNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// XMLBuilder implementa clients.ExpedienteXMLBuilder con etree + c14n.
type XMLBuilder struct{}

// NewXMLBuilder construye el generador.
func NewXMLBuilder() *XMLBuilder { return &XMLBuilder{} }

// BuildExpedienteXML arma el documento, lo canonicaliza y calcula el digest (hex).
func (b *XMLBuilder) BuildExpedienteXML(_ context.Context, exp clients.Expediente) ([]byte, string, error) {
	// Sin declaración XML: la forma canónica no la incluye.
	doc := etree.NewDocument()

	root := doc.CreateElement("pld:Expediente")
	root.CreateAttr("xmlns:pld", Namespace)
	root.CreateAttr("version", "1.0")
	root.CreateAttr("generadoEn", exp.GeneradoEn.UTC().Format(time.RFC3339))
	if exp.GeneradoPor != "" {
		root.CreateAttr("generadoPor", exp.GeneradoPor)
	}

	emp := root.CreateElement("pld:Empresa")
	emp.CreateAttr("id", exp.Empresa.ID)
	emp.CreateAttr("rfc", exp.Empresa.RFC)
	emp.CreateAttr("estado", exp.Empresa.Estado)
	emp.CreateElement("pld:NombreLegal").SetText(exp.Empresa.NombreLegal)

	c := exp.Cliente
	cli := root.CreateElement("pld:Cliente")
	cli.CreateAttr("id", c.ID)
	cli.CreateAttr("tipo", c.TipoCliente)
	cli.CreateAttr("rfc", c.RFC)
	cli.CreateAttr("estado", c.Estado)
	cli.CreateAttr("nivelRiesgo", c.NivelRiesgo)
	cli.CreateElement("pld:NombreEntidad").SetText(c.NombreEntidad)
	cli.CreateElement("pld:Nacionalidad").SetText(c.Nacionalidad)
	if c.MontoEstimado.Valid {
		cli.CreateElement("pld:MontoEstimado").SetText(c.MontoEstimado.Decimal.StringFixed(2))
	}
	cli.CreateElement("pld:FechaRegistro").SetText(c.CreatedAt.UTC().Format(time.RFC3339))

	datos := cli.CreateElement("pld:DatosCompletos")
	if len(c.DatosCompletos) > 0 {
		var v any
		dec := json.NewDecoder(bytes.NewReader(c.DatosCompletos))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, "", fmt.Errorf("expediente: datos_completos no es JSON: %w", err)
		}
		appendValue(datos, v)
	}

	raw, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("expediente: serializar XML: %w", err)
	}
	canonical, err := canonicalize(raw)
	if err != nil {
		return nil, "", fmt.Errorf("expediente: canonicalizar XML: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return canonical, hex.EncodeToString(sum[:]), nil
}

// appendValue convierte un valor JSON en elementos hijos de parent. Las llaves se ordenan.
func appendValue(parent *etree.Element, v any) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendValue(childFor(parent, k), t[k])
		}
	case []any:
		for _, item := range t {
			appendValue(parent.CreateElement("pld:elemento"), item)
		}
	case nil:
		parent.CreateAttr("nulo", "true")
	case json.Number:
		parent.SetText(t.String())
	case bool:
		if t {
			parent.SetText("true")
		} else {
			parent.SetText("false")
		}
	case string:
		parent.SetText(t)
	default:
		parent.SetText(fmt.Sprint(t))
	}
}

func childFor(parent *etree.Element, key string) *etree.Element {
	if xmlNameRe.MatchString(key) {
		return parent.CreateElement("pld:" + key)
	}
	el := parent.CreateElement("pld:campo")
	el.CreateAttr("nombre", key)
	return el
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}
