// Package pld clasifica el riesgo de los clientes para efectos de prevención de lavado de dinero.
package pld

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
)

// Classifier asigna nivel_riesgo a partir del tipo de cliente, la nacionalidad y el monto
// mensual estimado.
type Classifier struct {
	umbral decimal.Decimal
}

// NewClassifier construye el clasificador con el umbral de monto en texto (ej. "500000.00").
func NewClassifier(umbral string) (*Classifier, error) {
	d, err := decimal.NewFromString(umbral)
	if err != nil {
		return nil, fmt.Errorf("pld: umbral de monto inválido %q: %w", umbral, err)
	}
	if !d.IsPositive() {
		return nil, fmt.Errorf("pld: el umbral de monto debe ser positivo")
	}
	return &Classifier{umbral: d}, nil
}

// Umbral devuelve el monto a partir del cual el cliente es de riesgo alto.
func (c *Classifier) Umbral() decimal.Decimal { return c.umbral }

// Classify reglas:
//   - alto: nacionalidad extranjera, fideicomiso o monto >= umbral
//   - medio: persona moral o monto >= la mitad del umbral
//   - bajo: el resto
func (c *Classifier) Classify(tipoCliente, nacionalidad string, monto decimal.NullDecimal) string {
	tipoCliente = strings.TrimSpace(tipoCliente)
	if !validation.IsMexican(nacionalidad) || tipoCliente == entity.ClienteFideicomiso {
		return entity.RiesgoAlto
	}
	if monto.Valid && monto.Decimal.GreaterThanOrEqual(c.umbral) {
		return entity.RiesgoAlto
	}
	if tipoCliente == entity.ClientePersonaMoral {
		return entity.RiesgoMedio
	}
	if monto.Valid && monto.Decimal.GreaterThanOrEqual(c.umbral.Div(decimal.NewFromInt(2))) {
		return entity.RiesgoMedio
	}
	return entity.RiesgoBajo
}
