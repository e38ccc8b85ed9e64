// Package clients contiene los casos de uso de clientes PLD: registro transaccional,
// consulta con alcance por rol, validación sin persistir, exportación del expediente
// y conteo de cargas masivas.
package clients

import (
	"context"
	"time"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companies repository.CompanyRepository,
		clients repository.ClientRepository,
	) error) error
}

// Scope identidad del solicitante tomada del token.
type Scope struct {
	UserID    string
	Rol       string
	EmpresaID string
}

// Expediente datos que se exportan de un cliente.
type Expediente struct {
	Empresa     *entity.Company
	Cliente     *entity.Client
	GeneradoEn  time.Time
	GeneradoPor string
}

// ExpedientePDFGenerator genera la representación PDF del expediente.
type ExpedientePDFGenerator interface {
	GenerateExpedientePDF(ctx context.Context, exp Expediente) ([]byte, error)
}

// ExpedienteXMLBuilder genera el XML canónico del expediente y su digest SHA-256 (hex).
type ExpedienteXMLBuilder interface {
	BuildExpedienteXML(ctx context.Context, exp Expediente) (xml []byte, digest string, err error)
}
