package clients

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/pld"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/mxid"
)

// ClientUseCase casos de uso de clientes.
type ClientUseCase struct {
	tx          TxRunner
	clientRepo  repository.ClientRepository
	companyRepo repository.CompanyRepository
	val         *validation.Validator
	risk        *pld.Classifier
	pdf         ExpedientePDFGenerator
	xml         ExpedienteXMLBuilder
	audit       *audit.Publisher
	now         func() time.Time
}

// NewClientUseCase construye el caso de uso inyectando sus dependencias.
func NewClientUseCase(
	tx TxRunner,
	clientRepo repository.ClientRepository,
	companyRepo repository.CompanyRepository,
	val *validation.Validator,
	risk *pld.Classifier,
	pdf ExpedientePDFGenerator,
	xml ExpedienteXMLBuilder,
	pub *audit.Publisher,
) *ClientUseCase {
	return &ClientUseCase{
		tx:          tx,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
		val:         val,
		risk:        risk,
		pdf:         pdf,
		xml:         xml,
		audit:       pub,
		now:         time.Now,
	}
}

// Register valida el formulario y, en una sola transacción, verifica que la empresa exista
// y esté activa e inserta el cliente.
//
// Retorna:
//   - *validation.Error          si algún campo es inválido (400).
//   - domain.ErrNotFound         si la empresa no existe.
//   - domain.ErrInactiveCompany  si la empresa no está activa.
//   - domain.ErrDuplicate        si ya hay un cliente con el mismo RFC en la empresa (salvo RFC genéricos).
func (uc *ClientUseCase) Register(ctx context.Context, scope Scope, in dto.RegisterClientRequest) (*dto.ClientResponse, error) {
	empresaID, empErr := uc.targetEmpresa(scope, in.EmpresaID)
	var verr *validation.Error
	if empErr != nil && !errors.As(empErr, &verr) {
		return nil, empErr
	}
	ident, err := uc.val.ValidateClient(clientInput(in))
	if err != nil {
		var formErr *validation.Error
		if !errors.As(err, &formErr) {
			return nil, err
		}
		if verr != nil {
			detalles := make([]validation.FieldError, 0, len(verr.Detalles)+len(formErr.Detalles))
			detalles = append(detalles, verr.Detalles...)
			formErr.Detalles = append(detalles, formErr.Detalles...)
		}
		return nil, formErr
	}
	if verr != nil {
		return nil, verr
	}

	monto := decimal.NullDecimal{}
	if in.MontoEstimado != nil {
		monto = decimal.NewNullDecimal(in.MontoEstimado.Round(2))
	}
	tipo := strings.TrimSpace(in.TipoCliente)
	nacionalidad := strings.TrimSpace(in.Nacionalidad)
	now := uc.now()
	client := &entity.Client{
		ID:             uuid.New().String(),
		EmpresaID:      empresaID,
		NombreEntidad:  strings.TrimSpace(in.NombreEntidad),
		TipoCliente:    tipo,
		Nacionalidad:   nacionalidad,
		RFC:            ident.RFC,
		Estado:         entity.ClienteActivo,
		NivelRiesgo:    uc.risk.Classify(tipo, nacionalidad, monto),
		MontoEstimado:  monto,
		DatosCompletos: in.DatosCompletos,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunRegistration(ctx, func(companies repository.CompanyRepository, clientRepo repository.ClientRepository) error {
		company, err := companies.GetByIDForShare(ctx, empresaID)
		if err != nil {
			return err
		}
		if company == nil {
			return fmt.Errorf("empresa %s: %w", empresaID, domain.ErrNotFound)
		}
		if !company.IsActive() {
			return fmt.Errorf("empresa %s en estado %s: %w", empresaID, company.Estado, domain.ErrInactiveCompany)
		}
		// Los RFC genéricos del SAT los comparten muchos clientes.
		if !mxid.IsGenericRFC(client.RFC) {
			existing, err := clientRepo.GetByEmpresaAndRFC(ctx, empresaID, client.RFC)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("cliente con RFC %s: %w", client.RFC, domain.ErrDuplicate)
			}
		}
		return clientRepo.Create(ctx, client)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: scope.UserID,
		EmpresaID: empresaID,
		Accion:    entity.AccionClienteRegistrado,
		Entidad:   "cliente",
		EntidadID: client.ID,
		Detalle:   map[string]any{"tipo_cliente": client.TipoCliente, "nivel_riesgo": client.NivelRiesgo},
	})
	return ToClientResponse(client), nil
}

// Validate corre la misma validación de Register sin persistir.
func (uc *ClientUseCase) Validate(in dto.RegisterClientRequest) (*dto.ValidateClientResponse, error) {
	_, err := uc.val.ValidateClient(clientInput(in))
	if err == nil {
		return &dto.ValidateClientResponse{Valido: true, Detalles: []validation.FieldError{}}, nil
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		return &dto.ValidateClientResponse{Valido: false, Detalles: verr.Detalles}, nil
	}
	return nil, err
}

// List devuelve los clientes visibles para el solicitante. Un usuario cliente solo ve
// los de su empresa; admin y consultor pueden filtrar por empresa_id o ver todos.
func (uc *ClientUseCase) List(ctx context.Context, scope Scope, req dto.ClientListRequest) (*dto.ClientListResponse, error) {
	req.DefaultPage()
	empresaID := strings.TrimSpace(req.EmpresaID)
	if scope.Rol == entity.RoleCliente {
		if scope.EmpresaID == "" {
			return nil, domain.ErrForbidden
		}
		empresaID = scope.EmpresaID
	} else if empresaID != "" {
		if _, err := uuid.Parse(empresaID); err != nil {
			return nil, validation.NewError("empresa_id", "no es un UUID válido")
		}
	}
	if req.TipoCliente != "" && !entity.ValidClientType(req.TipoCliente) {
		return nil, validation.NewError("tipo_cliente", "debe ser uno de: persona_fisica persona_moral fideicomiso")
	}
	list, err := uc.clientRepo.List(ctx, repository.ClientFilter{
		EmpresaID:   empresaID,
		TipoCliente: req.TipoCliente,
		Limit:       req.Limit,
		Offset:      req.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *ToClientResponse(c))
	}
	return &dto.ClientListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: req.Limit, Offset: req.Offset},
	}, nil
}

// Get devuelve un cliente visible para el solicitante; domain.ErrNotFound si no existe o no es visible.
func (uc *ClientUseCase) Get(ctx context.Context, scope Scope, id string) (*dto.ClientResponse, error) {
	client, err := uc.visibleClient(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return ToClientResponse(client), nil
}

// ExportPDF genera el expediente en PDF. Devuelve bytes y nombre de archivo.
func (uc *ClientUseCase) ExportPDF(ctx context.Context, scope Scope, id string) ([]byte, string, error) {
	exp, err := uc.expediente(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateExpedientePDF(ctx, *exp)
	if err != nil {
		return nil, "", fmt.Errorf("expediente pdf: %w", err)
	}
	return b, expedienteFilename(exp.Cliente, "pdf"), nil
}

// ExportXML genera el expediente en XML canónico y su digest SHA-256.
func (uc *ClientUseCase) ExportXML(ctx context.Context, scope Scope, id string) ([]byte, string, string, error) {
	exp, err := uc.expediente(ctx, scope, id)
	if err != nil {
		return nil, "", "", err
	}
	b, digest, err := uc.xml.BuildExpedienteXML(ctx, *exp)
	if err != nil {
		return nil, "", "", fmt.Errorf("expediente xml: %w", err)
	}
	return b, digest, expedienteFilename(exp.Cliente, "xml"), nil
}

func (uc *ClientUseCase) expediente(ctx context.Context, scope Scope, id string) (*Expediente, error) {
	client, err := uc.visibleClient(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, client.EmpresaID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &Expediente{Empresa: company, Cliente: client, GeneradoEn: uc.now(), GeneradoPor: scope.UserID}, nil
}

func (uc *ClientUseCase) visibleClient(ctx context.Context, scope Scope, id string) (*entity.Client, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if scope.Rol == entity.RoleCliente && client.EmpresaID != scope.EmpresaID {
		return nil, domain.ErrNotFound
	}
	return client, nil
}

// targetEmpresa decide en qué empresa se registra: la del token para usuarios cliente,
// la enviada en el cuerpo para admin y consultor.
func (uc *ClientUseCase) targetEmpresa(scope Scope, requested string) (string, error) {
	requested = strings.TrimSpace(requested)
	if scope.Rol == entity.RoleCliente {
		if scope.EmpresaID == "" {
			return "", domain.ErrForbidden
		}
		if requested != "" && requested != scope.EmpresaID {
			return "", domain.ErrForbidden
		}
		return scope.EmpresaID, nil
	}
	if requested == "" {
		return "", validation.NewError("empresa_id", "es obligatorio")
	}
	if _, err := uuid.Parse(requested); err != nil {
		return "", validation.NewError("empresa_id", "no es un UUID válido")
	}
	return requested, nil
}

func clientInput(in dto.RegisterClientRequest) validation.ClientInput {
	return validation.ClientInput{
		TipoCliente:    in.TipoCliente,
		NombreEntidad:  in.NombreEntidad,
		Nacionalidad:   in.Nacionalidad,
		MontoEstimado:  in.MontoEstimado,
		DatosCompletos: in.DatosCompletos,
	}
}

func expedienteFilename(c *entity.Client, ext string) string {
	name := c.RFC
	if name == "" {
		name = c.ID
	}
	return "expediente-" + name + "." + ext
}

// ToClientResponse convierte la entidad a DTO.
func ToClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	out := &dto.ClientResponse{
		ID:             c.ID,
		EmpresaID:      c.EmpresaID,
		NombreEntidad:  c.NombreEntidad,
		TipoCliente:    c.TipoCliente,
		Nacionalidad:   c.Nacionalidad,
		RFC:            c.RFC,
		Estado:         c.Estado,
		NivelRiesgo:    c.NivelRiesgo,
		DatosCompletos: c.DatosCompletos,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.MontoEstimado.Valid {
		m := c.MontoEstimado.Decimal
		out.MontoEstimado = &m
	}
	return out
}
