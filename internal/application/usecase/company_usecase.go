package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/repository"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/mxid"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	val   *validation.Validator
	audit *audit.Publisher
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, val *validation.Validator, pub *audit.Publisher) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, val: val, audit: pub}
}

// Create crea una nueva empresa activa. Devuelve domain.ErrDuplicate si el RFC ya existe.
func (uc *CompanyUseCase) Create(ctx context.Context, actorID string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	rfc, err := uc.checkInput(&in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByRFC(ctx, rfc)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		NombreLegal: strings.TrimSpace(in.NombreLegal),
		RFC:         rfc,
		TipoEntidad: in.TipoEntidad,
		Domicilio:   domicilioFromDTO(in.Domicilio),
		Estado:      entity.CompanyActiva,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: actorID,
		EmpresaID: company.ID,
		Accion:    entity.AccionEmpresaCreada,
		Entidad:   "empresa",
		EntidadID: company.ID,
		Detalle:   map[string]any{"rfc": company.RFC},
	})
	return entityToCompanyResponse(company), nil
}

// Update reemplaza los datos de la empresa; el estado se cambia con UpdateStatus.
func (uc *CompanyUseCase) Update(ctx context.Context, actorID, id string, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	rfc, err := uc.checkInput(&in)
	if err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if rfc != company.RFC {
		other, err := uc.repo.GetByRFC(ctx, rfc)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, domain.ErrDuplicate
		}
	}
	company.NombreLegal = strings.TrimSpace(in.NombreLegal)
	company.RFC = rfc
	company.TipoEntidad = in.TipoEntidad
	company.Domicilio = domicilioFromDTO(in.Domicilio)
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, company); err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: actorID,
		EmpresaID: company.ID,
		Accion:    entity.AccionEmpresaEditada,
		Entidad:   "empresa",
		EntidadID: company.ID,
	})
	return entityToCompanyResponse(company), nil
}

// UpdateStatus cambia el estado de la empresa. Una empresa no activa no puede registrar clientes.
func (uc *CompanyUseCase) UpdateStatus(ctx context.Context, actorID, id string, in dto.UpdateCompanyStatusRequest) (*dto.CompanyResponse, error) {
	if err := uc.val.Struct(in, ""); err != nil {
		return nil, err
	}
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	if err := uc.repo.UpdateStatus(ctx, id, in.Estado, now); err != nil {
		return nil, err
	}
	uc.audit.Emit(ctx, audit.Event{
		UsuarioID: actorID,
		EmpresaID: id,
		Accion:    entity.AccionEmpresaEstado,
		Entidad:   "empresa",
		EntidadID: id,
		Detalle:   map[string]any{"anterior": company.Estado, "nuevo": in.Estado},
	})
	company.Estado = in.Estado
	company.UpdatedAt = now
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID; domain.ErrNotFound si no existe.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación y filtro opcional por estado.
func (uc *CompanyUseCase) List(ctx context.Context, estado string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	if estado != "" && !entity.ValidCompanyStatus(estado) {
		return nil, validation.NewError("estado", "debe ser uno de: activo inactivo suspendido")
	}
	list, err := uc.repo.List(ctx, repository.CompanyFilter{Estado: estado, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// checkInput valida campos y que el RFC corresponda a tipo_entidad; devuelve el RFC normalizado.
func (uc *CompanyUseCase) checkInput(in *dto.CreateCompanyRequest) (string, error) {
	verr := &validation.Error{}
	if err := uc.val.Struct(in, ""); err != nil {
		if fe, ok := err.(*validation.Error); ok {
			verr.Detalles = append(verr.Detalles, fe.Detalles...)
		} else {
			return "", err
		}
	}
	rfc := mxid.Normalize(in.RFC)
	if rfc != "" {
		tipo, err := uc.val.RFC(rfc)
		switch {
		case err != nil:
			verr.Add("rfc", "no es un RFC válido")
		case in.TipoEntidad == entity.EntidadPersonaFisica && tipo != mxid.PersonaFisica:
			verr.Add("rfc", "una persona física requiere RFC de 13 caracteres")
		case in.TipoEntidad == entity.EntidadPersonaMoral && tipo != mxid.PersonaMoral:
			verr.Add("rfc", "una persona moral requiere RFC de 12 caracteres")
		}
	}
	if err := verr.OrNil(); err != nil {
		return "", err
	}
	return rfc, nil
}

func domicilioFromDTO(d dto.DomicilioDTO) entity.Domicilio {
	pais := strings.TrimSpace(d.Pais)
	if pais == "" {
		pais = "México"
	}
	return entity.Domicilio{
		Calle:             strings.TrimSpace(d.Calle),
		NumeroExterior:    strings.TrimSpace(d.NumeroExterior),
		NumeroInterior:    strings.TrimSpace(d.NumeroInterior),
		Colonia:           strings.TrimSpace(d.Colonia),
		Municipio:         strings.TrimSpace(d.Municipio),
		EntidadFederativa: strings.TrimSpace(d.EntidadFederativa),
		CodigoPostal:      strings.TrimSpace(d.CodigoPostal),
		Pais:              pais,
	}
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	d := c.Domicilio
	return &dto.CompanyResponse{
		ID:          c.ID,
		NombreLegal: c.NombreLegal,
		RFC:         c.RFC,
		TipoEntidad: c.TipoEntidad,
		Domicilio: dto.DomicilioDTO{
			Calle:             d.Calle,
			NumeroExterior:    d.NumeroExterior,
			NumeroInterior:    d.NumeroInterior,
			Colonia:           d.Colonia,
			Municipio:         d.Municipio,
			EntidadFederativa: d.EntidadFederativa,
			CodigoPostal:      d.CodigoPostal,
			Pais:              d.Pais,
		},
		Estado:    c.Estado,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
