package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/audit"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/dto"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/usecase"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/entity"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/logger"
)

func newCompanyUC(repo *memCompanies) *usecase.CompanyUseCase {
	return usecase.NewCompanyUseCase(repo, validation.New(false), audit.NewPublisher(nil, logger.Nop()))
}

func detalleCampos(t *testing.T, err error) []string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "se esperaba error de validación, fue %v", err)
	out := []string{}
	for _, d := range verr.Detalles {
		out = append(out, d.Campo)
	}
	return out
}

func TestCompanyCreate_NormalizaRFCYQuedaActiva(t *testing.T) {
	repo := newMemCompanies()
	out, err := newCompanyUC(repo).Create(context.Background(), "admin1", dto.CreateCompanyRequest{
		NombreLegal: " Servicio de Administración Tributaria ",
		RFC:         "sat-970701-nn3",
		TipoEntidad: entity.EntidadPersonaMoral,
		Domicilio:   dto.DomicilioDTO{CodigoPostal: "06300"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SAT970701NN3", out.RFC)
	assert.Equal(t, entity.CompanyActiva, out.Estado)
	assert.Equal(t, "Servicio de Administración Tributaria", out.NombreLegal)
	assert.Equal(t, "México", out.Domicilio.Pais)
}

func TestCompanyCreate_RFCNoCorrespondeAlTipo(t *testing.T) {
	_, err := newCompanyUC(newMemCompanies()).Create(context.Background(), "admin1", dto.CreateCompanyRequest{
		NombreLegal: "Gloria", RFC: "SAT970701NN3", TipoEntidad: entity.EntidadPersonaFisica,
	})
	assert.Equal(t, []string{"rfc"}, detalleCampos(t, err))
}

func TestCompanyCreate_CamposObligatoriosYCP(t *testing.T) {
	_, err := newCompanyUC(newMemCompanies()).Create(context.Background(), "admin1", dto.CreateCompanyRequest{
		Domicilio: dto.DomicilioDTO{CodigoPostal: "00100"},
	})
	assert.ElementsMatch(t, []string{"nombre_legal", "rfc", "tipo_entidad", "domicilio.codigo_postal"}, detalleCampos(t, err))
}

func TestCompanyCreate_RFCDuplicado(t *testing.T) {
	repo := newMemCompanies(&entity.Company{ID: "e1", RFC: "SAT970701NN3"})
	_, err := newCompanyUC(repo).Create(context.Background(), "admin1", dto.CreateCompanyRequest{
		NombreLegal: "Otra", RFC: "SAT970701NN3", TipoEntidad: entity.EntidadPersonaMoral,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCompanyUpdateStatus(t *testing.T) {
	repo := newMemCompanies(&entity.Company{ID: "e1", RFC: "SAT970701NN3", Estado: entity.CompanyActiva})
	uc := newCompanyUC(repo)

	out, err := uc.UpdateStatus(context.Background(), "admin1", "e1", dto.UpdateCompanyStatusRequest{Estado: entity.CompanySuspendida})
	require.NoError(t, err)
	assert.Equal(t, entity.CompanySuspendida, out.Estado)

	_, err = uc.UpdateStatus(context.Background(), "admin1", "e1", dto.UpdateCompanyStatusRequest{Estado: "cerrada"})
	assert.Equal(t, []string{"estado"}, detalleCampos(t, err))

	_, err = uc.UpdateStatus(context.Background(), "admin1", "nope", dto.UpdateCompanyStatusRequest{Estado: entity.CompanyActiva})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompanyUpdate_RFCDeOtraEmpresa(t *testing.T) {
	repo := newMemCompanies(
		&entity.Company{ID: "e1", RFC: "SAT970701NN3", TipoEntidad: entity.EntidadPersonaMoral},
		&entity.Company{ID: "e2", RFC: "IMS421231I45", TipoEntidad: entity.EntidadPersonaMoral},
	)
	uc := newCompanyUC(repo)
	_, err := uc.Update(context.Background(), "admin1", "e2", dto.CreateCompanyRequest{
		NombreLegal: "IMSS", RFC: "SAT970701NN3", TipoEntidad: entity.EntidadPersonaMoral,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	out, err := uc.Update(context.Background(), "admin1", "e2", dto.CreateCompanyRequest{
		NombreLegal: "IMSS", RFC: "IMS421231I45", TipoEntidad: entity.EntidadPersonaMoral,
	})
	require.NoError(t, err)
	assert.Equal(t, "IMSS", out.NombreLegal)
}

func TestCompanyGetAndList(t *testing.T) {
	repo := newMemCompanies(
		&entity.Company{ID: "e1", Estado: entity.CompanyActiva},
		&entity.Company{ID: "e2", Estado: entity.CompanyInactiva},
	)
	uc := newCompanyUC(repo)

	_, err := uc.GetByID(context.Background(), "zzz")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(context.Background(), entity.CompanyInactiva, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "e2", list.Items[0].ID)
	assert.Equal(t, 20, list.Page.Limit)

	_, err = uc.List(context.Background(), "borrada", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
