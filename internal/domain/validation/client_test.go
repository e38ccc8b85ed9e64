package validation_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
)

const domicilioMX = `{"calle":"Reforma","numero_exterior":"222","colonia":"Juárez","municipio":"Cuauhtémoc","entidad_federativa":"CDMX","codigo_postal":"06600"}`

func personaFisica() json.RawMessage {
	return json.RawMessage(`{
		"nombre":"Gloria","apellido_paterno":"Hernández","fecha_nacimiento":"1956-04-27",
		"rfc":"gode-561231-gr8","curp":"HEGG560427MVZRRL04","actividad_economica":"Comercio",
		"contacto":{"email":"gloria@example.com","telefono":"55 1234 5678","domicilio":` + domicilioMX + `}}`)
}

func campos(t *testing.T, err error) []string {
	t.Helper()
	var verr *validation.Error
	require.True(t, errors.As(err, &verr), "se esperaba *validation.Error, fue %v", err)
	out := make([]string, 0, len(verr.Detalles))
	for _, d := range verr.Detalles {
		out = append(out, d.Campo)
	}
	return out
}

func TestValidateClient_PersonaFisicaValida(t *testing.T) {
	v := validation.New(true)
	id, err := v.ValidateClient(validation.ClientInput{
		TipoCliente:    "persona_fisica",
		NombreEntidad:  "Gloria Hernández",
		Nacionalidad:   "Mexicana",
		DatosCompletos: personaFisica(),
	})
	require.NoError(t, err)
	assert.Equal(t, "GODE561231GR8", id.RFC, "el RFC se normaliza")
	assert.Equal(t, "HEGG560427MVZRRL04", id.CURP)
}

func TestValidateClient_CamposGeneralesFaltantes(t *testing.T) {
	v := validation.New(false)
	monto := decimal.NewFromInt(-1)
	_, err := v.ValidateClient(validation.ClientInput{MontoEstimado: &monto})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.ElementsMatch(t,
		[]string{"tipo_cliente", "nombre_entidad", "nacionalidad", "monto_estimado", "datos_completos"},
		campos(t, err))
}

func TestValidateClient_TipoDesconocido(t *testing.T) {
	v := validation.New(false)
	_, err := v.ValidateClient(validation.ClientInput{
		TipoCliente: "sociedad", NombreEntidad: "X", Nacionalidad: "Mexicana",
		DatosCompletos: json.RawMessage(`{}`),
	})
	assert.Equal(t, []string{"tipo_cliente"}, campos(t, err))
}

func TestValidateClient_DatosNoSonObjeto(t *testing.T) {
	v := validation.New(false)
	_, err := v.ValidateClient(validation.ClientInput{
		TipoCliente: "persona_moral", NombreEntidad: "X", Nacionalidad: "Mexicana",
		DatosCompletos: json.RawMessage(`["no"]`),
	})
	assert.Equal(t, []string{"datos_completos"}, campos(t, err))
}

func TestValidateClient_CURPObligatoriaParaMexicanos(t *testing.T) {
	v := validation.New(false)
	datos := json.RawMessage(`{"nombre":"A","apellido_paterno":"B","fecha_nacimiento":"1956-12-31","rfc":"GODE561231GR8","actividad_economica":"Comercio","contacto":{"domicilio":` + domicilioMX + `}}`)

	_, err := v.ValidateClient(validation.ClientInput{
		TipoCliente: "persona_fisica", NombreEntidad: "A B", Nacionalidad: "MÉXICO", DatosCompletos: datos,
	})
	assert.Equal(t, []string{"datos_completos.curp"}, campos(t, err))

	_, err = v.ValidateClient(validation.ClientInput{
		TipoCliente: "persona_fisica", NombreEntidad: "A B", Nacionalidad: "Española", DatosCompletos: datos,
	})
	assert.NoError(t, err, "un extranjero puede omitir la CURP")
}

func TestValidateClient_RutasDeCamposAnidados(t *testing.T) {
	v := validation.New(false)
	datos := json.RawMessage(`{
		"razon_social":"Servicio de Administración","rfc":"GODE561231GR8","fecha_constitucion":"2990-01-01",
		"giro_mercantil":"Gobierno",
		"representante_legal":{"nombre":"Ana","apellido_paterno":"López","rfc":"SAT970701NN3"},
		"contacto":{"email":"no-es-correo","domicilio":{"calle":"x","numero_exterior":"1","colonia":"c","municipio":"m","entidad_federativa":"e","codigo_postal":"123"}}
	}`)
	_, err := v.ValidateClient(validation.ClientInput{
		TipoCliente: "persona_moral", NombreEntidad: "SAT", Nacionalidad: "Mexicana", DatosCompletos: datos,
	})
	assert.ElementsMatch(t, []string{
		"datos_completos.rfc",
		"datos_completos.fecha_constitucion",
		"datos_completos.representante_legal.rfc",
		"datos_completos.contacto.email",
		"datos_completos.contacto.domicilio.codigo_postal",
	}, campos(t, err))
}

func TestValidateClient_DomicilioExtranjeroNoExigeCPMexicano(t *testing.T) {
	v := validation.New(false)
	datos := json.RawMessage(`{
		"numero_fideicomiso":"F/1234","denominacion_fiduciario":"Banco Fiduciario","rfc_fiduciario":"SAT970701NN3",
		"fecha_constitucion":"2001-05-10",
		"representante_legal":{"nombre":"Ana","apellido_paterno":"López","rfc":"GODE561231GR8"},
		"contacto":{"domicilio":{"calle":"Gran Vía","numero_exterior":"1","colonia":"Centro","municipio":"Madrid","entidad_federativa":"Madrid","codigo_postal":"28013","pais":"España"}}
	}`)
	id, err := v.ValidateClient(validation.ClientInput{
		TipoCliente: "fideicomiso", NombreEntidad: "Fideicomiso 1234", Nacionalidad: "Mexicana", DatosCompletos: datos,
	})
	require.NoError(t, err)
	assert.Equal(t, "SAT970701NN3", id.RFC, "el RFC del fideicomiso es el del fiduciario")
}

func TestValidateClient_ModoEstrictoRevisaDigito(t *testing.T) {
	// homoclave alterada: formato válido, dígito incorrecto
	alterado := json.RawMessage(`{"nombre":"A","apellido_paterno":"B","fecha_nacimiento":"1956-12-31","rfc":"GODE561231GR9","curp":"HEGG560427MVZRRL04","actividad_economica":"Comercio","contacto":{"domicilio":` + domicilioMX + `}}`)
	in := validation.ClientInput{TipoCliente: "persona_fisica", NombreEntidad: "A B", Nacionalidad: "mexicana", DatosCompletos: alterado}

	_, err := validation.New(false).ValidateClient(in)
	assert.NoError(t, err)

	_, err = validation.New(true).ValidateClient(in)
	assert.Equal(t, []string{"datos_completos.rfc"}, campos(t, err))
}

func TestValidator_RFCNormaliza(t *testing.T) {
	v := validation.New(true)
	_, err := v.RFC(" sat-970701-nn3 ")
	assert.NoError(t, err)
	_, err = v.RFC("SAT970701NN4")
	assert.Error(t, err)
}

func TestIsMexican(t *testing.T) {
	for _, s := range []string{"Mexicana", "MEXICANO", "México", " mx "} {
		assert.True(t, validation.IsMexican(s), s)
	}
	assert.False(t, validation.IsMexican("Guatemalteca"))
}
