package clients_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/application/clients"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain"
	"github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/domain/validation"
)

func newBulk() *clients.BulkUseCase { return clients.NewBulkUseCase(validation.New(false)) }

func TestCount_CuentaSinPersistir(t *testing.T) {
	csv := "nombre_entidad,tipo_cliente,rfc,nacionalidad\n" +
		"Gloria Hernández,persona_fisica,HEGG560427AB1,Mexicana\n" +
		"SAT,persona_moral,SAT970701NN3,Mexicana\n" +
		"\n" +
		"Fideicomiso 1,fideicomiso,IMS421231I45,Mexicana\n"
	out, err := newBulk().Count([]byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalFilas, "las líneas vacías no cuentan")
	assert.Equal(t, 3, out.FilasValidas)
	assert.Zero(t, out.FilasInvalidas)
	assert.Empty(t, out.Errores)
	assert.Contains(t, out.Message, "3 de 3")
}

func TestCount_ExplicaFilasInvalidas(t *testing.T) {
	csv := "nombre_entidad,tipo_cliente,rfc\n" +
		"Uno,persona_fisica,HEGG560427AB1\n" +
		"Dos,sociedad,HEGG560427AB1\n" +
		",persona_fisica,GODE561231GR8\n" +
		"Cuatro,persona_fisica,SAT970701NN3\n" +
		"Cinco,persona_moral\n" +
		"Seis,persona_fisica,hegg-560427-ab1\n"
	out, err := newBulk().Count([]byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 6, out.TotalFilas)
	assert.Equal(t, 1, out.FilasValidas)
	assert.Equal(t, 5, out.FilasInvalidas)
	require.Len(t, out.Errores, 5)
	assert.Equal(t, 3, out.Errores[0].Fila)
	assert.Contains(t, out.Errores[0].Error, "tipo_cliente")
	assert.Equal(t, "nombre_entidad vacío", out.Errores[1].Error)
	assert.Contains(t, out.Errores[2].Error, "no corresponde")
	assert.Contains(t, out.Errores[3].Error, "columnas")
	assert.Equal(t, "RFC repetido (fila 2)", out.Errores[4].Error)
}

func TestCount_RFCGenericoPuedeRepetirse(t *testing.T) {
	csv := "nombre_entidad,tipo_cliente,rfc\n" +
		"John Smith,persona_fisica,XEXX010101000\n" +
		"Jane Doe,persona_fisica,XEXX010101000\n" +
		"Público en general,persona_fisica,XAXX010101000\n" +
		"Otro público,persona_fisica,xaxx010101000\n"
	out, err := newBulk().Count([]byte(csv))
	require.NoError(t, err)
	assert.Equal(t, 4, out.FilasValidas)
	assert.Empty(t, out.Errores)
}

func TestCount_PuntoYComaYWindows1252(t *testing.T) {
	// "Raúl Muñoz" en Windows-1252: ú = 0xFA, ñ = 0xF1; encabezado con acento y BOM ausente.
	raw := []byte("Nombre Entidad;Tipo Cliente;RFC\nRa\xfal Mu\xf1oz;persona_fisica;MUMR800101AB1\n")
	out, err := newBulk().Count(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TotalFilas)
	assert.Equal(t, 1, out.FilasValidas)
}

func TestCount_BOMUTF8(t *testing.T) {
	raw := append([]byte("\xef\xbb\xbf"), []byte("nombre_entidad,tipo_cliente,rfc\nSAT,persona_moral,SAT970701NN3\n")...)
	out, err := newBulk().Count(raw)
	require.NoError(t, err)
	assert.Equal(t, 1, out.FilasValidas)
}

func TestCount_ContenidoInvalido(t *testing.T) {
	_, err := newBulk().Count([]byte("   "))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newBulk().Count([]byte("nombre,tipo\nA,B\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, "faltan columnas: nombre_entidad, tipo_cliente, rfc")
}
