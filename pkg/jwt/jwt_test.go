package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/jwt"
)

const secret = "jwt-test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "ana@empresa.mx", "e-1", "cliente", "portal-pld", 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "ana@empresa.mx", claims.Email)
	assert.Equal(t, "e-1", claims.EmpresaID)
	assert.Equal(t, "cliente", claims.Rol)
	assert.Equal(t, "portal-pld", claims.Issuer)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "a@b.mx", "", "admin", "portal-pld", -1)
	require.NoError(t, err)
	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "a@b.mx", "", "admin", "portal-pld", 60)
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "a@b.mx", "", "admin", "portal-pld", 60)
	assert.Error(t, err)
	_, err = pkgjwt.Parse("", "x.y.z")
	assert.Error(t, err)
}
