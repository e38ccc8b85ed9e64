package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/IsraelRomeroCastellanos/scmvp-sub000/internal/interfaces/http"
	pkgjwt "github.com/IsraelRomeroCastellanos/scmvp-sub000/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testEmpresaID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "portal-pld-test"
	testExpMin    = 60
)

// buildTestApp app mínima con AuthMiddleware + RequireRole y un handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "rol": apphttp.GetRole(c)})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "u@test.mx", testEmpresaID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	resp := doRequest(t, buildTestApp("admin"), "Bearer "+tokenForRole(t, "admin"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["rol"])
}

func TestRequireRole_VariosRolesPermitidos(t *testing.T) {
	app := buildTestApp("admin", "consultor", "cliente")
	for _, rol := range []string{"admin", "consultor", "cliente"} {
		resp := doRequest(t, app, "Bearer "+tokenForRole(t, rol))
		assert.Equal(t, http.StatusOK, resp.StatusCode, rol)
		resp.Body.Close()
	}
}

func TestRequireRole_RolSinPermiso_Retorna403(t *testing.T) {
	resp := doRequest(t, buildTestApp("admin"), "Bearer "+tokenForRole(t, "consultor"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), apphttp.CodeForbidden)
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp("admin"), "Bearer "+tokenForRole(t, ""))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), apphttp.CodeMissingRole)
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	resp := doRequest(t, buildTestApp("admin"), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), apphttp.CodeMissingToken)
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	cases := map[string]string{
		"firma inválida":   "Bearer token.invalido.aqui",
		"sin prefijo":      tokenForRole(t, "admin"),
		"esquema distinto": "Basic dXNlcjpwYXNz",
	}
	app := buildTestApp("admin")
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, header)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Contains(t, bodyString(t, resp), apphttp.CodeInvalidToken)
		})
	}
}

func TestAuthMiddleware_OtroSecreto_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, "u@test.mx", testEmpresaID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	resp := doRequest(t, buildTestApp("admin"), "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthMiddleware_TokenEnCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: tokenForRole(t, "cliente")})
	resp, err := buildTestApp("cliente").Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuthMiddleware_CargaClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/yo", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"email":      apphttp.GetEmail(c),
			"empresa_id": apphttp.GetEmpresaID(c),
			"rol":        apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/yo", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, "consultor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "u@test.mx", body["email"])
	assert.Equal(t, testEmpresaID, body["empresa_id"])
	assert.Equal(t, "consultor", body["rol"])
}
