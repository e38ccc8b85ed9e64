package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/IsraelRomeroCastellanos/scmvp-sub000/docs"
)

func TestSwaggerRegistrado(t *testing.T) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var openapi struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &openapi))
	assert.Equal(t, "2.0", openapi.Swagger)
	for _, p := range []string{"/api/login", "/api/cliente/registrar-cliente", "/api/carga-masiva", "/api/health"} {
		assert.Contains(t, openapi.Paths, p)
	}
	assert.Contains(t, openapi.Paths["/api/admin/empresas"], "post")
}
