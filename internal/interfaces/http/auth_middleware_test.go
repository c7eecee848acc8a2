package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/docgen-api/internal/application/ports"
	"github.com/jhoicas/docgen-api/internal/domain"
	"github.com/jhoicas/docgen-api/internal/infrastructure/authprovider"
	apphttp "github.com/jhoicas/docgen-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/docgen-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testSubject   = "crm-backend"
	testIssuer    = "docgen-test"
	testExpMin    = 60
)

// buildAuthApp construye una aplicación Fiber mínima con AuthMiddleware y un
// handler dummy que devuelve el sujeto autenticado.
func buildAuthApp(verifier ports.TokenVerifier) *fiber.App {
	app := fiber.New()
	app.Post("/protected", apphttp.AuthMiddleware(verifier), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "subject": apphttp.GetSubject(c)})
	})
	return app
}

func bearer(t *testing.T, secret string, expMin int) string {
	t.Helper()
	tok, err := pkgjwt.Generate(secret, testSubject, "", testIssuer, expMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doAuthRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// failingVerifier simula un proveedor caído o que rechaza todo.
type failingVerifier struct{}

func (failingVerifier) Verify(context.Context, string) (*ports.Principal, error) {
	return nil, domain.ErrUnauthorized
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildAuthApp(authprovider.NewJWTVerifier(testJWTSecret, testIssuer))
	resp := doAuthRequest(t, app, bearer(t, testJWTSecret, testExpMin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, testSubject, body["subject"])
}

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildAuthApp(authprovider.NewJWTVerifier(testJWTSecret, testIssuer))
	resp := doAuthRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
	assert.Contains(t, string(body), `"error"`)
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	jwtApp := buildAuthApp(authprovider.NewJWTVerifier(testJWTSecret, testIssuer))
	tests := map[string]struct {
		app    *fiber.App
		header string
		code   string
	}{
		"sin esquema bearer": {jwtApp, "Token abc", "INVALID_TOKEN"},
		"bearer vacío":       {jwtApp, "Bearer   ", "MISSING_TOKEN"},
		"token malformado":   {jwtApp, "Bearer token.invalido.aqui", "INVALID_TOKEN"},
		"secreto distinto":   {jwtApp, bearer(t, "otro-secret-completamente-distinto", testExpMin), "INVALID_TOKEN"},
		"token expirado":     {jwtApp, bearer(t, testJWTSecret, -1), "INVALID_TOKEN"},
		"proveedor caído":    {buildAuthApp(failingVerifier{}), "Bearer cualquiera", "INVALID_TOKEN"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			resp := doAuthRequest(t, tt.app, tt.header)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tt.code)
		})
	}
}

func TestAuthMiddleware_BearerSinDistinguirMayusculas(t *testing.T) {
	app := buildAuthApp(authprovider.NewJWTVerifier(testJWTSecret, testIssuer))
	tok, err := pkgjwt.Generate(testJWTSecret, testSubject, "", testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doAuthRequest(t, app, "bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
