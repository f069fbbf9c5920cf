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

	apphttp "github.com/jhoicas/Taller-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Taller-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "taller-api-test"
	testExpMin    = 60
)

// buildAuthApp monta una ruta protegida por AuthMiddleware + RequireRole.
func buildAuthApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_RolPermitido(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := getProtected(t, app, bearer(t, testUserID, pkgjwt.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, pkgjwt.RoleAdmin, body["role"])
}

func TestRequireRole_UnoDeVariosRoles(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin, pkgjwt.RoleCashier)
	resp := getProtected(t, app, bearer(t, testUserID, pkgjwt.RoleCashier))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolEnMinusculas(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleSupervisor)
	resp := getProtected(t, app, bearer(t, testUserID, "supervisor"))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_RolNoPermitido_403(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := getProtected(t, app, bearer(t, testUserID, pkgjwt.RoleTechnician))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_401(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := getProtected(t, app, bearer(t, testUserID, ""))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_SinHeader_401(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	resp := getProtected(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestAuthMiddleware_TokenInvalido_401(t *testing.T) {
	app := buildAuthApp(pkgjwt.RoleAdmin)
	for _, h := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := getProtected(t, app, h)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, h)
	}
}

func TestAuthMiddleware_OtroSecreto_401(t *testing.T) {
	tok, err := pkgjwt.Generate("otro-secreto", testUserID, pkgjwt.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := getProtected(t, buildAuthApp(pkgjwt.RoleAdmin), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, testUserID, pkgjwt.RoleCashier))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, pkgjwt.RoleCashier, body["role"])
}
