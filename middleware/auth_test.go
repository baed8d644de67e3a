package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jgecalumni/room-booking-app/middleware"
	"github.com/jgecalumni/room-booking-app/models"
	"github.com/jgecalumni/room-booking-app/utils"
)

const (
	testSecret = "test_jwt_secret"
	adminEmail = "admin@example.com"
)

func testApp(handlerRan *bool) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.Protected(testSecret), func(c *fiber.Ctx) error {
		identity, _ := middleware.CurrentIdentity(c)
		return utils.OK(c, fiber.StatusOK, "ok", fiber.Map{"email": identity.Email})
	})
	app.Get("/admin", middleware.Protected(testSecret), middleware.RequireAdmin(adminEmail), func(c *fiber.Ctx) error {
		*handlerRan = true
		return utils.OK(c, fiber.StatusOK, "ok", nil)
	})
	return app
}

func token(t *testing.T, email string, role models.UserRole) string {
	t.Helper()
	tok, err := utils.GenerateToken(&models.User{
		ID:    1,
		Name:  "Test User",
		Email: email,
		Role:  role,
	}, testSecret)
	require.NoError(t, err)
	return tok
}

func decodeEnvelope(t *testing.T, resp *http.Response) utils.Response {
	t.Helper()
	var envelope utils.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope
}

func TestProtected_MissingToken(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil))
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	envelope := decodeEnvelope(t, resp)
	assert.True(t, envelope.Error)
	assert.Equal(t, "No token provided", envelope.Message)
}

func TestProtected_InvalidToken(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtected_BearerHeader(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user@example.com", models.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtected_Cookie(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token(t, "user@example.com", models.RoleUser)})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_RegularUserForbidden(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "user@example.com", models.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, ran, "admin handler must not execute for a regular user")
	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Access denied", envelope.Message)
}

func TestRequireAdmin_AdminRolePasses(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, "someone@example.com", models.RoleAdmin))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ran)
}

func TestRequireAdmin_AdminEmailPasses(t *testing.T) {
	var ran bool
	app := testApp(&ran)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, adminEmail, models.RoleUser))
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, ran)
}
