package middleware

import (
	"EcoSync-Backend/domain"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	gojwt "github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJWT struct {
	tokens map[string]domain.Actor
}

func (f *fakeJWT) GenerateTokenUser(userId string, role string) string { return "" }

func (f *fakeJWT) ValidateTokenUser(token string) (*gojwt.Token, error) { return nil, nil }

func (f *fakeJWT) GetUserIDByToken(token string) (string, string, error) {
	a, ok := f.tokens[token]
	if !ok {
		return "", "", domain.ErrTokenInvalid
	}
	return a.UserID, a.Role, nil
}

func newTestApp() *fiber.App {
	m := NewMiddleware()
	jwtService := &fakeJWT{tokens: map[string]domain.Actor{
		"user-token":  {UserID: "u1", Role: domain.RoleUser},
		"admin-token": {UserID: "a1", Role: domain.RoleAdmin},
	}}

	app := fiber.New()
	app.Get("/me", m.AuthMiddleware(jwtService), func(c *fiber.Ctx) error {
		return c.SendString(Actor(c).UserID)
	})
	app.Get("/admin", m.AuthMiddleware(jwtService), m.AdminMiddleware(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestAuthMiddleware(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/me", ""))
	assert.Equal(t, fiber.StatusUnauthorized, request(t, app, "/me", "bogus"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/me", "user-token"))
}

func TestAdminMiddleware(t *testing.T) {
	app := newTestApp()

	assert.Equal(t, fiber.StatusForbidden, request(t, app, "/admin", "user-token"))
	assert.Equal(t, fiber.StatusOK, request(t, app, "/admin", "admin-token"))
}
