package middleware_test

import (
	"net/http/httptest"
	"testing"

	"catalog-sync/core/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(handlers ...fiber.Handler) *fiber.App {
	app := fiber.New()
	for _, h := range handlers {
		app.Use(h)
	}
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestAuth_RejectsMissingKey(t *testing.T) {
	app := newApp(middleware.Auth("secret"))

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_AcceptsValidKey(t *testing.T) {
	app := newApp(middleware.Auth("secret"))

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(middleware.APIKeyHeader, "secret")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuth_DisabledWithEmptyKey(t *testing.T) {
	app := newApp(middleware.Auth(""))

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRayID_AssignsAndEchoesID(t *testing.T) {
	app := newApp(middleware.RayID())

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(middleware.RayIDHeader))
}

func TestRayID_KeepsCallerProvidedID(t *testing.T) {
	app := newApp(middleware.RayID())

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set(middleware.RayIDHeader, "ray-123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "ray-123", resp.Header.Get(middleware.RayIDHeader))
}
