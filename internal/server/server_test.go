package server

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"adorder-be/internal/pkg/logger"
	"adorder-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_RecoversFromPanics(t *testing.T) {
	app := newApp(logger.NewNopLogger(), "http://localhost:5173")
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		panic("handler exploded")
	})
	app.Get("/ok", func(ctx *fiber.Ctx) error {
		return ctx.JSON(serverutils.SuccessResponse[any]("Success", nil))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.NotContains(t, body.Message, "handler exploded")

	resp, err = app.Test(httptest.NewRequest("GET", "/ok", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
