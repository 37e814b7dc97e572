package utils_test

import (
	"encoding/json"
	"net"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/singletea-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPingAddress(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	assert.NoError(t, utils.PingAddress(addr, time.Second))
	assert.NoError(t, utils.PingService("redis://"+addr, time.Second))

	require.NoError(t, ln.Close())
	assert.Error(t, utils.PingAddress(addr, 200*time.Millisecond))
}

func TestPingServiceInvalidURL(t *testing.T) {
	assert.Error(t, utils.PingService("://bad", time.Second))
}

func TestResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/err", func(c *fiber.Ctx) error {
		return utils.ErrorResponse(c, "Menu not found", fiber.StatusNotFound, "NotFoundError")
	})
	app.Get("/data", func(c *fiber.Ctx) error {
		return utils.DataResponse(c, nil, fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/err", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body utils.ErrorResponseStruct
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Menu not found", body.Message)
	assert.Equal(t, "/err", body.URL)
	assert.False(t, body.Ok)

	resp, err = app.Test(httptest.NewRequest("GET", "/data", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, true, env["success"])
	assert.Equal(t, map[string]any{}, env["data"])
}
