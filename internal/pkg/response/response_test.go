package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope(t *testing.T) {
	app := fiber.New()
	app.Get("/created", func(c fiber.Ctx) error { return Success(c, fiber.StatusCreated, "", fiber.Map{"id": 1}) })
	app.Get("/bogus", func(c fiber.Ctx) error { return Error(c, 42, "", nil) })

	cases := []struct {
		path    string
		status  int
		message string
	}{
		{"/created", fiber.StatusCreated, MessageCreated},
		{"/bogus", fiber.StatusInternalServerError, MessageInternalServerError},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)

		var body SemanticResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		_ = resp.Body.Close()
		assert.Equal(t, tc.status, resp.StatusCode)
		assert.Equal(t, tc.status, body.Status)
		assert.Equal(t, tc.message, body.Message)
	}
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, MessageServiceUnavailable, DefaultMessage(fiber.StatusServiceUnavailable))
	assert.Equal(t, MessageInternalServerError, DefaultMessage(fiber.StatusBadGateway))
	assert.Equal(t, MessageError, DefaultMessage(fiber.StatusTeapot))
}
