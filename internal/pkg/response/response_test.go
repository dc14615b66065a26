package response

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unihub/internal/core/domain"
)

func call(t *testing.T, handler fiber.Handler) (int, map[string]any) {
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSuccess(t *testing.T) {
	status, body := call(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.Map{"id": 1})
	})

	assert.Equal(t, 200, status)
	assert.Equal(t, float64(200), body["status"])
	assert.Equal(t, map[string]any{"id": float64(1)}, body["payload"])
	assert.Nil(t, body["message"])
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"not found", domain.NotFound("university"), 404, "university.not.found"},
		{"conflict", domain.Conflict("building"), 409, "building.conflict"},
		{"validation", domain.Validation("latitude.must.not.be.null"), 400, "bad.request;latitude.must.not.be.null"},
		{"unknown", errors.New("db exploded"), 500, "internal.server.error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := call(t, func(c *fiber.Ctx) error {
				return FromError(c, tt.err)
			})
			assert.Equal(t, tt.status, status)
			assert.Equal(t, float64(tt.status), body["status"])
			assert.Nil(t, body["payload"])
			assert.Equal(t, tt.message, body["message"])
		})
	}
}
