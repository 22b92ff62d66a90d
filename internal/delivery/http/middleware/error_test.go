package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"placement-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/bad", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusBadRequest, "", map[string]string{"field": "skills"}, nil)
	})
	app.Get("/internal", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusInternalServerError, "pgx: relation missing", nil, errors.New("boom"))
	})
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return NewAppError(fiber.StatusServiceUnavailable, "Skill catalog unavailable", nil, errors.New("no rows"))
	})
	app.Get("/plain", func(c fiber.Ctx) error {
		return errors.New("leaky detail")
	})
	app.Get("/panic", func(c fiber.Ctx) error {
		panic("kaboom")
	})

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{"/bad", fiber.StatusBadRequest, response.MessageBadRequest},
		{"/internal", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/unavailable", fiber.StatusServiceUnavailable, "Skill catalog unavailable"},
		{"/plain", fiber.StatusInternalServerError, response.MessageInternalServerError},
		{"/panic", fiber.StatusInternalServerError, response.MessageInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			var body response.SemanticResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0), "/health").Middleware())
	app.Get("/health", func(c fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/rid", func(c fiber.Ctx) error { return c.SendString(RequestID(c)) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderRequestID))
	assert.Empty(t, buf.String())

	req := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "rid-1", string(body))
	assert.Equal(t, "rid-1", resp.Header.Get(HeaderRequestID))
	assert.Contains(t, buf.String(), "HTTP access | rid=rid-1")
	assert.Contains(t, buf.String(), "status=200")
}
