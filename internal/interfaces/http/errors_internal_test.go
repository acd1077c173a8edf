package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/dto"
	"github.com/jhoicas/Trazabilidad-api/internal/domain"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

func TestWriteError_StatusMapping(t *testing.T) {
	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"validación":        {fmt.Errorf("cantidad: %w", domain.ErrValidation), 400, "VALIDATION"},
		"credenciales":      {domain.ErrInvalidCredentials, 401, "INVALID_CREDENTIALS"},
		"no autorizado":     {domain.ErrUnauthorized, 401, "UNAUTHORIZED"},
		"prohibido":         {domain.ErrForbidden, 403, "FORBIDDEN"},
		"no encontrado":     {fmt.Errorf("lote x: %w", domain.ErrNotFound), 404, "NOT_FOUND"},
		"conflicto":         {domain.ErrConflict, 409, "CONFLICT"},
		"no configurado":    {domain.ErrNotConfigured, 503, "NOT_CONFIGURED"},
		"error desconocido": {errors.New("pool cerrado"), 500, "INTERNAL"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger.Nop())})
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tc.status, resp.StatusCode)

			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.status == 500 {
				assert.NotContains(t, body.Message, "pool cerrado")
			}
		})
	}
}

func TestParseBody_ValidationDetails(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var in dto.LabelPrintRequest
		if err := parseBody(c, &in); err != nil {
			return writeError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	post := func(body string) (*http.Response, dto.ErrorResponse) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		var out dto.ErrorResponse
		if resp.StatusCode != fiber.StatusNoContent {
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		}
		return resp, out
	}

	resp, out := post(`{"batch_id":"nope","quantity":0,"printer_ip":"999.1.1.1"}`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Details, "batch_id")
	assert.Contains(t, out.Details, "template_id")
	assert.Contains(t, out.Details, "quantity")
	assert.Contains(t, out.Details, "printer_ip")

	resp, out = post(`{"batch_id":`)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)

	resp, _ = post(`{"batch_id":"2b1f4f8e-7a9c-4a4e-9b7e-0c1c6f0a1d11","template_id":"6a0b8c1e-3d2f-4e5a-8b9c-1d2e3f4a5b6c","quantity":2}`)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
