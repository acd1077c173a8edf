package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Trazabilidad-api/internal/application/usecase"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/entity"
	"github.com/jhoicas/Trazabilidad-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Trazabilidad-api/internal/interfaces/http"
	"github.com/jhoicas/Trazabilidad-api/pkg/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

// newRouterApp monta el router sin casos de uso: solo se ejercitan health y los middlewares.
func newRouterApp(db apphttp.Pinger) *fiber.App {
	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{DB: db, JWTSecret: testJWTSecret, Log: log})
	return app
}

func TestHealth(t *testing.T) {
	cases := []struct {
		name     string
		db       apphttp.Pinger
		status   int
		expected string
	}{
		{"base disponible", stubPinger{}, http.StatusOK, "ok"},
		{"base caída", stubPinger{err: errors.New("timeout")}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := newRouterApp(tc.db).Test(httptest.NewRequest(http.MethodGet, "/api/health", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.expected, body["status"])
		})
	}
}

func TestRouter_RutasProtegidas(t *testing.T) {
	app := newRouterApp(nil)

	cases := []struct {
		method, path, auth string
		status             int
	}{
		{http.MethodGet, "/api/batches", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/traceability/movements", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/reports/dashboard", "Bearer basura", http.StatusUnauthorized},
		{http.MethodPost, "/api/products", tokenForRole(t, "user"), http.StatusForbidden},
		{http.MethodPut, "/api/companies/x", tokenForRole(t, "user"), http.StatusForbidden},
		{http.MethodDelete, "/api/labels/templates/x", tokenForRole(t, "user"), http.StatusForbidden},
		{http.MethodGet, "/api/users", tokenForRole(t, "user"), http.StatusForbidden},
		{http.MethodDelete, "/api/batches/x", tokenForRole(t, "user"), http.StatusForbidden},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		if tc.auth != "" {
			req.Header.Set("Authorization", tc.auth)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, "%s %s", tc.method, tc.path)
		resp.Body.Close()
	}
}

// batchStore y movementStore implementan solo lo que usa el borrado de lotes.
type batchStore struct {
	repository.BatchRepository
	byID    map[string]*entity.Batch
	deleted []string
}

func (s *batchStore) GetByID(_ context.Context, id string) (*entity.Batch, error) {
	return s.byID[id], nil
}

func (s *batchStore) Delete(_ context.Context, id string) error {
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

type movementStore struct {
	repository.MovementRepository
	byBatch map[string][]*entity.Movement
}

func (s *movementStore) ListByBatch(_ context.Context, batchID string) ([]*entity.Movement, error) {
	return s.byBatch[batchID], nil
}

func TestRouter_BorrarLoteConMovimientos(t *testing.T) {
	batches := &batchStore{byID: map[string]*entity.Batch{
		"b1": {ID: "b1", BatchNumber: "L-1"},
		"b2": {ID: "b2", BatchNumber: "L-2"},
	}}
	movements := &movementStore{byBatch: map[string][]*entity.Movement{
		"b1": {
			{ID: "m1", BatchID: "b1", Type: entity.MovementProduction},
			{ID: "m2", BatchID: "b1", Type: entity.MovementTransport},
			{ID: "m3", BatchID: "b1", Type: entity.MovementStorage},
		},
	}}
	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		BatchUC:   usecase.NewBatchUseCase(batches, nil, nil, movements, "https://trace.example.com"),
		JWTSecret: testJWTSecret,
		Log:       log,
	})

	del := func(id, role string) int {
		req := httptest.NewRequest(http.MethodDelete, "/api/batches/"+id, nil)
		req.Header.Set("Authorization", tokenForRole(t, role))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusForbidden, del("b1", "user"))
	assert.Equal(t, http.StatusConflict, del("b1", "admin"))
	assert.Empty(t, batches.deleted)
	assert.Len(t, movements.byBatch["b1"], 3)

	assert.Equal(t, http.StatusNoContent, del("b2", "admin"))
	assert.Equal(t, []string{"b2"}, batches.deleted)
	assert.Equal(t, http.StatusNotFound, del("b2", "admin"))
}
