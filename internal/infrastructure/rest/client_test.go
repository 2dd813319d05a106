package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/internal/infrastructure/rest"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newClient(t *testing.T, baseURL string, attempts int) *rest.Client {
	t.Helper()
	return rest.New(config.APIConfig{
		BaseURL:       baseURL,
		Timeout:       2 * time.Second,
		RetryAttempts: attempts,
		RetryDelay:    time.Millisecond,
	}, nil)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de reintentos
// ──────────────────────────────────────────────────────────────────────────────

// Un 404 es terminal: una sola petición, sin reintentos.
func TestClient_404NoSeReintenta(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error":   "BRANCH_NOT_FOUND",
			"message": "Branch not found",
			"status":  404,
		})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, 3)
	_, err := c.Get(context.Background(), "/branches/nope")
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok, "el error debe ser un error de servicio")
	assert.Equal(t, 404, svcErr.Status)
	assert.Equal(t, "BRANCH_NOT_FOUND", svcErr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls),
		"un 4xx no debe generar peticiones adicionales")
}

// Un 503 es transitorio: se agotan todos los intentos configurados.
func TestClient_503ReintentaHastaAgotar(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error":   "UNAVAILABLE",
			"message": "backend caído",
			"status":  503,
		})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, 3)
	_, err := c.Get(context.Background(), "/branches")
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 503, svcErr.Status)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls),
		"un 5xx debe reintentarse hasta agotar los intentos")
}

// Si un reintento llega a responder 2xx, la llamada termina en éxito.
func TestClient_RecuperaTrasFalloTransitorio(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			writeJSON(w, http.StatusBadGateway, map[string]any{"message": "bad gateway", "status": 502})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"id": "branch-1", "name": "Central"},
		})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, 3)
	env, err := c.Get(context.Background(), "/branches/branch-1")
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

// Timeout de transporte: el error final es de red, con status 0.
func TestClient_TimeoutDevuelveErrorDeRed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := rest.New(config.APIConfig{
		BaseURL:       srv.URL,
		Timeout:       20 * time.Millisecond,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}, nil)

	_, err := c.Get(context.Background(), "/slow")
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 0, svcErr.Status, "un fallo de transporte no tiene status HTTP")
	assert.Equal(t, "NETWORK_ERROR", svcErr.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de la envoltura
// ──────────────────────────────────────────────────────────────────────────────

// Shape 1: payload paginado con data y pagination hermanos.
func TestNormalize_PayloadPaginado(t *testing.T) {
	raw := []byte(`{"data":[{"id":"branch-1"}],"pagination":{"page":1,"per_page":10,"total":1}}`)
	env, err := rest.Normalize(raw)
	require.NoError(t, err)

	assert.True(t, env.Success)
	// La envoltura guarda el payload entero, con pagination incluida.
	assert.JSONEq(t, string(raw), string(env.Data))
}

// Shape 2: respuesta ya envuelta con success.
func TestNormalize_RespuestaEnvuelta(t *testing.T) {
	raw := []byte(`{"success":true,"data":{"id":"branch-1","name":"Central"},"message":"ok","timestamp":"2026-01-01T00:00:00Z"}`)
	env, err := rest.Normalize(raw)
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
	assert.JSONEq(t, `{"id":"branch-1","name":"Central"}`, string(env.Data))
}

// Shape 3: entidad desnuda, se sintetiza la envoltura.
func TestNormalize_EntidadDesnuda(t *testing.T) {
	raw := []byte(`{"id":"branch-1","name":"Central"}`)
	env, err := rest.Normalize(raw)
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "Success", env.Message)
	assert.JSONEq(t, string(raw), string(env.Data))
}

// Un array JSON también cuenta como payload desnudo.
func TestNormalize_ArrayDesnudo(t *testing.T) {
	raw := []byte(`[{"id":"branch-1"},{"id":"branch-2"}]`)
	env, err := rest.Normalize(raw)
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.JSONEq(t, string(raw), string(env.Data))
}

// ──────────────────────────────────────────────────────────────────────────────
// Header de autenticación
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_BearerTokenSeAdjuntaYSeRetira(t *testing.T) {
	var gotAuth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": nil})
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, 1)

	c.SetAuthToken("abc123")
	_, err := c.Get(context.Background(), "/branches")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc123", gotAuth.Load())

	c.ClearAuthToken()
	_, err = c.Get(context.Background(), "/branches")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())
}

// Cuerpo de error no decodificable: se sintetiza el mensaje desde el status.
func TestClient_ErrorSinCuerpoJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, 3)
	_, err := c.Get(context.Background(), "/broken")
	require.Error(t, err)

	svcErr, ok := domain.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, 400, svcErr.Status)
	assert.Equal(t, "HTTP 400: Bad Request", svcErr.Message)
}
