package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rimselmen123/stock-gestion-de-produit/internal/domain"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/config"
	"github.com/rimselmen123/stock-gestion-de-produit/pkg/logger"
)

// Client cliente HTTP resiliente hacia el backend: timeout por intento,
// reintentos acotados con backoff lineal y normalización de la envoltura
// de respuesta. Mantiene el header bearer entre llamadas (estado por
// instancia, no global).
type Client struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	retryAttempts int
	retryDelay    time.Duration
	log           *logger.Logger

	mu             sync.RWMutex
	defaultHeaders map[string]string
}

// New construye el cliente a partir de la configuración del API.
// Si log es nil se usa un logger nop.
func New(cfg config.APIConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	attempts := cfg.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		// El timeout se controla por contexto en cada intento, no aquí.
		httpClient:    &http.Client{},
		timeout:       timeout,
		retryAttempts: attempts,
		retryDelay:    cfg.RetryDelay,
		log:           log,
		defaultHeaders: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
	}
}

// SetAuthToken fija el header Authorization para las llamadas siguientes.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defaultHeaders["Authorization"] = "Bearer " + token
}

// ClearAuthToken elimina el header Authorization.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.defaultHeaders, "Authorization")
}

// Do ejecuta una petición con reintentos. Solo reintenta fallos transitorios
// (error de red, timeout, 5xx); cualquier status en [400,500) es terminal y
// se propaga de inmediato. Tras agotar los intentos devuelve el último error;
// si este no trae status se clasifica como error de red con status 0.
func (c *Client) Do(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	var lastErr error
	for attempt := 1; attempt <= c.retryAttempts; attempt++ {
		env, err := c.once(ctx, method, endpoint, body)
		if err == nil {
			return env, nil
		}
		lastErr = err

		if domain.Terminal(err) {
			return nil, err
		}
		if attempt == c.retryAttempts {
			break
		}

		c.log.Debug().
			Str("method", method).
			Str("endpoint", endpoint).
			Int("attempt", attempt).
			Err(err).
			Msg("reintentando petición")

		// Backoff lineal: delay × número de intento, respetando el ctx.
		select {
		case <-ctx.Done():
			return nil, domain.NetworkError(ctx.Err().Error())
		case <-time.After(c.retryDelay * time.Duration(attempt)):
		}
	}

	if se, ok := domain.AsServiceError(lastErr); ok {
		return nil, se
	}
	msg := "Network request failed"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	return nil, domain.NetworkError(msg)
}

// once ejecuta un único intento con su propio deadline.
func (c *Client) once(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, domain.NewServiceError("request body inválido: "+err.Error(), 400, "INVALID_REQUEST_BODY")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, err
	}
	c.mu.RLock()
	for k, v := range c.defaultHeaders {
		req.Header.Set(k, v)
	}
	c.mu.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Fallo de transporte o timeout: transitorio, sin status.
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp.StatusCode, raw)
	}
	return Normalize(raw)
}

// decodeAPIError intenta decodificar el cuerpo de error del backend;
// si no es decodificable sintetiza un mensaje a partir del status.
func decodeAPIError(status int, raw []byte) *domain.ServiceError {
	var body apiError
	if err := json.Unmarshal(raw, &body); err != nil || body.Message == "" {
		return domain.NewServiceError(
			fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
			status,
			"",
		)
	}
	return domain.NewServiceError(body.Message, status, body.Error)
}

// Get, Post, Put, Patch y Delete son atajos sobre Do.
func (c *Client) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Do(ctx, http.MethodPatch, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Do(ctx, http.MethodDelete, endpoint, nil)
}
