// Package apiclient es el cliente REST del backend para otros servicios Go y
// para las herramientas de línea de comandos. Las lecturas se memoizan en un
// cache.Store igual que en los servicios del servidor.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"clinical-service/pkg/cache"

	"go.uber.org/zap"
)

const defaultTimeout = 20 * time.Second

// APIError es una respuesta con success=false o un código HTTP de error.
type APIError struct {
	Status  int
	Message string
	Details map[string]interface{}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("apiclient: %d %s", e.Status, e.Message)
}

type envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    json.RawMessage        `json:"data"`
	Details map[string]interface{} `json:"details"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	store      cache.Store
	ttl        time.Duration
	logger     *zap.Logger

	token      string
	tokenMutex sync.RWMutex
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.httpClient = hc } }

func WithTTL(ttl time.Duration) Option { return func(c *Client) { c.ttl = ttl } }

// New crea el cliente. Con store nil se usa un MemoryStore propio.
func New(baseURL string, store cache.Store, logger *zap.Logger, opts ...Option) *Client {
	if store == nil {
		store = cache.NewMemoryStore()
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		ttl:        cache.DefaultTTL,
		logger:     logger.Named("apiclient"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken fija el access token que se envía como Bearer.
func (c *Client) SetToken(token string) {
	c.tokenMutex.Lock()
	defer c.tokenMutex.Unlock()
	c.token = token
}

// Get decodifica en out el campo data de la respuesta. El resultado queda
// cacheado bajo cache.Key(endpoint, filters).
func (c *Client) Get(ctx context.Context, endpoint string, filters map[string]string, out interface{}) error {
	endpoint = "/" + strings.TrimLeft(endpoint, "/")
	var key interface{}
	if len(filters) > 0 {
		key = filters
	}
	data, err := cache.Memoize(ctx, c.store, cache.Key(endpoint, key), c.ttl, func(ctx context.Context) (json.RawMessage, error) {
		return c.do(ctx, http.MethodGet, c.url(endpoint, filters), nil)
	})
	if err != nil {
		return err
	}
	return decodeData(data, out)
}

// Post envía body como JSON y descarta lo cacheado del recurso.
func (c *Client) Post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.write(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Patch(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.write(ctx, http.MethodPatch, endpoint, body, out)
}

// Invalidate borra del cache las claves que contienen pattern; vacío borra todo.
func (c *Client) Invalidate(ctx context.Context, pattern string) error {
	return c.store.Invalidate(ctx, pattern)
}

func (c *Client) write(ctx context.Context, method, endpoint string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("apiclient: codificando el cuerpo: %w", err)
	}
	data, err := c.do(ctx, method, c.url(endpoint, nil), raw)
	if err != nil {
		return err
	}
	if err := c.Invalidate(ctx, resource(endpoint)); err != nil {
		c.logger.Warn("No se pudo invalidar el cache", zap.String("endpoint", endpoint), zap.Error(err))
	}
	return decodeData(data, out)
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (json.RawMessage, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: creando la petición: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.tokenMutex.RLock()
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	c.tokenMutex.RUnlock()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		c.logger.Debug("Respuesta de error",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
			zap.String("message", env.Message),
		)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, Details: env.Details}
	}
	return env.Data, nil
}

func (c *Client) url(endpoint string, filters map[string]string) string {
	u := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if len(filters) == 0 {
		return u
	}
	q := url.Values{}
	for k, v := range filters {
		q.Set(k, v)
	}
	return u + "?" + q.Encode()
}

// resource devuelve el primer segmento del endpoint: "/ordenes/5/estado" → "/ordenes".
func resource(endpoint string) string {
	trimmed := strings.Trim(endpoint, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

func decodeData(data json.RawMessage, out interface{}) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("apiclient: decodificando data: %w", err)
	}
	return nil
}
