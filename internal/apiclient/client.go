// Package apiclient - HTTP транспорт для REST API магазина.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"storefront/internal/auth"
	"storefront/pkg/logger"
)

const (
	RequestIDHeader = "X-Request-ID"

	maxErrorBody    = 64 << 10
	maxResponseBody = 8 << 20
)

// TokenSource - возвращает текущий токен сессии или пустую строку
type TokenSource func() string

// Config - параметры клиента
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64
	RateBurst int
}

// Option - дополнительная настройка клиента
type Option func(*Client)

// WithTokenSource - добавлять Authorization: Bearer к каждому запросу
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) { c.token = src }
}

// WithHTTPClient - заменить http.Client (в тестах)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = logger.OrNop(log) }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// Client - общий транспорт для всех сервисов
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      TokenSource
	limiter    *rate.Limiter
	metrics    *Metrics
	log        *zap.Logger
}

// New - создает клиент API
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		log:        zap.NewNop(),
	}

	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL - адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do - выполняет запрос. body кодируется в JSON, успешный ответ декодируется в out.
// out == nil - тело ответа отбрасывается.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("не удалось сериализовать тело запроса: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("не удалось создать запрос: %w", err)
	}
	c.decorate(req, body != nil)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("ожидание лимита запросов: %w", err)
		}
	}

	done := c.metrics.start()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		done(method, 0)
		c.log.Debug("запрос к API не выполнен",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	done(method, resp.StatusCode)

	c.log.Debug("ответ API",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", req.Header.Get(RequestIDHeader)))

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(method, path, resp.StatusCode, data)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBody))
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("чтение ответа %s %s: %w", method, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("разбор ответа %s %s: %w", method, path, err)
	}
	return nil
}

// decorate - перехватчики запроса: заголовки, идентификатор запроса, токен
func (c *Client) decorate(req *http.Request, hasBody bool) {
	req.Header.Set("Accept", "application/json")
	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, uuid.NewString())
	if c.token != nil {
		if token := c.token(); token != "" {
			req.Header.Set("Authorization", auth.BearerHeader(token))
		}
	}
}

// Get - GET запрос
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post - POST запрос с JSON телом
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put - PUT запрос с JSON телом
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete - DELETE запрос
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}
