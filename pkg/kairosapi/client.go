package kairosapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	pkgerrors "github.com/mt-arl/kairosMIxFront/pkg/errors"
	"github.com/mt-arl/kairosMIxFront/pkg/metrics"
)

const (
	defaultBaseURL         = "http://localhost:3000/api"
	defaultTimeout         = 10 * time.Second
	errorBodyReadLimit     = 4 << 10
	responseBodyReadLimit  = 8 << 20
	contentTypeJSON        = "application/json"
	headerAuthorization    = "Authorization"
	bearerPrefix           = "Bearer "
	noActiveSessionMessage = "no active session"
)

var errBaseURLRequired = errors.New("kairosmix api base url is required")

// TokenSource yields the bearer token for authenticated calls. Implementations must
// fail with an UNAUTHORIZED error when no session is active.
type TokenSource interface {
	BearerToken() (string, error)
}

// Client talks to the KairosMix REST API that owns products, clients, mixes and orders.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *metrics.UpstreamMetrics
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured API base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// WithTimeout bounds every call made by the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 && c.httpClient != nil {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithMetrics records per-operation call metrics.
func WithMetrics(m *metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient builds a client rooted at baseURL (for example http://localhost:3000/api).
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.baseURL == "" {
		return nil, errBaseURLRequired
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return client, nil
}

// call describes one request against the API.
type call struct {
	operation string
	method    string
	path      string
	query     url.Values
	body      any
	tokens    TokenSource
	fallback  string
}

func (c *Client) do(ctx context.Context, req call, out any) error {
	if c == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "kairosmix api client not configured")
	}

	var token string
	if req.tokens != nil {
		t, err := req.tokens.BearerToken()
		if err != nil {
			if pkgerrors.As(err) != nil {
				return err
			}
			return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, noActiveSessionMessage)
		}
		if strings.TrimSpace(t) == "" {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, noActiveSessionMessage)
		}
		token = t
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, fmt.Sprintf("marshal %s request", req.operation))
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.buildURL(req.path, req.query), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("build %s request", req.operation))
	}
	httpReq.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		httpReq.Header.Set("Content-Type", contentTypeJSON)
	}
	if token != "" {
		httpReq.Header.Set(headerAuthorization, bearerPrefix+token)
	}

	started := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.Observe(req.operation, 0, time.Since(started))
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("execute %s request", req.operation))
	}
	defer func() { _ = resp.Body.Close() }()
	c.metrics.Observe(req.operation, resp.StatusCode, time.Since(started))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
		return newStatusError(req.operation, resp.StatusCode, raw, req.fallback)
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("read %s response", req.operation))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", req.operation))
	}
	return nil
}

func (c *Client) buildURL(path string, query url.Values) string {
	full := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		full += "?" + query.Encode()
	}
	return full
}

func resourcePath(parts ...string) string {
	escaped := make([]string, 0, len(parts))
	for i, part := range parts {
		if i%2 == 1 {
			part = url.PathEscape(part)
		}
		escaped = append(escaped, part)
	}
	return strings.Join(escaped, "/")
}

func requireID(id, what string) (string, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, what+" id is required")
	}
	return trimmed, nil
}

// doResource runs req and decodes the resource found under key, accepting both the
// bare resource and a wrapped {key: resource} reply.
func (c *Client) doResource(ctx context.Context, req call, key string, out any) error {
	var raw json.RawMessage
	if err := c.do(ctx, req, &raw); err != nil {
		return err
	}
	inner := unwrap(raw, key)
	if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(inner, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("decode %s response", req.operation))
	}
	return nil
}
