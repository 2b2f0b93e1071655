// Package rest implements the request and decode core shared by every CRM
// endpoint: credential attachment, JSON encoding, the double-decode fallback
// and failure classification.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ericfisherdev/crmclient/internal/domain/model"
	"github.com/ericfisherdev/crmclient/internal/domain/port/driven"
)

// RequestIDHeader carries a per-request UUID so server logs can be matched
// with client diagnostics.
const RequestIDHeader = "X-Request-ID"

// Client performs single logical requests against a fixed base address.
// It reads the TokenStore once per call and never mutates it.
type Client struct {
	http    *http.Client
	baseURL *url.URL
	tokens  driven.TokenStore
	logger  *slog.Logger
	stats   counters
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (see NewHTTPClient).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a Client for baseURL. The base must be an absolute
// http or https URL; a trailing slash is added so relative paths resolve
// beneath it ("https://host/api" + "users" -> "https://host/api/users").
func NewClient(baseURL string, tokens driven.TokenStore, opts ...Option) (*Client, error) {
	if tokens == nil {
		return nil, errors.New("rest: token store is required")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must be an absolute http(s) URL", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		http:    NewHTTPClient(TransportConfig{}),
		baseURL: u,
		tokens:  tokens,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised base address.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Get issues a GET and decodes the body into T.
func Get[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Do[T](ctx, c, http.MethodGet, path, nil)
}

// Post encodes body as JSON, issues a POST and decodes the response into T.
func Post[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPost, path, body)
}

// Put encodes body as JSON, issues a PUT and decodes the response into T.
func Put[T any](ctx context.Context, c *Client, path string, body any) (T, error) {
	return Do[T](ctx, c, http.MethodPut, path, body)
}

// Delete issues a DELETE and decodes the response into T.
func Delete[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Do[T](ctx, c, http.MethodDelete, path, nil)
}

// Do performs one request and runs the shared decode pipeline. Every failure
// is returned as a *model.RequestError except a body that cannot be encoded,
// which is a caller bug and is returned as a plain wrapped error.
func Do[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var zero T

	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return zero, err
	}

	return decode[T](c, method, path, raw)
}

// Exec performs one request for its status only. Any 2xx answer is success
// and the body, JSON or not, is discarded.
func Exec(ctx context.Context, c *Client, method, path string, body any) error {
	_, err := c.send(ctx, method, path, body)
	return err
}

// send issues the request and returns the raw body of a 2xx response.
func (c *Client) send(ctx context.Context, method, path string, body any) ([]byte, error) {
	c.stats.requests.Add(1)

	target, err := c.resolve(path)
	if err != nil {
		return nil, c.fail(&model.RequestError{Kind: model.FailureTransport, Method: method, Path: path, Err: err})
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, c.fail(&model.RequestError{Kind: model.FailureTransport, Method: method, Path: path, Err: err})
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}
	// Read once so the whole request sees a single credential value.
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request",
		"method", method,
		"path", path,
		"request_id", requestID,
		"authenticated", req.Header.Get("Authorization") != "",
	)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(&model.RequestError{Kind: model.FailureTransport, Method: method, Path: path, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(&model.RequestError{
			Kind:   model.FailureTransport,
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Err:    fmt.Errorf("reading response body: %w", err),
		})
	}

	c.logger.Debug("api response",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status", resp.StatusCode,
		"bytes", len(raw),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(classifyStatus(method, path, resp.StatusCode, raw))
	}

	return raw, nil
}

// resolve joins a relative endpoint path onto the base URL. Absolute URLs
// and host-relative references are rejected so a path can never leave the
// configured origin.
func (c *Client) resolve(path string) (string, error) {
	ref, err := url.Parse(strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("parsing path %q: %w", path, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("path %q must be relative", path)
	}
	return c.baseURL.ResolveReference(ref).String(), nil
}

// classifyStatus maps a non-2xx status onto the failure taxonomy.
// 401 and 403 are auth failures regardless of body.
func classifyStatus(method, path string, status int, raw []byte) *model.RequestError {
	reqErr := &model.RequestError{
		Method: method,
		Path:   path,
		Status: status,
		Body:   truncate(raw),
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		reqErr.Kind = model.FailureAuth
	case http.StatusNotFound:
		reqErr.Kind = model.FailureNotFound
	default:
		reqErr.Kind = model.FailureTransport
	}

	return reqErr
}

// fail records and logs a classified failure before handing it back.
func (c *Client) fail(reqErr *model.RequestError) error {
	c.stats.record(reqErr.Kind)

	attrs := []any{
		"method", reqErr.Method,
		"path", reqErr.Path,
		"kind", reqErr.Kind,
		"status", reqErr.Status,
	}
	if reqErr.Err != nil {
		attrs = append(attrs, "error", reqErr.Err)
	}

	switch reqErr.Kind {
	case model.FailureNotFound:
		c.logger.Info("api request failed", attrs...)
	case model.FailureDecode, model.FailureTransport:
		c.logger.Warn("api request failed", append(attrs, "body", reqErr.Body)...)
	default:
		c.logger.Warn("api request failed", attrs...)
	}

	return reqErr
}
