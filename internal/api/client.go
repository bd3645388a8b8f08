// Package api is the HTTP client for the TaskFlow backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request uuid so client and server logs line up
const RequestIDHeader = "X-Request-ID"

const maxBodyBytes = 4 << 20

// Logger is the subset of the runtime logger the client writes to
type Logger interface {
	Debug(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}

type Client struct {
	baseURL *url.URL
	http    *http.Client
	log     Logger
	newID   func() string

	// set by options, folded into http by New
	base    *http.Client
	jar     http.CookieJar
	timeout time.Duration
}

type Option func(*Client)

// WithHTTPClient sets the http.Client the requests go through. The client is
// copied, so the jar and timeout options never modify the caller's value.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.base = h
		}
	}
}

// WithJar sets the cookie jar holding the session cookie
func WithJar(jar http.CookieJar) Option {
	return func(c *Client) {
		c.jar = jar
	}
}

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets where request logs go
func WithLogger(l Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u,
		base:    &http.Client{},
		log:     nopLogger{},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	hc := *c.base
	if c.jar != nil {
		hc.Jar = c.jar
	}
	if c.timeout > 0 {
		hc.Timeout = c.timeout
	}
	c.http = &hc
	return c, nil
}

// BaseURL returns the server URL without a trailing slash
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Jar returns the cookie jar in use, or nil
func (c *Client) Jar() http.CookieJar {
	return c.http.Jar
}

func (c *Client) url(path string) string {
	return c.baseURL.String() + path
}

// do sends one request. A 2xx response is decoded into out when out is not
// nil; any other status becomes a *StatusError. The status code is returned in
// both cases.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return 0, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return 0, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Warn("read body failed", "method", method, "path", path, "request_id", reqID, "err", err)
		return resp.StatusCode, fmt.Errorf("%w: read %s %s: %w", ErrNetwork, method, path, err)
	}
	c.log.Debug("request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &msg) == nil {
			se.Message = msg.Message
		}
		c.log.Warn("request rejected", "method", method, "path", path, "status", resp.StatusCode, "request_id", reqID, "message", se.Message)
		return resp.StatusCode, se
	}

	// an empty success body leaves out untouched
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%w: %s %s: %w", ErrDecode, method, path, err)
		}
	}
	return resp.StatusCode, nil
}

// clearer is implemented by jars that can forget their cookies
type clearer interface {
	Clear() error
}

func (c *Client) clearCookies() error {
	if j, ok := c.http.Jar.(clearer); ok {
		return j.Clear()
	}
	return nil
}
