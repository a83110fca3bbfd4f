package playoh

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

	"github.com/gorilla/schema"
	"go.uber.org/zap"

	"playoh/internal/domain/users"
)

const maxResponseBytes = 1_048_576 // 1mb

// Session is the slice of the device session the client needs: the token for
// outgoing requests, and write access for login, register and logout.
type Session interface {
	Token(ctx context.Context) (string, error)
	SetSession(ctx context.Context, token string, snap users.Snapshot) error
	Clear(ctx context.Context) error
}

// RequestInterceptor may modify or reject a request before it is sent.
type RequestInterceptor func(*http.Request) error

// ResponseInterceptor inspects every response before the body is decoded.
// A non-nil error replaces the call's result.
type ResponseInterceptor func(*http.Response) error

// Client is the façade over the PlayOH REST API: one method per endpoint.
type Client struct {
	baseURL   string
	http      *http.Client
	session   Session
	logger    *zap.SugaredLogger
	before    []RequestInterceptor
	after     []ResponseInterceptor
	encoder   *schema.Encoder
	userAgent string
}

type Option func(*Client)

// WithHTTPClient replaces the transport. Its timeout is the only timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *Client) { c.before = append(c.before, fn) }
}

func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) { c.after = append(c.after, fn) }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New builds a client for baseURL (for example https://localhost:7063/api).
// The returned client has no session; use WithSession per device.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop().Sugar(),
		encoder: schema.NewEncoder(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.after = append([]ResponseInterceptor{detectAuthExpired}, c.after...)
	return c
}

// WithSession returns a copy of c that reads and writes s.
func (c *Client) WithSession(s Session) *Client {
	cp := *c
	cp.session = s
	return &cp
}

// authorize attaches the session token, when there is one.
func (c *Client) authorize(req *http.Request) error {
	if c.session == nil {
		return nil
	}
	token, err := c.session.Token(req.Context())
	if err != nil {
		return fmt.Errorf("read session token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

func detectAuthExpired(resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return ErrAuthExpired
	}
	return nil
}

func (c *Client) query(src any) (url.Values, error) {
	q := url.Values{}
	if err := c.encoder.Encode(src, q); err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}
	return q, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, q, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s body: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	// the token comes from this copy's session
	if err := c.authorize(req); err != nil {
		return err
	}
	for _, fn := range c.before {
		if err := fn(req); err != nil {
			return err
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warnw("api request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Infow("api request", "method", method, "path", path, "status", resp.StatusCode, "duration", time.Since(start))

	for _, fn := range c.after {
		if err := fn(resp); err != nil {
			return err
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// IsAuthExpired reports whether err carries an authorization failure.
func IsAuthExpired(err error) bool {
	return errors.Is(err, ErrAuthExpired)
}
