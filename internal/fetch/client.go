package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultTimeout   = 15 * time.Second
	maxBodySize      = 4 * 1024 * 1024 // 4 MB
	defaultUserAgent = "deskup/0.1 (terminal dashboard; +https://github.com/vidyasagar/deskup)"
)

// SharedTransport is the tuned HTTP transport shared by every client.
var SharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:          50,
	MaxIdleConnsPerHost:   4,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ResponseHeaderTimeout: 15 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
	ForceAttemptHTTP2:     true,
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string // first bytes of the response, for diagnostics
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Code)
	}
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.Code, e.Body)
}

// Option customizes a single request.
type Option func(*http.Request)

// WithHeader sets a request header.
func WithHeader(key, value string) Option {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// WithBearer sets a bearer Authorization header.
func WithBearer(token string) Option {
	return WithHeader("Authorization", "Bearer "+token)
}

// Client performs JSON requests with a user agent and timeout.
type Client struct {
	client    *http.Client
	userAgent string
}

// NewClient creates a Client on the shared transport.
func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Transport: SharedTransport,
			Timeout:   defaultTimeout,
		},
		userAgent: defaultUserAgent,
	}
}

// NewClientWith wraps an existing http.Client (tests use httptest clients).
func NewClientWith(hc *http.Client) *Client {
	return &Client{client: hc, userAgent: defaultUserAgent}
}

// HTTPClient returns the underlying client for packages that need raw bodies.
func (c *Client) HTTPClient() *http.Client {
	return c.client
}

// UserAgent returns the User-Agent sent with every request.
func (c *Client) UserAgent() string {
	return c.userAgent
}

// GetJSON issues a GET and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, rawURL string, out any, opts ...Option) error {
	return c.Do(ctx, http.MethodGet, rawURL, nil, out, opts...)
}

// Do sends body (JSON-encoded when non-nil) and decodes the response into out
// when out is non-nil.
func (c *Client) Do(ctx context.Context, method, rawURL string, body, out any, opts ...Option) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error repeats the full URL, query included.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return fmt.Errorf("%s %s: %w", method, redact(req), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return &StatusError{
			Method: method,
			URL:    redact(req),
			Code:   resp.StatusCode,
			Body:   string(bytes.TrimSpace(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("decoding %s: %w", redact(req), err)
	}
	return nil
}

// redact drops the query string so API keys passed as parameters never
// reach logs or the screen.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}
