// Package apiclient is the typed HTTP client of the portal backend. Every
// operation resolves to a model.Response envelope; transport failures never
// surface as Go errors.
package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/publicsuffix"

	"github.com/flowpilot/portal-go/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Backend namespaces, relative to the API origin.
const (
	authPath         = "/api/auth"
	workspacePath    = "/api/workspace"
	billingPath      = "/api/billing"
	teamPath         = "/api/team"
	clientsPath      = "/api/clients"
	clientPortalPath = "/api/client-portal"
)

const (
	DefaultTimeout = 15 * time.Second

	maxResponseBytes = 1 << 20 // 1MB
)

// Client calls the portal backend on behalf of one browser scope. The cookie
// jar carries the backend session; it lives in memory only.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every call. Zero disables the per-call timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.http.Transport = rt }
}

// NewTransport returns the transport shared by every scope's client. Cookie
// jars stay per client; only connections are pooled.
func NewTransport() *http.Transport {
	d := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           d.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          256,
		MaxIdleConnsPerHost:   64,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// New creates a Client for the API origin baseURL with its own cookie jar.
func New(baseURL string, opts ...Option) (*Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// call performs one request and decodes the envelope. It never retries.
func call[T any](ctx context.Context, c *Client, method, path string, body any) model.Response[T] {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			slog.Error("encoding request body", "method", method, "path", path, "error", err)
			return model.NetworkFailure[T]()
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		slog.Error("building request", "method", method, "path", path, "error", err)
		return model.NetworkFailure[T]()
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("api request failed", "method", method, "path", path, "error", err)
		return model.NetworkFailure[T]()
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		slog.Warn("reading api response", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return model.NetworkFailure[T]()
	}

	var out model.Response[T]
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.Warn("api response is not an envelope", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return model.NetworkFailure[T]()
	}
	if !out.Normalize() {
		slog.Warn("api failure without error payload", "method", method, "path", path, "status", resp.StatusCode)
		return model.NetworkFailure[T]()
	}

	return out
}
