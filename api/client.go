// Package api is the REST client for the library backend. A single Client
// carries the base URL, HTTP client, and bearer-token source; resource
// services (Books, Members, Transactions, Auth) hang off it. Every call
// takes a context and returns either decoded data or an *Error.
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

	"github.com/sirupsen/logrus"
)

// TokenSource supplies the current bearer token. An empty string means the
// request goes out unauthenticated and the backend rejects it.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-token TokenSource, mostly for tests and one-shot
// calls during login before the session is established.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client is the shared core under the resource services.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	log        *logrus.Logger
}

// Config holds client construction options.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout
	Tokens     TokenSource
	Logger     *logrus.Logger
}

// New creates a client. BaseURL is required.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = StaticToken("")
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}, nil
}

// SetTokenSource swaps the token source. Used once at startup to hand the
// client its session manager; not safe for concurrent use with in-flight
// requests.
func (c *Client) SetTokenSource(ts TokenSource) { c.tokens = ts }

// do performs one request and decodes the JSON response into out (out may
// be nil). It never retries: a failure is surfaced once and the user
// re-runs the command.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return transportErr(fmt.Errorf("marshal request body: %w", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, bodyReader)
	if err != nil {
		return transportErr(fmt.Errorf("create request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).WithField("url", reqURL).Debug("request failed")
		return transportErr(fmt.Errorf("%s %s: %w", method, path, err))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return transportErr(fmt.Errorf("read response body: %w", err))
	}

	if resp.StatusCode >= 400 {
		apiErr := statusErr(resp.StatusCode, respBody)
		c.log.WithFields(logrus.Fields{
			"url":    reqURL,
			"status": resp.StatusCode,
			"kind":   apiErr.Kind.String(),
		}).Debug("request rejected")
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return transportErr(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Auth returns the authentication service.
func (c *Client) Auth() *AuthService { return &AuthService{client: c} }

// Books returns the book resource service.
func (c *Client) Books() *BooksService { return &BooksService{client: c} }

// Members returns the member resource service.
func (c *Client) Members() *MembersService { return &MembersService{client: c} }

// Transactions returns the transaction resource service.
func (c *Client) Transactions() *TransactionsService { return &TransactionsService{client: c} }
