package httpx

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

	"github.com/moharam-dev/hotelbook/internal/session"
)

// Navigator lets the wrapper force the UI back to the sign-in view after a
// server-signaled 401, without knowing anything about views itself.
type Navigator interface {
	OnSignIn() bool
	ToSignIn()
}

// Client is the single point of outbound request configuration: base URL,
// fixed timeout, bearer injection from the session store, and global 401
// interception. Everything else passes through to the caller untouched.
type Client struct {
	base  string
	http  *http.Client
	store session.Store
	nav   Navigator
	log   *logrus.Logger
}

type Option func(*Client)

func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

func WithLogger(log *logrus.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, timeout time.Duration, store session.Store, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: timeout},
		store: store,
		log:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// JSON performs a request with an optional JSON body and decodes the response
// into out when out is non-nil.
func (c *Client) JSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	return c.do(ctx, method, path, query, "application/json", reader, out)
}

// Multipart performs a request with a multipart form body, used by the room
// and profile endpoints that accept file uploads.
func (c *Client) Multipart(ctx context.Context, method, path string, form *Form, out any) error {
	body, contentType, err := form.encode()
	if err != nil {
		return fmt.Errorf("encode form: %w", err)
	}
	return c.do(ctx, method, path, nil, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	target := c.base + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	// A failed store read is logged, not fatal: the request goes out
	// unauthenticated and the backend decides.
	token, err := c.store.Token()
	if err != nil {
		c.log.WithError(err).Warn("failed to read token from session store")
	} else if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.forceSignOut()
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}
	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Body: respBody}
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// forceSignOut clears the session and pushes the UI to the sign-in view
// unless it is already there. Runs synchronously before the error returns.
func (c *Client) forceSignOut() {
	if err := c.store.Clear(); err != nil {
		c.log.WithError(err).Warn("failed to clear session store")
	}
	if c.nav != nil && !c.nav.OnSignIn() {
		c.nav.ToSignIn()
	}
}
