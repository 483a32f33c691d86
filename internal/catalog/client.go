// Package catalog is the HTTP client for the HunterPrice API.
//
// Every method takes a context and returns either a decoded domain value or
// one of the typed errors in errors.go. GET requests are retried on transient
// failures; POST requests are sent once.
package catalog

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

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hunterprice/internal/domain"
	"hunterprice/internal/log"
)

// Options configures a Client
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	UserAgent  string

	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
}

// Client talks to the HunterPrice API
type Client struct {
	opts     Options
	http     *http.Client
	user     *domain.CurrentUser
	location *domain.Coordinates
	logger   zerolog.Logger
}

// New creates a client for the API rooted at opts.BaseURL
func New(opts Options) *Client {
	opts.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		opts:   opts,
		http:   httpClient,
		logger: log.For("catalog"),
	}
}

// WithUser returns a copy of the client that authenticates as user.
// A nil user yields an anonymous client.
func (c *Client) WithUser(user *domain.CurrentUser) *Client {
	cp := *c
	cp.user = user
	return &cp
}

// WithLocation returns a copy of the client that looks up the closest store
// of each offer from where
func (c *Client) WithLocation(where domain.Coordinates) *Client {
	cp := *c
	cp.location = &where
	return &cp
}

// User returns the user the client authenticates as, nil when anonymous
func (c *Client) User() *domain.CurrentUser {
	return c.user
}

// endpoint joins path segments onto the base URL, escaping each one
func (c *Client) endpoint(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.opts.BaseURL)
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

func (c *Client) get(ctx context.Context, op, u string, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, u, nil, "")
	if err != nil {
		return err
	}
	return decode(op, body, out)
}

func (c *Client) post(ctx context.Context, op, u string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: encoding request: %w", op, err)
	}
	body, err := c.do(ctx, op, http.MethodPost, u, payload, "application/json")
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decode(op, body, out)
}

// do sends the request, retrying idempotent requests with exponential backoff
func (c *Client) do(ctx context.Context, op, method, u string, payload []byte, contentType string) ([]byte, error) {
	attempts := 1
	if method == http.MethodGet {
		attempts += c.opts.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := c.opts.RetryDelay * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return nil, &FetchError{Op: op, URL: u, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}

		body, err := c.doOnce(ctx, op, method, u, payload, contentType)
		if err == nil {
			return body, nil
		}
		lastErr = err

		var fe *FetchError
		if !errors.As(err, &fe) || !fe.Retryable() || ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, op, method, u string, payload []byte, contentType string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &FetchError{Op: op, URL: u, Err: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.opts.UserAgent != "" {
		req.Header.Set("User-Agent", c.opts.UserAgent)
	}
	if c.user != nil && c.user.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.user.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("op", op).Str("request_id", requestID).Msg("request failed")
		return nil, &FetchError{Op: op, URL: u, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}

	c.logger.Debug().
		Str("op", op).
		Str("method", method).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: op, URL: u, StatusCode: resp.StatusCode, Err: apiError(resp.StatusCode, body)}
	}
	return body, nil
}

// apiError extracts the {"error": "..."} message the API sends on failures
func apiError(status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Error != "" {
			return &APIError{StatusCode: status, Message: payload.Error}
		}
		if payload.Message != "" {
			return &APIError{StatusCode: status, Message: payload.Message}
		}
	}
	return fmt.Errorf("unexpected status: %s", http.StatusText(status))
}

func decode(op string, body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

// ErrorMessage returns the message the API attached to err, or fallback
func ErrorMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
