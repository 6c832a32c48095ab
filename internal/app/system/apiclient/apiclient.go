// Package apiclient is the HTTP transport shared by the resource gateways.
//
// Every backend response uses the envelope {success, message, data}. The
// client attaches the caller's bearer token, decodes the envelope and sorts
// failures into ErrSessionExpired (401/403) or *Error (everything else).
package apiclient

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

	"go.uber.org/zap"
)

// ErrSessionExpired is returned when the backend rejects the bearer token.
var ErrSessionExpired = errors.New("apiclient: session expired")

// Error is a non-authorization failure reported by the backend or the
// transport. Status is zero when no HTTP response was received.
type Error struct {
	Method  string
	Path    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// Envelope is the response wrapper used by every backend endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Client talks to the admin REST backend rooted at BaseURL
// (e.g. https://api.accian.co.uk/api).
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// New returns a Client with the given per-request timeout.
func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Log:     logger,
	}
}

// Do sends one request. token may be empty for the unauthenticated login and
// signup endpoints. body, when non-nil, is sent as JSON. The decoded envelope
// is returned on any 2xx status.
func (c *Client) Do(ctx context.Context, method, path, token string, body any) (Envelope, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return Envelope{}, &Error{Method: method, Path: path, Err: fmt.Errorf("encode body: %w", err)}
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return Envelope{}, &Error{Method: method, Path: path, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return Envelope{}, &Error{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return Envelope{}, &Error{Method: method, Path: path, Status: resp.StatusCode, Err: err}
	}

	var env Envelope
	decodeErr := json.Unmarshal(raw, &env)

	if token != "" && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
		c.Log.Info("backend rejected bearer token",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return Envelope{}, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := &Error{Method: method, Path: path, Status: resp.StatusCode}
		if decodeErr == nil {
			e.Message = env.Message
		}
		c.Log.Warn("backend returned error status",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", e.Message))
		return Envelope{}, e
	}

	// DELETE and PATCH may legitimately answer 204 or a bare body.
	if len(bytes.TrimSpace(raw)) == 0 {
		return Envelope{Success: true}, nil
	}
	if decodeErr != nil {
		return Envelope{}, &Error{Method: method, Path: path, Status: resp.StatusCode, Err: fmt.Errorf("decode envelope: %w", decodeErr)}
	}
	return env, nil
}

// ItemPath joins a collection path and an identifier, escaping the id.
func ItemPath(collection, id string) string {
	return collection + "/" + url.PathEscape(id)
}

// MessageOf extracts a user-facing message from err, or returns fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
