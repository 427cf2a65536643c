// Package api is the single chokepoint for all portfolio backend
// calls. It attaches the bearer token, maps HTTP-level failures to
// typed errors, and hands successful bodies back as decoded JSON.
// Payload validation is deliberately not done here; that is the
// normalizer's job.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrUnauthorized is returned when the backend rejects the session
// (HTTP 401). By the time a caller sees it, the client has already
// invalidated the stored token, so callers never handle 401 themselves.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a non-401 HTTP failure carrying the server-provided message
// when the response body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// TokenSource supplies the current auth header and absorbs
// server-forced invalidation. The session manager implements it.
type TokenSource interface {
	AuthHeader() (value string, ok bool)
	Invalidate()
}

// Client is a thin HTTP client for the portfolio REST API.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

// NewClient creates an API client. baseURL is the root URL of the
// backend; endpoint paths (e.g. /api/projects) are appended to it.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result any) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string, result any) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

// do builds the request, handles auth, and JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body any,
	result any,
) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, result)
}

// send executes a fully built request and decodes the response. Upload
// goes through here too, with its own multipart body and content type.
func (c *Client) send(req *http.Request, result any) error {
	req.Header.Set("Accept", "application/json")
	if header, ok := c.tokens.AuthHeader(); ok {
		req.Header.Set("Authorization", header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w",
			req.Method, req.URL.Path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	// The session is gone server-side. Drop the local token so every
	// observer re-checks auth state; the caller just sees the sentinel.
	if resp.StatusCode == http.StatusUnauthorized {
		c.tokens.Invalidate()
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{
			Status:  resp.StatusCode,
			Message: serverMessage(respBody, resp.StatusCode),
		}
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w",
			req.Method, req.URL.Path, err)
	}

	return nil
}

// serverMessage extracts the backend's error message from a failure
// body, falling back to a generic templated message.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("API Error: %d", status)
}
