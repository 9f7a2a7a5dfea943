package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/animerec/anirec/internal/log"
	"github.com/goccy/go-json"
)

const requestTimeout = 15 * time.Second

// Client talks to the anime recommendation backend.  One instance is shared
// by every view; the bearer token is attached to each request once set.
// Requests run in their own goroutines while login/logout update the token
// from the event loop, so token access is guarded.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates a backend client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SetToken sets the bearer token used to authorize subsequent calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Error is the typed error for non-2xx backend responses.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// do issues a request and decodes the JSON response into out (nil to discard the body).
// Non-2xx statuses are returned as *Error with the backend's message attached.
func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.bearerToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to backend failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode backend response: %w", err)
	}
	return nil
}

// decodeError extracts the backend's error message from an error response body.
// The backend surfaces messages under detail, message or error depending on the endpoint.
func decodeError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("Failed to read error response body", "status", resp.StatusCode, "error", err)
		return apiErr
	}

	var payload struct {
		Detail  any    `json:"detail"`
		Message string `json:"message"`
		ErrMsg  string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return apiErr
	}

	switch {
	case payload.Detail != nil:
		if s, ok := payload.Detail.(string); ok {
			apiErr.Detail = s
		} else {
			// Validation errors arrive as structured detail; flatten for display
			apiErr.Detail = fmt.Sprintf("%v", payload.Detail)
		}
	case payload.Message != "":
		apiErr.Detail = payload.Message
	case payload.ErrMsg != "":
		apiErr.Detail = payload.ErrMsg
	}

	return apiErr
}
