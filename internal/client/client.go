// Package client is a Go client for the cmdapi HTTP interface.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xdg/cmdapi/internal/api"
	"github.com/xdg/cmdapi/internal/service"
)

// DefaultServer is the server address used when none is given.
const DefaultServer = "http://127.0.0.1:8000"

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Detail)
}

// Timeout reports whether the server gave up waiting for the command.
func (e *APIError) Timeout() bool {
	return e.StatusCode == http.StatusRequestTimeout
}

// IsTimeout reports whether err is an APIError for a command timeout.
func IsTimeout(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Timeout()
}

// Client talks to a cmdapi server.
type Client struct {
	// BaseURL is the server's base URL (e.g., "http://127.0.0.1:8000").
	BaseURL string

	// HTTPClient is the HTTP client used for requests.
	// If nil, http.DefaultClient is used. Commands may run for a long time,
	// so bound calls with the context rather than a client timeout.
	HTTPClient *http.Client
}

// New creates a client for server. A bare host:port is given an http://
// scheme; an empty server uses DefaultServer.
func New(server string) *Client {
	if server == "" {
		server = DefaultServer
	}
	if !strings.Contains(server, "://") {
		server = "http://" + server
	}
	return &Client{BaseURL: strings.TrimRight(server, "/")}
}

// Execute runs a command on the server.
func (c *Client) Execute(ctx context.Context, req service.CommandRequest) (*service.CommandResult, error) {
	var res service.CommandResult
	if err := c.do(ctx, http.MethodPost, "/execute", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Plan runs the planning command on the server.
func (c *Client) Plan(ctx context.Context, req service.PlanRequest) (*service.CommandResult, error) {
	var res service.CommandResult
	if err := c.do(ctx, http.MethodPost, "/claude-plan", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Health returns the server's health status.
func (c *Client) Health(ctx context.Context) (string, error) {
	var res api.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/health", nil, &res); err != nil {
		return "", err
	}
	return res.Status, nil
}

// do executes an HTTP request. If body is not nil it is JSON-encoded as the
// request body; the 200 response is decoded into result.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errResp api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			apiErr.Detail = errResp.Detail
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
