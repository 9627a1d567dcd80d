package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
)

// Client talks to a running dockpanel server over HTTP and WebSocket
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client instance
func New(serverURL string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}

	// "localhost:9090" parses with the host as scheme
	if u.Host == "" {
		u, err = url.Parse("http://" + serverURL)
		if err != nil {
			return nil, fmt.Errorf("invalid server URL: %w", err)
		}
	}

	return &Client{
		baseURL: u.String(),
		httpClient: &http.Client{
			// actions block until the docker process exits
			Timeout: 5 * time.Minute,
		},
	}, nil
}

// BaseURL returns the normalized server URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request with a JSON body
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// decode reads a JSON response, turning non-expected statuses into an *APIError
func decode(resp *http.Response, expected int, v interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode != expected {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = string(bytes.TrimSpace(data))
		}
		if apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// APIError is a non-success response from the server
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
	Code       string `json:"code,omitempty"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	if e.Details != "" {
		msg += ": " + e.Details
	}
	return msg
}

// WebSocketConnect establishes a WebSocket connection to path
func (c *Client) WebSocketConnect(ctx context.Context, path string) (*websocket.Conn, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}

	wsScheme := "ws"
	if u.Scheme == "https" {
		wsScheme = "wss"
	}

	wsURL := fmt.Sprintf("%s://%s%s", wsScheme, u.Host, path)

	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	conn, _, err := dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("WebSocket connection failed: %w", err)
	}

	return conn, nil
}

// HealthStatus is the server health payload
type HealthStatus struct {
	Status string `json:"status"`
	Docker string `json:"docker"`
	Uptime string `json:"uptime"`
}

// Health checks the health of the server
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var health HealthStatus
	if err := decode(resp, http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
