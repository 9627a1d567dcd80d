package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"dockpanel/internal/panel"
)

var noDeadline = time.Time{}

type refreshResponse struct {
	State panel.Snapshot `json:"state"`
	Error string         `json:"error,omitempty"`
}

type stateMessage struct {
	Type  string          `json:"type"`
	State *panel.Snapshot `json:"state,omitempty"`
	Data  string          `json:"data,omitempty"`
}

// Snapshot returns the server's current panel state
func (c *Client) Snapshot(ctx context.Context) (panel.Snapshot, error) {
	var snap panel.Snapshot
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/state", nil)
	if err != nil {
		return snap, err
	}
	err = decode(resp, http.StatusOK, &snap)
	return snap, err
}

// Load asks the server to re-fetch both inventories
func (c *Client) Load(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/api/refresh", nil)
	if err != nil {
		return err
	}

	var result refreshResponse
	if err := decode(resp, http.StatusOK, &result); err != nil {
		return err
	}
	if result.Error != "" {
		return errors.New(result.Error)
	}
	return nil
}

// Restart restarts a container through the server
func (c *Client) Restart(ctx context.Context, id string) (panel.ActionResult, error) {
	return c.action(ctx, "/api/containers/"+url.PathEscape(id)+"/restart", nil)
}

// Run starts a container through the server
func (c *Client) Run(ctx context.Context, image, ports, envVars string) (panel.ActionResult, error) {
	return c.action(ctx, "/api/run", map[string]string{
		"image":    image,
		"ports":    ports,
		"env_vars": envVars,
	})
}

// ApplyCompose uploads a compose body and brings it up through the server
func (c *Client) ApplyCompose(ctx context.Context, body string) (panel.ActionResult, error) {
	return c.action(ctx, "/api/compose", map[string]string{"yaml": body})
}

func (c *Client) action(ctx context.Context, path string, body interface{}) (panel.ActionResult, error) {
	var result panel.ActionResult
	resp, err := c.doRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return result, err
	}
	err = decode(resp, http.StatusAccepted, &result)
	return result, err
}

// WatchState streams snapshots from the server feed until ctx is cancelled
// or the connection drops
func (c *Client) WatchState(ctx context.Context, fn func(panel.Snapshot)) error {
	conn, err := c.WebSocketConnect(ctx, "/api/ws")
	if err != nil {
		return err
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), noDeadline)
		conn.Close()
	}()

	for {
		var msg stateMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("state feed closed: %w", err)
		}
		if msg.Type == "state" && msg.State != nil {
			fn(*msg.State)
		}
	}
}
