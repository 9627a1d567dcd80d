package commands

import (
	"context"

	"dockpanel/internal/panel"
)

// Backend is what the inventory and action commands drive. It is served
// either by a local panel over the docker CLI or by a remote panel server.
type Backend interface {
	Load(ctx context.Context) error
	Snapshot(ctx context.Context) (panel.Snapshot, error)
	Restart(ctx context.Context, id string) (panel.ActionResult, error)
	Run(ctx context.Context, image, ports, envVars string) (panel.ActionResult, error)
	ApplyCompose(ctx context.Context, body string) (panel.ActionResult, error)
	// Status describes the backend, e.g. the docker version or server health
	Status(ctx context.Context) (string, error)
}

// ServeFunc starts the HTTP panel on host:port and blocks until shutdown
type ServeFunc func(ctx context.Context, host string, port int) error
