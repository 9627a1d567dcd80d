package cli

import (
	"context"
	"fmt"

	"dockpanel/internal/client"
	"dockpanel/internal/container"
	"dockpanel/internal/panel"
)

// LocalBackend runs commands against an in-process panel
type LocalBackend struct {
	panel   *panel.Panel
	runtime container.Runtime
}

// NewLocalBackend wraps p; runtime answers status checks
func NewLocalBackend(p *panel.Panel, runtime container.Runtime) *LocalBackend {
	return &LocalBackend{panel: p, runtime: runtime}
}

func (b *LocalBackend) Load(ctx context.Context) error {
	return b.panel.Load(ctx)
}

func (b *LocalBackend) Snapshot(ctx context.Context) (panel.Snapshot, error) {
	return b.panel.Snapshot(), nil
}

func (b *LocalBackend) Restart(ctx context.Context, id string) (panel.ActionResult, error) {
	return b.panel.Dispatcher().Restart(ctx, id)
}

func (b *LocalBackend) Run(ctx context.Context, image, ports, envVars string) (panel.ActionResult, error) {
	return b.panel.Dispatcher().Run(ctx, image, ports, envVars)
}

func (b *LocalBackend) ApplyCompose(ctx context.Context, body string) (panel.ActionResult, error) {
	return b.panel.Dispatcher().ApplyCompose(ctx, body)
}

func (b *LocalBackend) Status(ctx context.Context) (string, error) {
	if !b.runtime.IsAvailable(ctx) {
		return "", container.NewContainerError(container.ErrorTypeRuntimeNotFound, "status",
			"docker CLI is not available", nil)
	}
	return "docker: available", nil
}

// RemoteBackend runs commands against a dockpanel server
type RemoteBackend struct {
	*client.Client
}

// NewRemoteBackend wraps c
func NewRemoteBackend(c *client.Client) *RemoteBackend {
	return &RemoteBackend{Client: c}
}

func (b *RemoteBackend) Status(ctx context.Context) (string, error) {
	health, err := b.Health(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("server: %s (%s)\ndocker: %s\nuptime: %s",
		health.Status, b.BaseURL(), health.Docker, health.Uptime), nil
}
