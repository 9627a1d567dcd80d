package server

import (
	"dockpanel/internal/panel"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error" example:"Invalid container ID"`
	Code      string `json:"code,omitempty" example:"CONTAINER_INVALID_ID"`
	Details   string `json:"details,omitempty" example:"ID: abc;rm"`
	RequestID string `json:"request_id,omitempty" example:"cq2v7k0jdb8c73f0q3a0"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status" example:"healthy"`
	Docker string `json:"docker" example:"available"`
	Uptime string `json:"uptime" example:"2h30m15s"`
}

// RefreshResponse carries the state after a reload and the fetch error, if any.
// The state is unchanged for any inventory whose fetch failed.
type RefreshResponse struct {
	State panel.Snapshot `json:"state"`
	Error string         `json:"error,omitempty" example:"failed to list containers"`
}

// RunRequest represents a request to start a container.
// Empty fields fall back to the stored form.
type RunRequest struct {
	Image   string `json:"image" form:"image" example:"nginx:latest"`
	Ports   string `json:"ports" form:"ports" example:"8080:80"`
	EnvVars string `json:"env_vars" form:"env_vars" example:"VAR1=value1,VAR2=value2"`
}

// ComposeRequest carries a compose file body
type ComposeRequest struct {
	YAML string `json:"yaml" form:"yaml" example:"services:\n  web:\n    image: nginx\n"`
}

// FormRequest updates the stored form fields
type FormRequest struct {
	Image       *string `json:"image,omitempty" form:"image"`
	Ports       *string `json:"ports,omitempty" form:"ports"`
	EnvVars     *string `json:"env_vars,omitempty" form:"env_vars"`
	ComposeYAML *string `json:"compose_yaml,omitempty" form:"compose_yaml"`
}

// apply copies the set fields onto f
func (r FormRequest) apply(f *panel.Form) {
	if r.Image != nil {
		f.Image = *r.Image
	}
	if r.Ports != nil {
		f.Ports = *r.Ports
	}
	if r.EnvVars != nil {
		f.EnvVars = *r.EnvVars
	}
	if r.ComposeYAML != nil {
		f.ComposeYAML = *r.ComposeYAML
	}
}

// ClientMessage represents messages from the websocket client
type ClientMessage struct {
	Type string `json:"type"` // 'ping', 'refresh'
}

// ServerMessage represents messages pushed to the websocket client
type ServerMessage struct {
	Type  string          `json:"type"` // 'state', 'pong', 'error'
	State *panel.Snapshot `json:"state,omitempty"`
	Data  string          `json:"data,omitempty"`
}
