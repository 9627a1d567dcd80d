package container

import (
	"context"
	"encoding/json"
)

// Runtime is the set of docker operations the panel needs.
// Every method is a single external process invocation.
type Runtime interface {
	// ListContainerIDs returns the IDs of all containers, running or not
	ListContainerIDs(ctx context.Context) ([]string, error)

	// ListDanglingImageIDs returns the IDs of untagged images
	ListDanglingImageIDs(ctx context.Context) ([]string, error)

	// Inspect returns the raw inspection object for a container or image
	Inspect(ctx context.Context, id string) (json.RawMessage, error)

	// Restart restarts a container by ID
	Restart(ctx context.Context, id string) error

	// Run starts a detached container and returns the tool's stdout
	Run(ctx context.Context, spec RunSpec) (string, error)

	// ComposeUp brings up the project described by the compose file at path
	ComposeUp(ctx context.Context, path string) (string, error)

	// IsAvailable checks if the docker CLI can be executed
	IsAvailable(ctx context.Context) bool
}

// RunSpec holds the user supplied parameters of a docker run
type RunSpec struct {
	Image   string   `json:"image"`
	Ports   string   `json:"ports,omitempty"`    // a single publish spec, e.g. "8080:80"
	EnvVars []string `json:"env_vars,omitempty"` // KEY=VALUE entries, one -e each
}
