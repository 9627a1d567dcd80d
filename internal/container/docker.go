package container

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"dockpanel/internal/constants"
)

// DockerCLI implements Runtime by invoking the docker command line tool
type DockerCLI struct {
	executor       CommandExecutor
	binary         string
	composeCommand []string
}

// Option customizes a DockerCLI
type Option func(*DockerCLI)

// WithBinary overrides the docker executable
func WithBinary(binary string) Option {
	return func(d *DockerCLI) {
		if binary != "" {
			d.binary = binary
		}
	}
}

// WithComposeCommand overrides the compose invocation, e.g. []string{"docker", "compose"}
func WithComposeCommand(command []string) Option {
	return func(d *DockerCLI) {
		if len(command) > 0 && command[0] != "" {
			d.composeCommand = append([]string{}, command...)
		}
	}
}

// NewDockerCLI creates a new docker CLI runtime
func NewDockerCLI(executor CommandExecutor, opts ...Option) *DockerCLI {
	if executor == nil {
		executor = &DefaultCommandExecutor{}
	}
	d := &DockerCLI{
		executor:       executor,
		binary:         constants.DefaultDockerBinary,
		composeCommand: []string{constants.DefaultComposeBinary},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// IsAvailable checks if docker is available on the system
func (d *DockerCLI) IsAvailable(ctx context.Context) bool {
	cmd := d.executor.CommandContext(ctx, d.binary, "--version")
	return cmd.Run() == nil
}

// ListContainerIDs returns every container ID known to the daemon
func (d *DockerCLI) ListContainerIDs(ctx context.Context) ([]string, error) {
	return d.listIDs(ctx, "list_containers", "ps", "-a", "--format", "{{.ID}}")
}

// ListDanglingImageIDs returns the IDs of images no tag refers to
func (d *DockerCLI) ListDanglingImageIDs(ctx context.Context) ([]string, error) {
	return d.listIDs(ctx, "list_images", "images", "-f", "dangling=true", "--format", "{{.ID}}")
}

func (d *DockerCLI) listIDs(ctx context.Context, operation string, args ...string) ([]string, error) {
	stdout, err := d.output(ctx, args...)
	if err != nil {
		return nil, d.wrap(operation, "", "failed to list IDs", err)
	}
	return splitLines(stdout), nil
}

// Inspect runs docker inspect on id and returns the first object of the result array
func (d *DockerCLI) Inspect(ctx context.Context, id string) (json.RawMessage, error) {
	stdout, err := d.output(ctx, "inspect", id)
	if err != nil {
		return nil, d.wrap("inspect", id, "failed to inspect", err)
	}

	// docker inspect returns an array even for a single ID
	var objects []json.RawMessage
	if err := json.Unmarshal(stdout, &objects); err != nil {
		return nil, &ContainerError{
			Type:        ErrorTypeMalformedOutput,
			Operation:   "inspect",
			ContainerID: id,
			Message:     "failed to parse inspect output",
			Underlying:  err,
		}
	}

	if len(objects) == 0 {
		return nil, &ContainerError{
			Type:        ErrorTypeContainerNotFound,
			Operation:   "inspect",
			ContainerID: id,
			Message:     "inspect returned no objects",
		}
	}

	return objects[0], nil
}

// Restart restarts a container
func (d *DockerCLI) Restart(ctx context.Context, id string) error {
	if _, err := d.output(ctx, "restart", id); err != nil {
		return d.wrap("restart", id, "failed to restart container", err)
	}
	return nil
}

// Run starts a detached container built from spec
func (d *DockerCLI) Run(ctx context.Context, spec RunSpec) (string, error) {
	if spec.Image == "" {
		return "", &ContainerError{
			Type:      ErrorTypeConfigError,
			Operation: "run",
			Message:   "container image is required",
		}
	}

	stdout, err := d.output(ctx, BuildRunArgs(spec)...)
	if err != nil {
		return "", d.wrap("run", "", "failed to run container", err)
	}
	return strings.TrimSpace(string(stdout)), nil
}

// ComposeUp runs "<compose> -f path up -d". Compose reports progress on
// stderr, so the combined output is returned.
func (d *DockerCLI) ComposeUp(ctx context.Context, path string) (string, error) {
	name, args := BuildComposeArgs(d.composeCommand, path)
	cmd := d.executor.CommandContext(ctx, name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &ContainerError{
			Type:       parseDockerError(string(output), err),
			Operation:  "compose_up",
			Message:    "failed to apply compose file",
			Underlying: err,
			Output:     string(output),
		}
	}
	return strings.TrimSpace(string(output)), nil
}

// output runs the docker binary and returns stdout; stderr is kept on the error
func (d *DockerCLI) output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := d.executor.CommandContext(ctx, d.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	stdout, err := cmd.Output()
	if err != nil {
		return nil, &commandError{err: err, stderr: stderr.String()}
	}
	return stdout, nil
}

func (d *DockerCLI) wrap(operation, id, message string, err error) error {
	output := ""
	var cmdErr *commandError
	if errors.As(err, &cmdErr) {
		output = cmdErr.stderr
		err = cmdErr.err
	}
	return &ContainerError{
		Type:        parseDockerError(output, err),
		Operation:   operation,
		ContainerID: id,
		Message:     message,
		Underlying:  err,
		Output:      output,
	}
}

type commandError struct {
	err    error
	stderr string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("%v: %s", e.err, strings.TrimSpace(e.stderr))
}

func (e *commandError) Unwrap() error { return e.err }

// ExitCode returns the process exit code carried by err, if any
func ExitCode(err error) (int, bool) {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), true
	}
	return 0, false
}

// splitLines splits newline-delimited listing output, dropping blank lines
func splitLines(output []byte) []string {
	var ids []string
	for _, line := range strings.Split(string(output), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			ids = append(ids, line)
		}
	}
	return ids
}
