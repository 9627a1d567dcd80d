package validation

import (
	"path/filepath"
	"regexp"
	"strings"

	"dockpanel/internal/errors"

	"github.com/docker/go-connections/nat"
)

var (
	// containerIDRegex validates container IDs and names
	containerIDRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.-]*$`)

	// imageRefRegex validates image references (registry/repo:tag@digest)
	imageRefRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9_.\-/:@]*$`)

	// envVarKeyRegex rejects keys that docker would misread
	envVarKeyRegex = regexp.MustCompile(`^[^=\s]+$`)
)

// ContainerID validates a container ID or name to prevent injection
func ContainerID(id string) error {
	if id == "" {
		return errors.ValidationFailed("container_id", id, "cannot be empty")
	}

	if len(id) > 255 {
		return errors.ValidationFailed("container_id", id, "too long (max 255 characters)")
	}

	if !containerIDRegex.MatchString(id) {
		return errors.ContainerInvalidID(id)
	}

	return nil
}

// ImageRef validates an image reference passed as the last docker run argument
func ImageRef(image string) error {
	if strings.TrimSpace(image) == "" {
		return errors.ValidationFailed("image", image, "cannot be empty")
	}
	if !imageRefRegex.MatchString(image) {
		return errors.ValidationFailed("image", image, "must be a valid image reference")
	}
	return nil
}

// EnvironmentVariable validates a docker -e value (KEY or KEY=VALUE).
// The value part is opaque and may contain spaces.
func EnvironmentVariable(envVar string) error {
	key, _, _ := strings.Cut(envVar, "=")
	if key == "" {
		return errors.ValidationFailed("environment_variable", envVar, "key cannot be empty")
	}
	if !envVarKeyRegex.MatchString(key) {
		return errors.ValidationFailed("environment_variable_key", key, "must not contain whitespace")
	}
	return nil
}

// PortMapping validates a docker -p publish spec using docker's own parser
// ([ip:][hostPort:]containerPort[/proto], ranges allowed)
func PortMapping(port string) error {
	if _, err := nat.ParsePortSpec(port); err != nil {
		return errors.InvalidPort(port, err.Error())
	}
	return nil
}

// Path validates and cleans an absolute file path
func Path(path string) (string, error) {
	if path == "" {
		return "", errors.ValidationFailed("path", path, "cannot be empty")
	}

	cleaned := filepath.Clean(path)
	if !filepath.IsAbs(cleaned) {
		return "", errors.ValidationFailed("path", path, "must be absolute")
	}

	return cleaned, nil
}

// NonEmptyString validates that a string is not empty or only whitespace
func NonEmptyString(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.ValidationFailed(field, s, "cannot be empty or only whitespace")
	}
	return nil
}
