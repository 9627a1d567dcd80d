package container

import (
	"fmt"
	"strings"

	"dockpanel/internal/constants"
)

// ErrorType represents the type of container error
type ErrorType string

const (
	// ErrorTypeRuntimeNotFound indicates the docker CLI or daemon is not available
	ErrorTypeRuntimeNotFound ErrorType = "runtime_not_found"
	// ErrorTypeContainerNotFound indicates the container or image was not found
	ErrorTypeContainerNotFound ErrorType = "container_not_found"
	// ErrorTypeImageNotFound indicates the image could not be pulled
	ErrorTypeImageNotFound ErrorType = "image_not_found"
	// ErrorTypePermissionDenied indicates a permission error
	ErrorTypePermissionDenied ErrorType = "permission_denied"
	// ErrorTypeNetworkError indicates a network-related error
	ErrorTypeNetworkError ErrorType = "network_error"
	// ErrorTypeMalformedOutput indicates the tool printed something we could not parse
	ErrorTypeMalformedOutput ErrorType = "malformed_output"
	// ErrorTypeConfigError indicates a configuration error
	ErrorTypeConfigError ErrorType = "config_error"
	// ErrorTypeUnknown indicates an unknown error
	ErrorTypeUnknown ErrorType = "unknown"
)

// ContainerError represents a detailed docker invocation error
type ContainerError struct {
	Type        ErrorType
	Operation   string
	ContainerID string
	Message     string
	Underlying  error
	Output      string // stderr (or combined output) from the command
}

// Error implements the error interface
func (e *ContainerError) Error() string {
	parts := []string{e.Message}

	if e.ContainerID != "" {
		parts = append(parts, fmt.Sprintf("container=%s", e.ContainerID))
	}

	if e.Operation != "" {
		parts = append(parts, fmt.Sprintf("operation=%s", e.Operation))
	}

	if e.Output != "" {
		output := strings.TrimSpace(e.Output)
		if len(output) > constants.MaxErrorOutputLength {
			output = output[:constants.MaxErrorOutputLength] + "..."
		}
		parts = append(parts, fmt.Sprintf("output=%s", output))
	}

	if e.Underlying != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", e.Underlying))
	}

	return strings.Join(parts, ", ")
}

// Unwrap returns the underlying error
func (e *ContainerError) Unwrap() error {
	return e.Underlying
}

// NewContainerError creates a new ContainerError
func NewContainerError(errType ErrorType, operation string, message string, underlying error) *ContainerError {
	return &ContainerError{
		Type:       errType,
		Operation:  operation,
		Message:    message,
		Underlying: underlying,
	}
}

// parseDockerError attempts to determine the error type from docker output
func parseDockerError(output string, err error) ErrorType {
	combined := strings.ToLower(output)
	if err != nil {
		combined += " " + strings.ToLower(err.Error())
	}

	switch {
	case strings.Contains(combined, "no such container"), strings.Contains(combined, "no such object"):
		return ErrorTypeContainerNotFound
	case strings.Contains(combined, "no such image"), strings.Contains(combined, "pull access denied"),
		strings.Contains(combined, "repository does not exist"):
		return ErrorTypeImageNotFound
	case strings.Contains(combined, "permission denied"), strings.Contains(combined, "access denied"):
		return ErrorTypePermissionDenied
	case strings.Contains(combined, "cannot connect to the docker daemon"), strings.Contains(combined, "executable file not found"):
		return ErrorTypeRuntimeNotFound
	case strings.Contains(combined, "port is already allocated"), strings.Contains(combined, "network"):
		return ErrorTypeNetworkError
	default:
		return ErrorTypeUnknown
	}
}
