package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"dockpanel/internal/container"
	"dockpanel/internal/logger"
)

// HandleError processes errors and provides user-friendly output
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	// Check if it's a container error
	var containerErr *container.ContainerError
	if errors.As(err, &containerErr) {
		// Log the full error for debugging
		logger.WithError(err).Debug("Container operation failed")

		return fmt.Errorf("%s", container.UserMessage(containerErr))
	}

	// Check for common error patterns and provide helpful messages
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "permission denied"):
		return fmt.Errorf("%v\n\nTip: Check that your user can access the docker socket.", err)

	case strings.Contains(errStr, "connection refused"):
		return fmt.Errorf("%v\n\nTip: Is the panel server running? Start it with 'dockpanel serve'.", err)

	case strings.Contains(errStr, "no such file or directory"):
		return fmt.Errorf("%v\n\nTip: Check if the path exists and is accessible.", err)

	default:
		return err
	}
}

// ExitCode maps err to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var containerErr *container.ContainerError
	if errors.As(err, &containerErr) {
		// Use specific exit codes for different error types
		switch containerErr.Type {
		case container.ErrorTypeRuntimeNotFound:
			return 127 // Command not found
		case container.ErrorTypePermissionDenied:
			return 126 // Permission denied
		case container.ErrorTypeContainerNotFound, container.ErrorTypeImageNotFound:
			return 2 // No such file or directory
		}
	}

	return 1
}

// ReportError writes err to w unless the console delta already showed it,
// and returns the exit code
func ReportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}

	var actionErr *ActionFailedError
	if !errors.As(err, &actionErr) {
		fmt.Fprintf(w, "Error: %v\n", HandleError(err))
	}

	return ExitCode(err)
}
