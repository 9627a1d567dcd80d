package container

import (
	"errors"

	"dockpanel/internal/constants"
	"dockpanel/internal/logger"
)

// LogContainerError logs a docker invocation error with structured fields
func LogContainerError(err error, operation string) {
	if err == nil {
		return
	}

	fields := logger.Fields{
		"operation": operation,
	}

	var containerErr *ContainerError
	if errors.As(err, &containerErr) {
		fields["error_type"] = string(containerErr.Type)
		if containerErr.ContainerID != "" {
			fields["container_id"] = containerErr.ContainerID
		}
		if containerErr.Output != "" && len(containerErr.Output) < constants.MaxLoggedOutputLength {
			fields["docker_output"] = containerErr.Output
		}
	}

	logger.WithFields(fields).WithError(err).Error("Docker operation failed")
}
