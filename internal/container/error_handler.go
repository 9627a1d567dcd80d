package container

import (
	"errors"
	"strings"
)

// UserMessage returns a short explanation of err with recovery hints,
// used by the CLI when an action fails
func UserMessage(err error) string {
	var containerErr *ContainerError
	if !errors.As(err, &containerErr) {
		return err.Error()
	}

	var message strings.Builder
	message.WriteString(containerErr.Message)

	switch containerErr.Type {
	case ErrorTypeRuntimeNotFound:
		message.WriteString("\n\nPossible solutions:")
		message.WriteString("\n• Ensure Docker is installed: https://docs.docker.com/get-docker/")
		message.WriteString("\n• Check if the Docker daemon is running: 'docker ps'")

	case ErrorTypeImageNotFound:
		message.WriteString("\n\nPossible solutions:")
		message.WriteString("\n• Check if the image name is correct")
		message.WriteString("\n• Try pulling the image manually: 'docker pull <image>'")

	case ErrorTypePermissionDenied:
		message.WriteString("\n\nPossible solutions:")
		message.WriteString("\n• Add your user to the docker group: 'sudo usermod -aG docker $USER'")
		message.WriteString("\n• Log out and back in for group changes to take effect")

	case ErrorTypeNetworkError:
		if strings.Contains(containerErr.Output, "port is already allocated") {
			message.WriteString("\n\nPort conflict detected. Stop the container using the port or pick another one.")
		}

	case ErrorTypeContainerNotFound:
		message.WriteString("\n\nContainer not found. List all containers with 'dockpanel ps'.")
	}

	if cleaned := strings.TrimSpace(containerErr.Output); cleaned != "" && len(cleaned) < 500 {
		message.WriteString("\n\nDocker output:\n")
		message.WriteString(cleaned)
	}

	return message.String()
}
