// Package constants defines application-wide constants to avoid magic numbers
package constants

import "time"

// Network and Port Constants
const (
	// DefaultServerPort is the default port for the panel HTTP server
	DefaultServerPort = 9090

	// DefaultServerHost is the default bind address for the panel HTTP server
	DefaultServerHost = "localhost"
)

// File System Permissions
const (
	// DirPermissions is the standard directory permissions for dockpanel directories
	DirPermissions = 0755

	// FilePermissions is the standard file permissions for config and compose files
	FilePermissions = 0644
)

// Docker CLI defaults
const (
	// DefaultDockerBinary is the docker CLI used for listing, inspecting and running
	DefaultDockerBinary = "docker"

	// DefaultComposeBinary is the compose CLI used to apply uploaded compose files
	DefaultComposeBinary = "docker-compose"

	// DefaultComposePath is the fixed location uploaded compose files are written to
	DefaultComposePath = "/tmp/docker-compose.yml"
)

// Normalization placeholders
const (
	// Sentinel replaces any field missing from an inspection payload
	Sentinel = "NULL"

	// NotApplicable marks optional blocks (port map, health, device requests) that are absent
	NotApplicable = "N/A"

	// ConsoleErrorPrefix marks failed actions in the console buffer
	ConsoleErrorPrefix = "Error: "

	// StatusRunning is the only state string that places a container in the running table
	StatusRunning = "running"
)

// HTTP Configuration
const (
	// DefaultServerReadTimeout is the default server read timeout
	DefaultServerReadTimeout = 10 * time.Second

	// DefaultServerWriteTimeout is the default server write timeout.
	// Actions block until the docker process exits, so this is generous.
	DefaultServerWriteTimeout = 5 * time.Minute

	// DefaultServerShutdownTimeout is the default server graceful shutdown timeout
	DefaultServerShutdownTimeout = 30 * time.Second

	// DockerStatusTTL is how long /health reuses a docker availability probe
	DockerStatusTTL = 5 * time.Second

	// MaxComposeUploadBytes caps the compose body accepted over HTTP
	MaxComposeUploadBytes = 1 << 20
)

// Logging and Output Limits
const (
	// MaxErrorOutputLength is the maximum length of docker output kept in an error string
	MaxErrorOutputLength = 200

	// MaxLoggedOutputLength is the maximum docker output attached to a log entry
	MaxLoggedOutputLength = 1000
)

// Network Port Validation
const (
	// MinPortNumber is the minimum valid TCP port number
	MinPortNumber = 1

	// MaxPortNumber is the maximum valid TCP port number
	MaxPortNumber = 65535
)
