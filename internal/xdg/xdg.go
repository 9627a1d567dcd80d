// Package xdg provides XDG Base Directory Specification compliant paths
package xdg

import (
	"fmt"
	"os"
	"path/filepath"
)

const appName = "dockpanel"

// ConfigDir returns the XDG config directory for dockpanel
// Priority: XDG_CONFIG_HOME > ~/.config/dockpanel
func ConfigDir() (string, error) {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName), nil
}

// StateDir returns the XDG state directory for dockpanel
// Priority: XDG_STATE_HOME > ~/.local/state/dockpanel
func StateDir() (string, error) {
	if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
		return filepath.Join(xdgState, appName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state", appName), nil
}

// RuntimeDir returns the XDG runtime directory for dockpanel
// Priority: XDG_RUNTIME_DIR > /tmp/dockpanel-$UID
func RuntimeDir() (string, error) {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, appName), nil
	}

	uid := os.Getuid()
	return filepath.Join("/tmp", fmt.Sprintf("%s-%d", appName, uid)), nil
}

// LogsDir returns the directory for storing log files
func LogsDir() string {
	stateDir, err := StateDir()
	if err != nil {
		runtimeDir, _ := RuntimeDir()
		return filepath.Join(runtimeDir, "logs")
	}
	return filepath.Join(stateDir, "logs")
}
