package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"dockpanel/internal/constants"
	"dockpanel/internal/xdg"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the dockpanel configuration file
type Config struct {
	Server  ServerConfig  `toml:"server" json:"server" yaml:"server"`
	Docker  DockerConfig  `toml:"docker" json:"docker" yaml:"docker"`
	Compose ComposeConfig `toml:"compose" json:"compose" yaml:"compose"`
	Fetch   FetchConfig   `toml:"fetch" json:"fetch" yaml:"fetch"`
	Log     LogConfig     `toml:"log" json:"log" yaml:"log"`
}

type ServerConfig struct {
	Host string `toml:"host" json:"host" yaml:"host"`
	Port int    `toml:"port" json:"port" yaml:"port"`
}

type DockerConfig struct {
	Binary         string   `toml:"binary" json:"binary" yaml:"binary"`                            // docker CLI (default "docker")
	ComposeCommand []string `toml:"compose_command" json:"compose_command" yaml:"compose_command"` // e.g. ["docker-compose"] or ["docker", "compose"]
}

type ComposeConfig struct {
	Path string `toml:"path" json:"path" yaml:"path"` // where uploaded compose bodies are written
}

type FetchConfig struct {
	// FailFast discards a whole inventory refresh when any inspection fails
	FailFast *bool `toml:"fail_fast" json:"fail_fast" yaml:"fail_fast"`
}

type LogConfig struct {
	Level  string `toml:"level" json:"level" yaml:"level"`
	Format string `toml:"format" json:"format" yaml:"format"`
}

// Default returns the default configuration
func Default() *Config {
	failFast := true
	return &Config{
		Server: ServerConfig{
			Host: constants.DefaultServerHost,
			Port: constants.DefaultServerPort,
		},
		Docker: DockerConfig{
			Binary:         constants.DefaultDockerBinary,
			ComposeCommand: []string{constants.DefaultComposeBinary},
		},
		Compose: ComposeConfig{
			Path: constants.DefaultComposePath,
		},
		Fetch: FetchConfig{
			FailFast: &failFast,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// IsFailFast reports whether inventory refreshes are all-or-nothing
func (c *Config) IsFailFast() bool {
	return c.Fetch.FailFast == nil || *c.Fetch.FailFast
}

// DefaultPath returns the config file location under the XDG config dir
func DefaultPath() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config at path (or the default location when path is empty),
// fills defaults for missing values and applies environment overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		var fileCfg Config
		if err := toml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.merge(&fileCfg)
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// merge copies every non-zero value from other onto c
func (c *Config) merge(other *Config) {
	if other.Server.Host != "" {
		c.Server.Host = other.Server.Host
	}
	if other.Server.Port != 0 {
		c.Server.Port = other.Server.Port
	}
	if other.Docker.Binary != "" {
		c.Docker.Binary = other.Docker.Binary
	}
	if len(other.Docker.ComposeCommand) > 0 {
		c.Docker.ComposeCommand = other.Docker.ComposeCommand
	}
	if other.Compose.Path != "" {
		c.Compose.Path = other.Compose.Path
	}
	if other.Fetch.FailFast != nil {
		c.Fetch.FailFast = other.Fetch.FailFast
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
}

// ApplyEnvOverrides reads DOCKPANEL_* variables on top of the file values.
//
// Environment variables supported:
// - DOCKPANEL_HOST (string)
// - DOCKPANEL_PORT (int)
// - DOCKPANEL_DOCKER (string, docker binary)
// - DOCKPANEL_COMPOSE_COMMAND (string, space separated, e.g. "docker compose")
// - DOCKPANEL_COMPOSE_PATH (string)
// - DOCKPANEL_FAIL_FAST (bool)
// - DOCKPANEL_LOG_LEVEL (string)
// - DOCKPANEL_LOG_FORMAT (string)
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("DOCKPANEL_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("DOCKPANEL_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DOCKPANEL_PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("DOCKPANEL_DOCKER"); v != "" {
		c.Docker.Binary = v
	}
	if v := os.Getenv("DOCKPANEL_COMPOSE_COMMAND"); v != "" {
		c.Docker.ComposeCommand = strings.Fields(v)
	}
	if v := os.Getenv("DOCKPANEL_COMPOSE_PATH"); v != "" {
		c.Compose.Path = v
	}
	if v := os.Getenv("DOCKPANEL_FAIL_FAST"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DOCKPANEL_FAIL_FAST %q: %w", v, err)
		}
		c.Fetch.FailFast = &b
	}
	if v := os.Getenv("DOCKPANEL_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("DOCKPANEL_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	return nil
}

// Validate checks the configuration for values the panel cannot work with
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if c.Server.Port < constants.MinPortNumber || c.Server.Port > constants.MaxPortNumber {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.Docker.Binary == "" {
		return fmt.Errorf("docker binary cannot be empty")
	}
	if len(c.Docker.ComposeCommand) == 0 || c.Docker.ComposeCommand[0] == "" {
		return fmt.Errorf("compose command cannot be empty")
	}
	if c.Compose.Path == "" || !filepath.IsAbs(c.Compose.Path) {
		return fmt.Errorf("compose path must be absolute: %q", c.Compose.Path)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

// Save writes the configuration as TOML to path, creating parent directories
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	return os.WriteFile(path, data, constants.FilePermissions)
}
