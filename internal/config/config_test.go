package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "docker", cfg.Docker.Binary)
	assert.Equal(t, []string{"docker-compose"}, cfg.Docker.ComposeCommand)
	assert.Equal(t, "/tmp/docker-compose.yml", cfg.Compose.Path)
	assert.True(t, cfg.IsFailFast())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[server]
port = 8181

[docker]
compose_command = ["docker", "compose"]

[fetch]
fail_fast = false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host, "unset values keep defaults")
	assert.Equal(t, []string{"docker", "compose"}, cfg.Docker.ComposeCommand)
	assert.False(t, cfg.IsFailFast())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DOCKPANEL_PORT", "7070")
	t.Setenv("DOCKPANEL_COMPOSE_COMMAND", "docker compose")
	t.Setenv("DOCKPANEL_COMPOSE_PATH", "/var/tmp/panel-compose.yml")
	t.Setenv("DOCKPANEL_FAIL_FAST", "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, []string{"docker", "compose"}, cfg.Docker.ComposeCommand)
	assert.Equal(t, "/var/tmp/panel-compose.yml", cfg.Compose.Path)
	assert.False(t, cfg.IsFailFast())
}

func TestLoad_InvalidEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DOCKPANEL_PORT", "not-a-port")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nport = "), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port too high", func(c *Config) { c.Server.Port = 70000 }},
		{"empty docker binary", func(c *Config) { c.Docker.Binary = "" }},
		{"empty compose command", func(c *Config) { c.Docker.ComposeCommand = nil }},
		{"relative compose path", func(c *Config) { c.Compose.Path = "compose.yml" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.Server.Port = 9191
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, loaded.Server.Port)
	assert.True(t, loaded.IsFailFast())
}
