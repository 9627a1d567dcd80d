package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"dockpanel/internal/cli"
	"dockpanel/internal/client"
	"dockpanel/internal/config"
	"dockpanel/internal/container"
	"dockpanel/internal/logger"
	"dockpanel/internal/panel"
	"dockpanel/internal/server"
)

// App represents the main application
type App struct {
	Config     *config.Config
	ConfigPath string

	// Local components (nil in client mode)
	Runtime container.Runtime
	Panel   *panel.Panel

	// Client components (only used in client mode)
	Client *client.Client
	CLI    *cli.Manager

	executor container.CommandExecutor
	stdout   io.Writer
	stderr   io.Writer
}

// Option configures an App
type Option func(*App)

// WithExecutor replaces the process executor used for docker invocations
func WithExecutor(executor container.CommandExecutor) Option {
	return func(a *App) {
		a.executor = executor
	}
}

// WithOutput redirects command output
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// New creates a new application instance
func New(opts ...Option) *App {
	a := &App{
		executor: &container.DefaultCommandExecutor{},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run starts the application in the appropriate mode
func (a *App) Run(args []string) error {
	return a.RunWithContext(context.Background(), args)
}

// RunWithContext starts the application with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	configPath := flagValue(args, "--config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if configPath == "" {
		if configPath, err = config.DefaultPath(); err != nil {
			return err
		}
	}

	a.Config = cfg
	a.ConfigPath = configPath
	logger.SetLevel(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)

	a.CLI = cli.New(cfg, configPath)
	a.CLI.SetOutput(a.stdout, a.stderr)

	// Check if client mode is requested via environment variable or --server flag
	serverURL := flagValue(args, "--server")
	if serverURL == "" {
		serverURL = os.Getenv("DOCKPANEL_SERVER")
	}

	if serverURL != "" {
		err = a.setupClient(serverURL)
	} else {
		a.setupLocal()
	}
	if err != nil {
		return err
	}

	// Show help if no arguments provided
	if len(args) == 0 {
		return a.CLI.ExecuteWithContext(ctx, []string{"--help"})
	}

	return a.CLI.ExecuteWithContext(ctx, args)
}

// setupLocal wires the CLI to an in-process panel over the docker CLI
func (a *App) setupLocal() {
	a.Runtime = container.NewDockerCLI(a.executor,
		container.WithBinary(a.Config.Docker.Binary),
		container.WithComposeCommand(a.Config.Docker.ComposeCommand),
	)

	a.Panel = panel.New(a.Runtime, panel.Options{
		FailFast:    a.Config.IsFailFast(),
		ComposePath: a.Config.Compose.Path,
	})

	a.CLI.SetBackend(cli.NewLocalBackend(a.Panel, a.Runtime), a.serve)
}

// setupClient wires the CLI to a remote panel server
func (a *App) setupClient(serverURL string) error {
	apiClient, err := client.New(serverURL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	a.Client = apiClient

	logger.WithField("server", apiClient.BaseURL()).Debug("Running in client mode")
	a.CLI.SetBackend(cli.NewRemoteBackend(apiClient), nil)
	return nil
}

// serve runs the HTTP panel over the local panel
func (a *App) serve(ctx context.Context, host string, port int) error {
	serverConfig := server.DefaultConfig()
	serverConfig.Host = host
	serverConfig.Port = port
	serverConfig.LogLevel = a.Config.Log.Level

	return server.New(serverConfig, a.Panel, a.Runtime).Start(ctx)
}

// flagValue extracts --name value or --name=value from args before cobra parses them
func flagValue(args []string, name string) string {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			return args[i+1]
		}
		if strings.HasPrefix(arg, name+"=") {
			return strings.TrimPrefix(arg, name+"=")
		}
	}
	return ""
}
