package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"dockpanel/internal/cli/commands"
	"dockpanel/internal/config"
)

// Manager handles CLI operations
type Manager struct {
	config     *config.Config
	configPath string
	backend    Backend
	serve      ServeFunc
	rootCmd    *cobra.Command
}

// New creates a new CLI manager
func New(cfg *config.Config, configPath string) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	m := &Manager{
		config:     cfg,
		configPath: configPath,
	}

	// Use the root command from root.go
	m.rootCmd = createRootCommand()

	return m
}

// SetBackend sets the backend the commands drive and the serve hook
// (nil in client mode), then registers the commands
func (m *Manager) SetBackend(backend Backend, serve ServeFunc) {
	m.backend = backend
	m.serve = serve
	m.setupCommands()
}

// SetOutput redirects command output, used by tests
func (m *Manager) SetOutput(out, errOut io.Writer) {
	m.rootCmd.SetOut(out)
	m.rootCmd.SetErr(errOut)
}

// SetInput redirects stdin for 'compose apply -'
func (m *Manager) SetInput(in io.Reader) {
	m.rootCmd.SetIn(in)
}

// Execute executes the CLI with the given arguments
func (m *Manager) Execute(args []string) error {
	return m.ExecuteWithContext(context.Background(), args)
}

// ExecuteWithContext executes the CLI with the given arguments and context
func (m *Manager) ExecuteWithContext(ctx context.Context, args []string) error {
	m.rootCmd.SetArgs(args)
	return m.rootCmd.ExecuteContext(ctx)
}

// setupCommands sets up all CLI commands
func (m *Manager) setupCommands() {
	for _, cmd := range commands.InventoryCommands(m.backend) {
		m.rootCmd.AddCommand(cmd)
	}

	for _, cmd := range commands.ActionCommands(m.backend) {
		m.rootCmd.AddCommand(cmd)
	}

	for _, cmd := range commands.ServerCommands(m.config, m.serve, m.backend) {
		m.rootCmd.AddCommand(cmd)
	}

	// Add configuration commands
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Configuration management commands",
		Aliases: []string{"cfg"},
	}
	for _, cmd := range commands.ConfigCommands(m.config, m.configPath) {
		configCmd.AddCommand(cmd)
	}
	m.rootCmd.AddCommand(configCmd)
}
