package cli

import (
	"github.com/spf13/cobra"
)

// createRootCommand creates the root command with global flags
func createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dockpanel",
		Short: "Administrative panel for a single Docker host",
		Long: `dockpanel lists the containers and unused images of a Docker host and
lets you restart containers, run images and apply compose files. It drives
the docker CLI directly, or a running 'dockpanel serve' instance when
--server or DOCKPANEL_SERVER is set.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to showing help if no subcommand
			return cmd.Help()
		},
	}

	// Both are resolved before cobra runs; declared here so they parse
	rootCmd.PersistentFlags().String("server", "", "URL of a running dockpanel server (client mode)")
	rootCmd.PersistentFlags().String("config", "", "Path to configuration file")

	return rootCmd
}
