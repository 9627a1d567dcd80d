package commands

import (
	"fmt"

	"dockpanel/internal/config"
	"dockpanel/internal/logger"

	"github.com/spf13/cobra"
)

// ServerCommands creates the serve and status commands. serve is nil in
// client mode, where a panel server is already running elsewhere.
func ServerCommands(cfg *config.Config, serve ServeFunc, backend Backend) []*cobra.Command {
	commands := []*cobra.Command{}

	// dockpanel serve
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the panel HTTP server",
		Long: `Start the panel HTTP server. It renders the container tables as an HTML
page and exposes the JSON API and WebSocket state feed used by client mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if serve == nil {
				return fmt.Errorf("serve is not available in client mode")
			}

			host, _ := cmd.Flags().GetString("host")
			port, _ := cmd.Flags().GetInt("port")

			logger.WithFields(logger.Fields{
				"host":      host,
				"port":      port,
				"operation": "server_start",
			}).Info("Starting dockpanel server")
			return serve(cmd.Context(), host, port)
		},
	}
	serveCmd.Flags().String("host", cfg.Server.Host, "Address to bind")
	serveCmd.Flags().IntP("port", "p", cfg.Server.Port, "Port to run the server on")
	commands = append(commands, serveCmd)

	// dockpanel status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Check docker or server availability",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := backend.Status(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), status)
			return nil
		},
	}
	commands = append(commands, statusCmd)

	return commands
}
