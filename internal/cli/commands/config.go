package commands

import (
	"fmt"
	"os"

	"dockpanel/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// ConfigCommands creates configuration management commands
func ConfigCommands(cfg *config.Config, path string) []*cobra.Command {
	commands := []*cobra.Command{}

	// dockpanel config show
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			w := cmd.OutOrStdout()
			switch output {
			case "toml":
				fmt.Fprintf(w, "# %s\n", path)
				return toml.NewEncoder(w).Encode(cfg)
			case OutputJSON, OutputYAML:
				return encode(w, output, cfg)
			}
			return fmt.Errorf("unsupported output format %q (use toml, json or yaml)", output)
		},
	}
	showCmd.Flags().StringP("output", "o", "toml", "Output format (toml, json, yaml)")
	commands = append(commands, showCmd)

	// dockpanel config init
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", path)
			}

			if err := config.Default().Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing file")
	commands = append(commands, initCmd)

	// dockpanel config path
	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	commands = append(commands, pathCmd)

	return commands
}
