package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"dockpanel/internal/panel"

	"github.com/spf13/cobra"
)

// ActionFailedError reports an action the backend ran but docker rejected.
// The console delta already carries the message.
type ActionFailedError struct {
	ActionID string
	Message  string
}

func (e *ActionFailedError) Error() string {
	return e.Message
}

// ActionCommands creates the restart, run and compose commands
func ActionCommands(backend Backend) []*cobra.Command {
	commands := []*cobra.Command{}

	// dockpanel restart <id>
	restartCmd := &cobra.Command{
		Use:   "restart <container-id>",
		Short: "Restart a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(cmd.Context(), cmd.OutOrStdout(), backend, func(ctx context.Context) (panel.ActionResult, error) {
				return backend.Restart(ctx, args[0])
			})
		},
	}
	commands = append(commands, restartCmd)

	// dockpanel run --image --ports --env
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run an image as a detached container",
		Long: `Run an image with docker run -d. Ports take a single docker port spec
(e.g. 8080:80) and env takes comma-separated KEY=VALUE pairs.`,
		Example: `  dockpanel run --image nginx:latest --ports 8080:80 --env FOO=bar,DEBUG=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			image, _ := cmd.Flags().GetString("image")
			ports, _ := cmd.Flags().GetString("ports")
			envVars, _ := cmd.Flags().GetString("env")
			if strings.TrimSpace(image) == "" {
				return fmt.Errorf("--image is required")
			}

			return runAction(cmd.Context(), cmd.OutOrStdout(), backend, func(ctx context.Context) (panel.ActionResult, error) {
				return backend.Run(ctx, image, ports, envVars)
			})
		},
	}
	runCmd.Flags().StringP("image", "i", "", "Image to run")
	runCmd.Flags().StringP("ports", "p", "", "Port mapping (host:container)")
	runCmd.Flags().StringP("env", "e", "", "Comma-separated environment variables")
	commands = append(commands, runCmd)

	// dockpanel compose apply <file|->
	composeCmd := &cobra.Command{
		Use:   "compose",
		Short: "Compose file commands",
	}
	applyCmd := &cobra.Command{
		Use:   "apply <file|->",
		Short: "Upload a compose file and bring it up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readInput(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			return runAction(cmd.Context(), cmd.OutOrStdout(), backend, func(ctx context.Context) (panel.ActionResult, error) {
				return backend.ApplyCompose(ctx, string(body))
			})
		},
	}
	composeCmd.AddCommand(applyCmd)
	commands = append(commands, composeCmd)

	return commands
}

// runAction runs fn and prints what the action appended to the console
func runAction(ctx context.Context, w io.Writer, backend Backend, fn func(context.Context) (panel.ActionResult, error)) error {
	before, err := backend.Snapshot(ctx)
	if err != nil {
		return err
	}

	result, err := fn(ctx)
	if err != nil {
		return err
	}

	after, err := backend.Snapshot(ctx)
	if err != nil {
		return err
	}

	delta := consoleDelta(before.Console, after.Console)
	if delta == "" && result.OK {
		// restart reports only through the log
		delta = result.Output
	}
	if delta != "" {
		fmt.Fprintln(w, delta)
	}

	if !result.OK {
		return &ActionFailedError{ActionID: result.ActionID, Message: result.Error}
	}
	return nil
}
