package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"dockpanel/internal/inventory"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// InventoryCommands creates the ps and images listing commands
func InventoryCommands(backend Backend) []*cobra.Command {
	commands := []*cobra.Command{}

	// dockpanel ps
	psCmd := &cobra.Command{
		Use:     "ps",
		Short:   "List running and stopped containers",
		Aliases: []string{"containers"},
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := validateOutput(output); err != nil {
				return err
			}

			if err := backend.Load(cmd.Context()); err != nil {
				return err
			}
			snap, err := backend.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch output {
			case OutputJSON, OutputYAML:
				return encode(w, output, containerListing{Running: snap.Running, Stopped: snap.Stopped})
			}

			fmt.Fprintln(w, "RUNNING")
			printContainers(w, snap.Running)
			fmt.Fprintln(w)
			fmt.Fprintln(w, "STOPPED")
			printContainers(w, snap.Stopped)
			return nil
		},
	}
	psCmd.Flags().StringP("output", "o", OutputTable, "Output format (table, json, yaml)")
	commands = append(commands, psCmd)

	// dockpanel images
	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "List unused (dangling) images",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			if err := validateOutput(output); err != nil {
				return err
			}

			if err := backend.Load(cmd.Context()); err != nil {
				return err
			}
			snap, err := backend.Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if output != OutputTable {
				return encode(w, output, snap.Unused)
			}
			if len(snap.Unused) == 0 {
				fmt.Fprintln(w, "No unused images")
				return nil
			}
			printImages(w, snap.Unused)
			return nil
		},
	}
	imagesCmd.Flags().StringP("output", "o", OutputTable, "Output format (table, json, yaml)")
	commands = append(commands, imagesCmd)

	return commands
}

type containerListing struct {
	Running []inventory.ContainerRecord `json:"running" yaml:"running"`
	Stopped []inventory.ContainerRecord `json:"stopped" yaml:"stopped"`
}

func encode(w io.Writer, format string, v interface{}) error {
	if format == OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printContainers(out io.Writer, records []inventory.ContainerRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTAINER ID\tNAME\tIMAGE\tSTATUS\tHEALTH\tPORTS\tMOUNTS\tGPU")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.ID), r.Name, r.Image, r.Status, r.Health, r.Ports, r.Mounts, r.GPU)
	}

	w.Flush()
}

func printImages(out io.Writer, records []inventory.ImageRecord) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "IMAGE ID\tREPO TAGS\tSIZE")

	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\n", shortID(r.ID), r.RepoTags, r.SizeHuman)
	}

	w.Flush()
}
