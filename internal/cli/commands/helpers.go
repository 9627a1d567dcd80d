package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Output formats accepted by -o
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case OutputTable, OutputJSON, OutputYAML:
		return nil
	}
	return fmt.Errorf("unsupported output format %q (use table, json or yaml)", format)
}

// consoleDelta returns what was appended to the console between before and after
func consoleDelta(before, after string) string {
	delta := after
	if strings.HasPrefix(after, before) {
		delta = after[len(before):]
	}
	return strings.TrimPrefix(delta, "\n")
}

// readInput reads a file, or stdin when name is "-"
func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func shortID(id string) string {
	id = strings.TrimPrefix(id, "sha256:")
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
