package container

import "strings"

// BuildRunArgs assembles the docker run argument list for spec.
// Each flag value is its own argument, so values with spaces survive intact.
func BuildRunArgs(spec RunSpec) []string {
	args := []string{"run", "-d"}

	if ports := strings.TrimSpace(spec.Ports); ports != "" {
		args = append(args, "-p", ports)
	}

	for _, env := range spec.EnvVars {
		args = append(args, "-e", env)
	}

	return append(args, spec.Image)
}

// ParseEnvList splits the comma separated env field of the run form.
// Entries are trimmed and blanks dropped.
func ParseEnvList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// BuildComposeArgs appends the compose up arguments to the configured compose command
func BuildComposeArgs(command []string, path string) (string, []string) {
	args := append([]string{}, command[1:]...)
	args = append(args, "-f", path, "up", "-d")
	return command[0], args
}
