package container

import (
	"context"
	"os/exec"
	"strings"
	"sync"
)

// scriptedExecutor maps a full argument list to canned output
type scriptedExecutor struct {
	mu      sync.Mutex
	results map[string]scriptedResult
	calls   [][]string
}

type scriptedResult struct {
	stdout string
	stderr string
	fail   bool
}

func newScriptedExecutor() *scriptedExecutor {
	return &scriptedExecutor{results: make(map[string]scriptedResult)}
}

func (s *scriptedExecutor) on(result scriptedResult, name string, args ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[key(name, args)] = result
}

func (s *scriptedExecutor) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, append([]string{name}, args...))

	result, ok := s.results[key(name, args)]
	if !ok {
		return exec.CommandContext(ctx, "sh", "-c", `printf '%s' "$0" >&2; exit 1`, "unexpected command: "+key(name, args))
	}
	if result.fail {
		return exec.CommandContext(ctx, "sh", "-c", `printf '%s' "$0" >&2; exit 1`, result.stderr)
	}
	return exec.CommandContext(ctx, "printf", "%s", result.stdout)
}

func (s *scriptedExecutor) recorded() [][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]string{}, s.calls...)
}

func key(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
