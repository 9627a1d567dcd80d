package integration_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"dockpanel/internal/client"
	"dockpanel/internal/container"
	"dockpanel/internal/panel"
	"dockpanel/internal/server"

	"github.com/stretchr/testify/suite"
)

// dockerScript answers docker CLI invocations from a table, so the whole
// stack from DockerCLI to the HTTP client runs without a daemon
type dockerScript struct {
	mu      sync.Mutex
	outputs map[string]string
	failing map[string]string
	calls   []string
}

func newDockerScript() *dockerScript {
	return &dockerScript{
		outputs: make(map[string]string),
		failing: make(map[string]string),
	}
}

func (d *dockerScript) on(command, stdout string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.failing, command)
	d.outputs[command] = stdout
}

func (d *dockerScript) fail(command, stderr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failing[command] = stderr
}

func (d *dockerScript) count(command string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, c := range d.calls {
		if c == command {
			n++
		}
	}
	return n
}

func (d *dockerScript) CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	d.mu.Lock()
	defer d.mu.Unlock()

	command := strings.TrimSpace(name + " " + strings.Join(args, " "))
	d.calls = append(d.calls, command)

	if stderr, ok := d.failing[command]; ok {
		return exec.CommandContext(ctx, "sh", "-c", `printf '%s' "$0" >&2; exit 1`, stderr)
	}
	stdout, ok := d.outputs[command]
	if !ok {
		return exec.CommandContext(ctx, "sh", "-c", `printf '%s' "$0" >&2; exit 1`, "unexpected command: "+command)
	}
	return exec.CommandContext(ctx, "printf", "%s", stdout)
}

func inspectJSON(id, name, status string) string {
	return fmt.Sprintf(`[{
  "Id": %q,
  "Name": "/%s",
  "State": {"Status": %q, "Health": {"Status": "healthy"}},
  "Mounts": [{"Source": "/srv/%s", "Destination": "/data"}],
  "Config": {"Image": "nginx:latest", "Hostname": %q},
  "HostConfig": {"DeviceRequests": [{"Capabilities": [["gpu"]]}]},
  "NetworkSettings": {"Ports": {"80/tcp": [{"HostIp": "0.0.0.0", "HostPort": "8080"}], "443/tcp": null}}
}]`, id, name, status, name, id)
}

type PanelLifecycleTestSuite struct {
	suite.Suite
	script      *dockerScript
	panel       *panel.Panel
	client      *client.Client
	httpServer  *httptest.Server
	composePath string
}

func (s *PanelLifecycleTestSuite) SetupTest() {
	s.script = newDockerScript()
	s.composePath = filepath.Join(s.T().TempDir(), "docker-compose.yml")

	s.script.on("docker --version", "Docker version 27.3.1")
	s.script.on("docker ps -a --format {{.ID}}", "aaa111\nbbb222\n")
	s.script.on("docker inspect aaa111", inspectJSON("aaa111", "web", "running"))
	s.script.on("docker inspect bbb222", inspectJSON("bbb222", "worker", "exited"))
	s.script.on("docker images -f dangling=true --format {{.ID}}", "sha256:ccc333\n")
	s.script.on("docker inspect sha256:ccc333", `[{"Id": "sha256:ccc333", "RepoTags": [], "Size": 73400320}]`)

	runtime := container.NewDockerCLI(s.script)
	s.panel = panel.New(runtime, panel.Options{FailFast: true, ComposePath: s.composePath})
	s.httpServer = httptest.NewServer(server.New(nil, s.panel, runtime).Handler())

	var err error
	s.client, err = client.New(s.httpServer.URL)
	s.Require().NoError(err)
}

func (s *PanelLifecycleTestSuite) TearDownTest() {
	s.httpServer.Close()
}

func (s *PanelLifecycleTestSuite) TestInventoryRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.client.Load(ctx))

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Require().Len(snap.Running, 1)
	s.Require().Len(snap.Stopped, 1)
	s.Require().Len(snap.Unused, 1)

	web := snap.Running[0]
	s.Equal("web", web.Name)
	s.Equal("0.0.0.0:8080->80/tcp, 443/tcp", web.Ports)
	s.Equal("/srv/web:/data", web.Mounts)
	s.Equal("healthy", web.Health)
	s.Equal("gpu", web.GPU)
	s.Equal("aaa111", web.Host)

	s.Equal("worker", snap.Stopped[0].Name)
	s.Equal("N/A", snap.Unused[0].RepoTags)
	s.Equal("73.4MB", snap.Unused[0].SizeHuman)
}

func (s *PanelLifecycleTestSuite) TestFailFastKeepsPreviousInventory() {
	ctx := context.Background()
	s.Require().NoError(s.client.Load(ctx))

	s.script.on("docker ps -a --format {{.ID}}", "aaa111\nbbb222\nddd444\n")
	s.script.fail("docker inspect ddd444", "Error: No such object: ddd444")

	s.Error(s.client.Load(ctx))

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Len(snap.Running, 1)
	s.Len(snap.Stopped, 1)
	s.NotContains(snap.Console, "ddd444")
}

func (s *PanelLifecycleTestSuite) TestRestartMovesContainerToRunning() {
	ctx := context.Background()
	s.Require().NoError(s.client.Load(ctx))

	s.script.on("docker restart bbb222", "bbb222\n")
	s.script.on("docker inspect bbb222", inspectJSON("bbb222", "worker", "running"))

	result, err := s.client.Restart(ctx, "bbb222")
	s.Require().NoError(err)
	s.True(result.OK)

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Len(snap.Running, 2)
	s.Empty(snap.Stopped)
}

func (s *PanelLifecycleTestSuite) TestRestartFailureStillRefreshes() {
	ctx := context.Background()
	s.script.fail("docker restart bbb222", "Error response from daemon: permission denied")

	result, err := s.client.Restart(ctx, "bbb222")
	s.Require().NoError(err)
	s.False(result.OK)
	s.Contains(result.Error, "failed to restart container")

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Contains(snap.Console, "Error: ")
	s.Len(snap.Stopped, 1)
	s.Equal(1, s.script.count("docker ps -a --format {{.ID}}"))
}

func (s *PanelLifecycleTestSuite) TestRunWithPortsAndEnv() {
	ctx := context.Background()
	s.script.on("docker run -d -p 8081:80 -e A=1 -e B=two words nginx:alpine", "f00dfeed\n")

	result, err := s.client.Run(ctx, "nginx:alpine", "8081:80", "A=1, B=two words,")
	s.Require().NoError(err)
	s.True(result.OK, result.Error)
	s.Equal("f00dfeed", result.Output)

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Contains(snap.Console, "\nf00dfeed")
	s.Equal("nginx:alpine", snap.Form.Image)
}

func (s *PanelLifecycleTestSuite) TestRunFailureDoesNotRefresh() {
	ctx := context.Background()
	s.script.fail("docker run -d missing:latest", "pull access denied for missing")

	result, err := s.client.Run(ctx, "missing:latest", "", "")
	s.Require().NoError(err)
	s.False(result.OK)

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Contains(snap.Console, "Error: ")
	s.Equal(0, s.script.count("docker ps -a --format {{.ID}}"))
}

func (s *PanelLifecycleTestSuite) TestComposeApplyWritesFileAndRunsUp() {
	ctx := context.Background()
	body := "version: \"3\"\nservices:\n  web:\n    image: nginx\n"
	s.script.on("docker-compose -f "+s.composePath+" up -d", "Creating web ... done")

	result, err := s.client.ApplyCompose(ctx, body)
	s.Require().NoError(err)
	s.True(result.OK, result.Error)

	written, err := os.ReadFile(s.composePath)
	s.Require().NoError(err)
	s.Equal(body, string(written))

	info, err := os.Stat(s.composePath)
	s.Require().NoError(err)
	s.Equal(os.FileMode(0644), info.Mode().Perm())

	snap, err := s.client.Snapshot(ctx)
	s.Require().NoError(err)
	s.Contains(snap.Console, "Creating web ... done")
}

func (s *PanelLifecycleTestSuite) TestStateFeedFollowsActions() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snaps := make(chan panel.Snapshot, 16)
	done := make(chan error, 1)
	go func() {
		done <- s.client.WatchState(ctx, func(snap panel.Snapshot) { snaps <- snap })
	}()

	select {
	case <-snaps:
	case <-ctx.Done():
		s.FailNow("no initial snapshot")
	}

	s.script.on("docker run -d redis:7", "beefcafe")
	_, err := s.client.Run(ctx, "redis:7", "", "")
	s.Require().NoError(err)

	for {
		select {
		case snap := <-snaps:
			if strings.Contains(snap.Console, "beefcafe") && len(snap.Running) == 1 {
				cancel()
				s.NoError(<-done)
				return
			}
		case <-ctx.Done():
			s.FailNow("state feed never showed the run")
		}
	}
}

func (s *PanelLifecycleTestSuite) TestHealthReportsDocker() {
	health, err := s.client.Health(context.Background())
	s.Require().NoError(err)
	s.Equal("available", health.Docker)
}

func TestPanelLifecycleTestSuite(t *testing.T) {
	suite.Run(t, new(PanelLifecycleTestSuite))
}
