package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dockpanel/internal/client"
	"dockpanel/internal/config"
	"dockpanel/internal/panel"
	"dockpanel/internal/server"
	"dockpanel/internal/testutil"
)

type listing struct {
	Running []map[string]string `json:"running"`
	Stopped []map[string]string `json:"stopped"`
}

func newLocalManager(t *testing.T, rt *testutil.FakeRuntime) (*Manager, *bytes.Buffer) {
	t.Helper()
	opts := panel.DefaultOptions()
	opts.ComposePath = t.TempDir() + "/docker-compose.yml"
	p := panel.New(rt, opts)

	m := New(config.Default(), t.TempDir()+"/config.toml")
	var out bytes.Buffer
	m.SetOutput(&out, &out)
	m.SetBackend(NewLocalBackend(p, rt), nil)
	return m, &out
}

func TestLocalPs(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.AddContainer("c1", "web", "running")
	rt.AddContainer("c2", "db", "exited")

	m, out := newLocalManager(t, rt)
	require.NoError(t, m.Execute([]string{"ps", "-o", "json"}))

	var got listing
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Running, 1)
	require.Len(t, got.Stopped, 1)
	assert.Equal(t, "web", got.Running[0]["name"])
	assert.Equal(t, "db", got.Stopped[0]["name"])
}

func TestLocalRestartPrintsID(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.AddContainer("c1", "web", "exited")

	m, out := newLocalManager(t, rt)
	require.NoError(t, m.Execute([]string{"restart", "c1"}))
	assert.Equal(t, "c1\n", out.String())
	assert.Equal(t, 1, rt.CallCount("Restart"))
	// restart always re-fetches containers
	assert.Equal(t, 1, rt.CallCount("ListContainerIDs"))
}

func TestLocalStatus(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	m, out := newLocalManager(t, rt)

	require.NoError(t, m.Execute([]string{"status"}))
	assert.Contains(t, out.String(), "docker: available")

	rt.SetError("IsAvailable", assert.AnError)
	m, _ = newLocalManager(t, rt)
	assert.Error(t, m.Execute([]string{"status"}))
}

func TestRemoteBackend(t *testing.T) {
	rt := testutil.NewFakeRuntime()
	rt.AddContainer("c1", "web", "running")
	rt.RunOutput = "deadbeef"
	opts := panel.DefaultOptions()
	opts.ComposePath = t.TempDir() + "/docker-compose.yml"
	p := panel.New(rt, opts)

	ts := httptest.NewServer(server.New(nil, p, rt).Handler())
	defer ts.Close()

	c, err := client.New(ts.URL)
	require.NoError(t, err)

	m := New(config.Default(), "")
	var out bytes.Buffer
	m.SetOutput(&out, &out)
	m.SetBackend(NewRemoteBackend(c), nil)

	require.NoError(t, m.ExecuteWithContext(context.Background(), []string{"run", "--image", "nginx:latest"}))
	assert.Equal(t, "deadbeef\n", out.String())
	assert.Contains(t, p.Snapshot().Console, "deadbeef")

	out.Reset()
	status, err := NewRemoteBackend(c).Status(context.Background())
	require.NoError(t, err)
	assert.Contains(t, status, "server: healthy")
	assert.Contains(t, status, ts.URL)
}

func TestServeDisabledWithoutHook(t *testing.T) {
	m, _ := newLocalManager(t, testutil.NewFakeRuntime())
	err := m.Execute([]string{"serve"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client mode")
}

func TestGlobalFlagsAccepted(t *testing.T) {
	m, out := newLocalManager(t, testutil.NewFakeRuntime())
	require.NoError(t, m.Execute([]string{"--server", "", "config", "path"}))
	assert.Contains(t, out.String(), "config.toml")
}
