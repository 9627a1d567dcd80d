package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/stretchr/testify/mock"

	"dockpanel/internal/container"
)

// MockRuntime is a testify mock of container.Runtime
type MockRuntime struct {
	mock.Mock
}

var _ container.Runtime = (*MockRuntime)(nil)

func (m *MockRuntime) ListContainerIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRuntime) ListDanglingImageIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockRuntime) Inspect(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockRuntime) Restart(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockRuntime) Run(ctx context.Context, spec container.RunSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *MockRuntime) ComposeUp(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

func (m *MockRuntime) IsAvailable(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

// FakeRuntime is an in-memory container.Runtime backed by canned inspection payloads
type FakeRuntime struct {
	mu         sync.RWMutex
	containers map[string]json.RawMessage
	order      []string
	images     map[string]json.RawMessage
	imageOrder []string
	errors     map[string]error
	calls      map[string][]interface{}

	// RunOutput is returned by Run on success
	RunOutput string
	// ComposeOutput is returned by ComposeUp on success
	ComposeOutput string
	// OnRun is called by Run when set, e.g. to add the started container
	OnRun func(spec container.RunSpec)
}

// NewFakeRuntime creates an empty fake runtime
func NewFakeRuntime() *FakeRuntime {
	return &FakeRuntime{
		containers: make(map[string]json.RawMessage),
		images:     make(map[string]json.RawMessage),
		errors:     make(map[string]error),
		calls:      make(map[string][]interface{}),
	}
}

// AddContainer registers a container with the given state status
func (f *FakeRuntime) AddContainer(id, name, status string) {
	f.AddContainerJSON(id, json.RawMessage(ContainerJSON(id, name, status)))
}

// AddContainerJSON registers a container with an arbitrary inspection payload
func (f *FakeRuntime) AddContainerJSON(id string, raw json.RawMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.containers[id]; !ok {
		f.order = append(f.order, id)
	}
	f.containers[id] = raw
}

// AddImage registers a dangling image
func (f *FakeRuntime) AddImage(id string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.images[id]; !ok {
		f.imageOrder = append(f.imageOrder, id)
	}
	f.images[id] = json.RawMessage(fmt.Sprintf(`{"Id":%q,"RepoTags":[],"Size":%d}`, id, size))
}

// SetError makes method fail. For Inspect the key is "Inspect:<id>".
func (f *FakeRuntime) SetError(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.errors, method)
		return
	}
	f.errors[method] = err
}

// GetCalls returns the arguments of every call to method
func (f *FakeRuntime) GetCalls(method string) []interface{} {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]interface{}{}, f.calls[method]...)
}

// CallCount returns how many times method was called
func (f *FakeRuntime) CallCount(method string) int {
	return len(f.GetCalls(method))
}

func (f *FakeRuntime) record(method string, arg interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method] = append(f.calls[method], arg)
	return f.errors[method]
}

func (f *FakeRuntime) ListContainerIDs(ctx context.Context) ([]string, error) {
	if err := f.record("ListContainerIDs", nil); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string{}, f.order...), nil
}

func (f *FakeRuntime) ListDanglingImageIDs(ctx context.Context) ([]string, error) {
	if err := f.record("ListDanglingImageIDs", nil); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string{}, f.imageOrder...), nil
}

func (f *FakeRuntime) Inspect(ctx context.Context, id string) (json.RawMessage, error) {
	if err := f.record("Inspect", id); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if err := f.errors["Inspect:"+id]; err != nil {
		return nil, err
	}
	if raw, ok := f.containers[id]; ok {
		return raw, nil
	}
	if raw, ok := f.images[id]; ok {
		return raw, nil
	}
	return nil, container.NewContainerError(container.ErrorTypeContainerNotFound, "inspect", "no such object: "+id, nil)
}

func (f *FakeRuntime) Restart(ctx context.Context, id string) error {
	if err := f.record("Restart", id); err != nil {
		return err
	}
	f.mu.RLock()
	_, ok := f.containers[id]
	f.mu.RUnlock()
	if !ok {
		return container.NewContainerError(container.ErrorTypeContainerNotFound, "restart", "no such container: "+id, nil)
	}
	return nil
}

func (f *FakeRuntime) Run(ctx context.Context, spec container.RunSpec) (string, error) {
	if err := f.record("Run", spec); err != nil {
		return "", err
	}
	if f.OnRun != nil {
		f.OnRun(spec)
	}
	return f.RunOutput, nil
}

func (f *FakeRuntime) ComposeUp(ctx context.Context, path string) (string, error) {
	if err := f.record("ComposeUp", path); err != nil {
		return "", err
	}
	return f.ComposeOutput, nil
}

func (f *FakeRuntime) IsAvailable(ctx context.Context) bool {
	return f.record("IsAvailable", nil) == nil
}

// ContainerIDs returns the registered container IDs in sorted order
func (f *FakeRuntime) ContainerIDs() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	ids := append([]string{}, f.order...)
	sort.Strings(ids)
	return ids
}

// ContainerJSON returns a minimal inspection payload for a container
func ContainerJSON(id, name, status string) string {
	return fmt.Sprintf(`{
  "Id": %q,
  "Name": "/%s",
  "State": {"Status": %q},
  "HostConfig": {},
  "Mounts": [],
  "Config": {"Image": "nginx:latest", "Hostname": %q},
  "NetworkSettings": {"Ports": {"80/tcp": [{"HostIp": "0.0.0.0", "HostPort": "8080"}]}}
}`, id, name, status, id)
}
