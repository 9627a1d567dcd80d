package commands

import (
	"context"

	"dockpanel/internal/panel"
)

// fakeBackend records calls and appends to a console the way the panel does
type fakeBackend struct {
	snap    panel.Snapshot
	result  panel.ActionResult
	err     error
	loadErr error
	status  string

	loads    int
	restarts []string
	runs     [][3]string
	composes []string
}

func (f *fakeBackend) Load(ctx context.Context) error {
	f.loads++
	return f.loadErr
}

func (f *fakeBackend) Snapshot(ctx context.Context) (panel.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeBackend) act() (panel.ActionResult, error) {
	if f.err != nil {
		return panel.ActionResult{}, f.err
	}
	if f.result.OK {
		f.snap.Console += "\n" + f.result.Output
	} else {
		f.snap.Console += "\nError: " + f.result.Error
	}
	return f.result, nil
}

func (f *fakeBackend) Restart(ctx context.Context, id string) (panel.ActionResult, error) {
	f.restarts = append(f.restarts, id)
	return f.act()
}

func (f *fakeBackend) Run(ctx context.Context, image, ports, envVars string) (panel.ActionResult, error) {
	f.runs = append(f.runs, [3]string{image, ports, envVars})
	return f.act()
}

func (f *fakeBackend) ApplyCompose(ctx context.Context, body string) (panel.ActionResult, error) {
	f.composes = append(f.composes, body)
	return f.act()
}

func (f *fakeBackend) Status(ctx context.Context) (string, error) {
	return f.status, f.err
}
