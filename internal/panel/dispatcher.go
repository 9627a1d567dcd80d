package panel

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"dockpanel/internal/constants"
	"dockpanel/internal/container"
	"dockpanel/internal/errors"
	"dockpanel/internal/logger"
	"dockpanel/internal/validation"
)

// ActionResult is the outcome of one user-triggered action
type ActionResult struct {
	ActionID string `json:"action_id"`
	OK       bool   `json:"ok"`
	Output   string `json:"output,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Dispatcher executes restart, run and compose actions against the panel
type Dispatcher struct {
	panel *Panel

	// composeMu serializes writes to the shared compose file
	composeMu sync.Mutex
}

// Restart restarts the container id and re-fetches containers whatever the outcome
func (d *Dispatcher) Restart(ctx context.Context, id string) (ActionResult, error) {
	result, log := d.begin(ctx, "restart")
	log = log.WithField("container_id", id)

	if err := validation.ContainerID(id); err != nil {
		return d.fail(result, log, err), err
	}

	err := d.panel.runtime.Restart(ctx, id)
	if err != nil {
		container.LogContainerError(err, "restart")
		result = d.fail(result, log, err)
	} else {
		log.Info("Container restarted")
		result.OK = true
		result.Output = id
	}

	if refreshErr := d.panel.RefreshContainers(ctx); refreshErr != nil {
		log.WithError(refreshErr).Warn("Refresh after restart failed")
	}
	return result, nil
}

// Run starts image detached with the optional port spec and comma separated env list.
// On success stdout is appended to the console and containers are re-fetched.
func (d *Dispatcher) Run(ctx context.Context, image, ports, envVars string) (ActionResult, error) {
	result, log := d.begin(ctx, "run")

	spec := container.RunSpec{
		Image:   strings.TrimSpace(image),
		Ports:   strings.TrimSpace(ports),
		EnvVars: container.ParseEnvList(envVars),
	}
	log = log.WithField("image", spec.Image)

	if err := validateRunSpec(spec); err != nil {
		return d.fail(result, log, err), err
	}

	stdout, err := d.panel.runtime.Run(ctx, spec)
	if err != nil {
		container.LogContainerError(err, "run")
		return d.fail(result, log, err), nil
	}

	log.WithField("output", stdout).Info("Container started")
	return d.succeed(ctx, result, log, stdout), nil
}

// RunForm runs the image described by the current form fields
func (d *Dispatcher) RunForm(ctx context.Context) (ActionResult, error) {
	form := d.panel.state.Snapshot().Form
	return d.Run(ctx, form.Image, form.Ports, form.EnvVars)
}

// ApplyCompose writes body to the compose path and brings the project up.
// The file is left in place afterwards.
func (d *Dispatcher) ApplyCompose(ctx context.Context, body string) (ActionResult, error) {
	result, log := d.begin(ctx, "compose")
	path := d.panel.opts.ComposePath
	log = log.WithField("path", path)

	d.panel.state.UpdateForm(func(f *Form) { f.ComposeYAML = body })

	compose, err := container.ParseCompose([]byte(body))
	if err != nil {
		return d.fail(result, log, err), err
	}
	log = log.WithField("services", compose.ServiceNames())

	d.composeMu.Lock()
	defer d.composeMu.Unlock()

	if err := writeComposeFile(path, body); err != nil {
		return d.fail(result, log, err), nil
	}

	stdout, err := d.panel.runtime.ComposeUp(ctx, path)
	if err != nil {
		container.LogContainerError(err, "compose_up")
		return d.fail(result, log, err), nil
	}

	log.Info("Compose project applied")
	return d.succeed(ctx, result, log, stdout), nil
}

func (d *Dispatcher) begin(ctx context.Context, action string) (ActionResult, *logrus.Entry) {
	id := uuid.New().String()
	return ActionResult{ActionID: id}, logger.WithContext(ctx).WithFields(logger.Fields{
		"action":    action,
		"action_id": id,
	})
}

func (d *Dispatcher) succeed(ctx context.Context, result ActionResult, log *logrus.Entry, output string) ActionResult {
	result.OK = true
	result.Output = output
	d.panel.state.Append(output)

	if err := d.panel.RefreshContainers(ctx); err != nil {
		log.WithError(err).Warn("Refresh after action failed")
	}
	return result
}

func (d *Dispatcher) fail(result ActionResult, log *logrus.Entry, err error) ActionResult {
	log.WithError(err).Error("Action failed")
	result.OK = false
	result.Error = err.Error()
	d.panel.state.Append(constants.ConsoleErrorPrefix + err.Error())
	return result
}

func validateRunSpec(spec container.RunSpec) error {
	if err := validation.NonEmptyString("image", spec.Image); err != nil {
		return err
	}
	if err := validation.ImageRef(spec.Image); err != nil {
		return err
	}
	if spec.Ports != "" {
		if err := validation.PortMapping(spec.Ports); err != nil {
			return err
		}
	}
	for _, env := range spec.EnvVars {
		if err := validation.EnvironmentVariable(env); err != nil {
			return err
		}
	}
	return nil
}

func writeComposeFile(path, body string) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.Wrap(errors.ErrFileWrite, "Failed to create compose directory", err)
	}
	if err := os.WriteFile(path, []byte(body), constants.FilePermissions); err != nil {
		return errors.Wrap(errors.ErrFileWrite, "Failed to write compose file", err)
	}
	return nil
}
