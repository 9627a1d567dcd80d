package panel

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dockpanel/internal/constants"
	"dockpanel/internal/container"
	"dockpanel/internal/errors"
	"dockpanel/internal/inventory"
	"dockpanel/internal/logger"
)

// Options configures a Panel
type Options struct {
	// FailFast discards a whole fetch when any inspection fails
	FailFast bool
	// ComposePath is where uploaded compose files are written
	ComposePath string
}

// DefaultOptions returns the options matching the stock configuration
func DefaultOptions() Options {
	return Options{
		FailFast:    true,
		ComposePath: constants.DefaultComposePath,
	}
}

// Panel ties the inventory fetcher to the shared UI state
type Panel struct {
	state   *State
	fetcher *inventory.Fetcher
	runtime container.Runtime
	opts    Options

	dispatcher *Dispatcher
}

// New creates a panel over runtime
func New(runtime container.Runtime, opts Options) *Panel {
	if opts.ComposePath == "" {
		opts.ComposePath = constants.DefaultComposePath
	}
	p := &Panel{
		state:   NewState(),
		fetcher: inventory.NewFetcher(runtime),
		runtime: runtime,
		opts:    opts,
	}
	p.dispatcher = &Dispatcher{panel: p}
	return p
}

// State returns the shared panel state
func (p *Panel) State() *State {
	return p.state
}

// Snapshot returns a copy of the current state
func (p *Panel) Snapshot() Snapshot {
	return p.state.Snapshot()
}

// Dispatcher returns the action dispatcher bound to this panel
func (p *Panel) Dispatcher() *Dispatcher {
	return p.dispatcher
}

// Load fetches containers and images concurrently. Both refreshes always run;
// the returned error joins their failures.
func (p *Panel) Load(ctx context.Context) error {
	var containersErr, imagesErr error

	var g errgroup.Group
	g.Go(func() error {
		containersErr = p.RefreshContainers(ctx)
		return nil
	})
	g.Go(func() error {
		imagesErr = p.RefreshImages(ctx)
		return nil
	})
	_ = g.Wait()

	return errors.Join(containersErr, imagesErr)
}

// RefreshContainers re-fetches the container inventory.
// A listing failure keeps the previous lists. Inspection failures follow the FailFast policy.
func (p *Panel) RefreshContainers(ctx context.Context) error {
	batch := p.fetcher.FetchContainers(ctx)
	records, err := applyPolicy(p, "containers", batch)
	if records != nil {
		p.state.SetContainers(records)
	}
	return err
}

// RefreshImages re-fetches the dangling image inventory
func (p *Panel) RefreshImages(ctx context.Context) error {
	batch := p.fetcher.FetchImages(ctx)
	records, err := applyPolicy(p, "images", batch)
	if records != nil {
		p.state.SetImages(records)
	}
	return err
}

// applyPolicy decides which records of batch reach the state. A nil slice
// means the state must be left untouched.
func applyPolicy[T any](p *Panel, kind string, batch inventory.Batch[T]) ([]T, error) {
	err := batch.Err()
	if err == nil {
		return batch.Records(), nil
	}

	wrapped := errors.Wrap(errors.ErrInventoryFailed, fmt.Sprintf("Failed to fetch %s", kind), err)
	log := logger.WithFields(logger.Fields{
		"inventory": kind,
		"fail_fast": p.opts.FailFast,
	})

	if batch.ListErr != nil || p.opts.FailFast {
		log.WithError(err).Error("Inventory fetch failed, keeping previous state")
		return nil, wrapped
	}

	for _, item := range batch.Failed() {
		log.WithField("id", item.ID).WithError(item.Err).Warn("Inspection failed, applying partial inventory")
		p.state.Append(constants.ConsoleErrorPrefix + item.Err.Error())
	}
	return batch.Records(), wrapped
}
