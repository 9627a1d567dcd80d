package inventory

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"dockpanel/internal/container"
	"dockpanel/internal/errors"
)

// Item is the outcome of inspecting a single listed ID
type Item[T any] struct {
	ID     string
	Record T
	Err    error
}

// Batch is the result of one fetch: the listing error, or one Item per
// listed ID in listing order.
type Batch[T any] struct {
	ListErr error
	Items   []Item[T]
}

// Err joins the listing error and every item error; nil when the batch is complete
func (b Batch[T]) Err() error {
	if b.ListErr != nil {
		return b.ListErr
	}
	var errs []error
	for _, item := range b.Items {
		if item.Err != nil {
			errs = append(errs, item.Err)
		}
	}
	return errors.Join(errs...)
}

// Records returns the successfully normalized records in listing order
func (b Batch[T]) Records() []T {
	records := make([]T, 0, len(b.Items))
	for _, item := range b.Items {
		if item.Err == nil {
			records = append(records, item.Record)
		}
	}
	return records
}

// Failed returns the items whose inspection or normalization failed
func (b Batch[T]) Failed() []Item[T] {
	var failed []Item[T]
	for _, item := range b.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Fetcher lists containers and dangling images and inspects each one concurrently
type Fetcher struct {
	runtime container.Runtime
}

// NewFetcher creates a fetcher backed by runtime
func NewFetcher(runtime container.Runtime) *Fetcher {
	return &Fetcher{runtime: runtime}
}

// FetchContainers lists every container and inspects them all
func (f *Fetcher) FetchContainers(ctx context.Context) Batch[ContainerRecord] {
	ids, err := f.runtime.ListContainerIDs(ctx)
	if err != nil {
		return Batch[ContainerRecord]{ListErr: fmt.Errorf("failed to list containers: %w", err)}
	}
	return inspectAll(ctx, f.runtime, ids, NormalizeContainer)
}

// FetchImages lists dangling images and inspects them all
func (f *Fetcher) FetchImages(ctx context.Context) Batch[ImageRecord] {
	ids, err := f.runtime.ListDanglingImageIDs(ctx)
	if err != nil {
		return Batch[ImageRecord]{ListErr: fmt.Errorf("failed to list images: %w", err)}
	}
	return inspectAll(ctx, f.runtime, ids, NormalizeImage)
}

// inspectAll runs one inspection per ID with no concurrency limit.
// Each goroutine owns its slot of items, so no locking is needed.
func inspectAll[T any](ctx context.Context, runtime container.Runtime, ids []string, normalize func(json.RawMessage) (T, error)) Batch[T] {
	items := make([]Item[T], len(ids))

	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			items[i].ID = id
			raw, err := runtime.Inspect(ctx, id)
			if err != nil {
				items[i].Err = fmt.Errorf("inspect %s: %w", id, err)
				return nil
			}
			record, err := normalize(raw)
			if err != nil {
				items[i].Err = fmt.Errorf("inspect %s: %w", id, err)
				return nil
			}
			items[i].Record = record
			return nil
		})
	}
	_ = g.Wait()

	return Batch[T]{Items: items}
}
