// Package lazy provides lazily loaded values that can expire
package lazy

import (
	"context"
	"sync"
	"time"
)

// Loader function signature for lazy loading
type Loader[T any] func(ctx context.Context) (T, error)

// Lazy represents a lazy-loaded value. With a TTL the value is loaded
// again on the first Get after it expires.
type Lazy[T any] struct {
	loader Loader[T]
	ttl    time.Duration
	now    func() time.Time

	mutex    sync.Mutex
	value    T
	err      error
	loaded   bool
	loadedAt time.Time
}

// New creates a lazy value that is loaded once
func New[T any](loader Loader[T]) *Lazy[T] {
	return &Lazy[T]{
		loader: loader,
		now:    time.Now,
	}
}

// NewWithTTL creates a lazy value that is reloaded once it is older than ttl
func NewWithTTL[T any](loader Loader[T], ttl time.Duration) *Lazy[T] {
	l := New(loader)
	l.ttl = ttl
	return l
}

// Get returns the value, loading it if necessary. Concurrent callers
// share one load.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	if !l.loaded || l.expired() {
		l.value, l.err = l.loader(ctx)
		l.loaded = true
		l.loadedAt = l.now()
	}

	return l.value, l.err
}

func (l *Lazy[T]) expired() bool {
	return l.ttl > 0 && l.now().Sub(l.loadedAt) >= l.ttl
}

// IsLoaded returns true if a value is loaded and not expired
func (l *Lazy[T]) IsLoaded() bool {
	l.mutex.Lock()
	defer l.mutex.Unlock()
	return l.loaded && !l.expired()
}

// Reset clears the cached value, forcing reload on next Get
func (l *Lazy[T]) Reset() {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	var zero T
	l.value = zero
	l.err = nil
	l.loaded = false
}
