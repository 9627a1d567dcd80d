package lazy

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counter() (*atomic.Int32, Loader[int]) {
	var calls atomic.Int32
	return &calls, func(ctx context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}
}

func TestLoadsOnce(t *testing.T) {
	calls, loader := counter()
	l := New(loader)
	assert.False(t, l.IsLoaded())

	for i := 0; i < 3; i++ {
		v, err := l.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, v)
	}
	assert.Equal(t, int32(1), calls.Load())
	assert.True(t, l.IsLoaded())
}

func TestErrorIsCached(t *testing.T) {
	var calls int
	l := New(func(ctx context.Context) (string, error) {
		calls++
		return "", errors.New("boom")
	})

	_, err := l.Get(context.Background())
	assert.EqualError(t, err, "boom")
	_, err = l.Get(context.Background())
	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

func TestReset(t *testing.T) {
	calls, loader := counter()
	l := New(loader)

	_, _ = l.Get(context.Background())
	l.Reset()
	assert.False(t, l.IsLoaded())

	v, err := l.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestTTLExpiry(t *testing.T) {
	calls, loader := counter()
	l := NewWithTTL(loader, time.Minute)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	v, _ := l.Get(context.Background())
	assert.Equal(t, 1, v)

	now = now.Add(30 * time.Second)
	v, _ = l.Get(context.Background())
	assert.Equal(t, 1, v)
	assert.True(t, l.IsLoaded())

	now = now.Add(30 * time.Second)
	assert.False(t, l.IsLoaded())
	v, _ = l.Get(context.Background())
	assert.Equal(t, 2, v)
	assert.Equal(t, int32(2), calls.Load())
}

func TestConcurrentGetSharesLoad(t *testing.T) {
	calls, loader := counter()
	l := New(loader)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Get(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
