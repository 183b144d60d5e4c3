package export

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLimiter_AcquireRelease(t *testing.T) {
	limiter := NewRenderLimiter(2, time.Second)
	ctx := context.Background()

	assert.Equal(t, 0, limiter.ActiveCount())
	assert.Equal(t, 2, limiter.Available())

	require.NoError(t, limiter.Acquire(ctx))
	require.NoError(t, limiter.Acquire(ctx))
	assert.Equal(t, 2, limiter.ActiveCount())
	assert.Equal(t, 0, limiter.Available())

	limiter.Release()
	assert.Equal(t, 1, limiter.ActiveCount())
	assert.Equal(t, 1, limiter.Available())

	limiter.Release()
	assert.Equal(t, 0, limiter.ActiveCount())
}

func TestRenderLimiter_BlocksWhenFull(t *testing.T) {
	limiter := NewRenderLimiter(1, 50*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, limiter.Acquire(ctx))
	defer limiter.Release()

	start := time.Now()
	err := limiter.Acquire(ctx)
	assert.ErrorIs(t, err, ErrTooManyRenders)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRenderLimiter_ContextCancelled(t *testing.T) {
	limiter := NewRenderLimiter(1, time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, limiter.Acquire(ctx), context.Canceled)
}

func TestRenderLimiter_Defaults(t *testing.T) {
	limiter := NewRenderLimiter(0, 0)
	status := limiter.Status()
	assert.Equal(t, DefaultMaxConcurrentRenders, status.MaxConcurrent)
	assert.Equal(t, DefaultMaxConcurrentRenders, status.Available)
	assert.Equal(t, 0, status.Active)
}

func TestRenderLimiter_WaitForDrain(t *testing.T) {
	limiter := NewRenderLimiter(3, time.Second)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Acquire(ctx))
		wg.Add(1)
		go func() {
			defer wg.Done()
			time.Sleep(20 * time.Millisecond)
			limiter.Release()
		}()
	}

	drainCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, limiter.WaitForDrain(drainCtx))
	assert.Equal(t, 0, limiter.ActiveCount())
	wg.Wait()
}

func TestRenderLimiter_WaitForDrainTimeout(t *testing.T) {
	limiter := NewRenderLimiter(1, time.Second)
	require.NoError(t, limiter.Acquire(context.Background()))
	defer limiter.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, limiter.WaitForDrain(ctx), context.DeadlineExceeded)
}
