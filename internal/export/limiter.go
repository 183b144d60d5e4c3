package export

// limiter.go bounds concurrent PDF renders.
//
// Rendering is CPU and memory heavy compared to CSV, so the limiter uses a
// semaphore to cap parallel renders. When every slot is taken a request waits
// up to maxWait before failing with ErrTooManyRenders. WaitForDrain lets the
// server finish in-flight renders during shutdown.

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTooManyRenders is returned when no render slot frees up in time.
var ErrTooManyRenders = errors.New("too many renders in progress, please try again later")

// DefaultMaxConcurrentRenders is the default limit for parallel renders.
const DefaultMaxConcurrentRenders = 4

// DefaultRenderWait is how long to wait for a slot before rejecting.
const DefaultRenderWait = 10 * time.Second

// RenderLimiter caps concurrent document renders.
type RenderLimiter struct {
	semaphore chan struct{}
	maxWait   time.Duration

	mu     sync.RWMutex
	active int
}

// NewRenderLimiter allows at most maxConcurrent renders at once.
func NewRenderLimiter(maxConcurrent int, maxWait time.Duration) *RenderLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentRenders
	}
	if maxWait <= 0 {
		maxWait = DefaultRenderWait
	}

	return &RenderLimiter{
		semaphore: make(chan struct{}, maxConcurrent),
		maxWait:   maxWait,
	}
}

// Acquire waits for a render slot.
// The caller MUST call Release when the render completes.
func (l *RenderLimiter) Acquire(ctx context.Context) error {
	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.semaphore <- struct{}{}:
		l.mu.Lock()
		l.active++
		l.mu.Unlock()
		return nil

	case <-waitCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrTooManyRenders
	}
}

// Release frees a slot taken by Acquire.
func (l *RenderLimiter) Release() {
	l.mu.Lock()
	l.active--
	l.mu.Unlock()

	<-l.semaphore
}

// ActiveCount returns the number of renders in progress.
func (l *RenderLimiter) ActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.active
}

// Available returns the number of free slots.
func (l *RenderLimiter) Available() int {
	return cap(l.semaphore) - len(l.semaphore)
}

// WaitForDrain blocks until no render is active or ctx ends.
func (l *RenderLimiter) WaitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if l.ActiveCount() == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RenderLimiterStatus is a snapshot of the limiter for monitoring.
type RenderLimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

// Status returns the current limiter state.
func (l *RenderLimiter) Status() RenderLimiterStatus {
	l.mu.RLock()
	active := l.active
	l.mu.RUnlock()

	return RenderLimiterStatus{
		Active:        active,
		Available:     l.Available(),
		MaxConcurrent: cap(l.semaphore),
	}
}
