// Package ratelimit implements fixed-window rate limiting keyed by client
// identifier, with a pluggable counter store so a multi-replica deployment
// can share limits through Redis instead of process memory.
package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Store persists per-client window counters.
type Store interface {
	// Incr increments the counter for key. If key is new or its window has
	// expired, a fresh window of the given length is started with count 1.
	// It returns the post-increment count and the time the window resets.
	// Implementations must make the increment atomic per key.
	Incr(ctx context.Context, key string, window time.Duration) (count int, resetAt time.Time, err error)

	// Sweep removes entries whose window expired before now, bounding
	// memory growth. Stores with native expiry may treat this as a no-op.
	Sweep(ctx context.Context, now time.Time) error
}

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter enforces a fixed-window limit of Limit requests per Window per key.
type Limiter struct {
	store      Store
	limit      int
	window     time.Duration
	sweepEvery time.Duration

	stop chan struct{}
	done chan struct{}
}

// New creates a Limiter. Call Start to launch the periodic sweep and Stop
// to shut it down.
func New(store Store, limit int, window, sweepEvery time.Duration) *Limiter {
	return &Limiter{
		store:      store,
		limit:      limit,
		window:     window,
		sweepEvery: sweepEvery,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Allow reports whether the client identified by key may proceed. If the
// store is unreachable the request is allowed: the limit protects a mailbox,
// not an invariant, and a dead Redis must not take the contact form down.
func (l *Limiter) Allow(ctx context.Context, key string) Decision {
	count, resetAt, err := l.store.Incr(ctx, key, l.window)
	if err != nil {
		slog.Error("rate limit store unavailable, allowing request", "key", key, "error", err)
		return Decision{Allowed: true}
	}
	if count > l.limit {
		return Decision{Allowed: false, RetryAfter: time.Until(resetAt)}
	}
	return Decision{Allowed: true}
}

// Start launches the background sweep goroutine.
func (l *Limiter) Start() {
	go l.sweepLoop()
}

// Stop terminates the sweep goroutine and waits for it to exit.
// Safe to call only once, after Start.
func (l *Limiter) Stop() {
	close(l.stop)
	<-l.done
}

func (l *Limiter) sweepLoop() {
	defer close(l.done)
	ticker := time.NewTicker(l.sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := l.store.Sweep(ctx, time.Now()); err != nil {
				slog.Warn("rate limit sweep failed", "error", err)
			}
			cancel()
		case <-l.stop:
			return
		}
	}
}
