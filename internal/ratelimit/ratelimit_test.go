package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeStore lets tests drive Incr results directly.
type fakeStore struct {
	count   int
	resetAt time.Time
	err     error
	sweeps  int
}

func (f *fakeStore) Incr(context.Context, string, time.Duration) (int, time.Time, error) {
	return f.count, f.resetAt, f.err
}

func (f *fakeStore) Sweep(context.Context, time.Time) error {
	f.sweeps++
	return nil
}

func TestLimiter_AllowUnderLimit(t *testing.T) {
	l := New(&fakeStore{count: 3, resetAt: time.Now().Add(time.Minute)}, 3, time.Minute, time.Minute)
	d := l.Allow(context.Background(), "1.2.3.4")
	if !d.Allowed {
		t.Error("count == limit should still be allowed")
	}
}

func TestLimiter_DenyOverLimit(t *testing.T) {
	resetAt := time.Now().Add(30 * time.Second)
	l := New(&fakeStore{count: 4, resetAt: resetAt}, 3, time.Minute, time.Minute)

	d := l.Allow(context.Background(), "1.2.3.4")
	if d.Allowed {
		t.Fatal("count > limit should be denied")
	}
	if d.RetryAfter <= 0 || d.RetryAfter > 30*time.Second {
		t.Errorf("RetryAfter should point at the window reset, got %v", d.RetryAfter)
	}
}

func TestLimiter_AllowsWhenStoreFails(t *testing.T) {
	l := New(&fakeStore{err: errors.New("connection refused")}, 3, time.Minute, time.Minute)
	d := l.Allow(context.Background(), "1.2.3.4")
	if !d.Allowed {
		t.Error("store failure must not block submissions")
	}
}

func TestLimiter_FixedWindowEndToEnd(t *testing.T) {
	// N=3 per window: requests 1-3 pass, 4 is denied, and the first request
	// after the window elapses passes again.
	l := New(NewMemoryStore(), 3, 40*time.Millisecond, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		if d := l.Allow(ctx, "1.2.3.4"); !d.Allowed {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if d := l.Allow(ctx, "1.2.3.4"); d.Allowed {
		t.Fatal("request 4 inside the window should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if d := l.Allow(ctx, "1.2.3.4"); !d.Allowed {
		t.Error("first request after the window elapsed should be allowed")
	}
}

func TestLimiter_StartStopRunsSweep(t *testing.T) {
	store := NewMemoryStore()
	_, _, _ = store.Incr(context.Background(), "stale", time.Millisecond)

	l := New(store, 3, time.Millisecond, 10*time.Millisecond)
	l.Start()
	time.Sleep(35 * time.Millisecond)
	l.Stop()

	if store.Len() != 0 {
		t.Errorf("sweep should have removed the stale entry, %d left", store.Len())
	}

	// Stop must have terminated the loop: done channel is closed.
	select {
	case <-l.done:
	default:
		t.Error("sweep goroutine still running after Stop")
	}
}
