package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_IncrCountsWithinWindow(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for want := 1; want <= 4; want++ {
		count, _, err := s.Incr(ctx, "1.2.3.4", time.Minute)
		if err != nil {
			t.Fatalf("Incr returned error: %v", err)
		}
		if count != want {
			t.Errorf("Incr #%d: want count %d, got %d", want, want, count)
		}
	}
}

func TestMemoryStore_IncrIsolatesKeys(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, _, _ = s.Incr(ctx, "1.2.3.4", time.Minute)
	_, _, _ = s.Incr(ctx, "1.2.3.4", time.Minute)
	count, _, err := s.Incr(ctx, "5.6.7.8", time.Minute)
	if err != nil {
		t.Fatalf("Incr returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected fresh window for second key, got count %d", count)
	}
}

func TestMemoryStore_WindowExpiryResetsCount(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, _, _ = s.Incr(ctx, "1.2.3.4", 30*time.Millisecond)
	_, _, _ = s.Incr(ctx, "1.2.3.4", 30*time.Millisecond)

	time.Sleep(50 * time.Millisecond)

	count, _, err := s.Incr(ctx, "1.2.3.4", 30*time.Millisecond)
	if err != nil {
		t.Fatalf("Incr returned error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count reset after window elapsed, got %d", count)
	}
}

func TestMemoryStore_IncrIsAtomicUnderConcurrency(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	const goroutines = 50
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, _, _ = s.Incr(ctx, "1.2.3.4", time.Minute)
		}()
	}
	wg.Wait()

	count, _, _ := s.Incr(ctx, "1.2.3.4", time.Minute)
	if count != goroutines+1 {
		t.Errorf("lost increments: want %d, got %d", goroutines+1, count)
	}
}

func TestMemoryStore_SweepRemovesExpiredEntries(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, _, _ = s.Incr(ctx, "stale", 10*time.Millisecond)
	_, _, _ = s.Incr(ctx, "live", time.Minute)

	if err := s.Sweep(ctx, time.Now().Add(time.Second)); err != nil {
		t.Fatalf("Sweep returned error: %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("expected only the live entry to survive, got %d entries", s.Len())
	}
}
