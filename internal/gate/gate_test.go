package gate

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestGate_CooldownMonotonicity(t *testing.T) {
	clock := newFakeClock()
	g := New(WithClock(clock.Now), WithCooldown(60*time.Second))

	if !g.CanProceed() {
		t.Fatal("expected fresh gate to allow proceeding")
	}
	if got := g.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds() = %d, want 0", got)
	}

	g.RecordTriggered()

	if g.CanProceed() {
		t.Fatal("expected cooldown to block immediately after trigger")
	}
	if got := g.RemainingSeconds(); got != 60 {
		t.Fatalf("RemainingSeconds() = %d, want 60", got)
	}

	previous := g.RemainingSeconds()
	for i := 0; i < 5; i++ {
		clock.Advance(10 * time.Second)
		remaining := g.RemainingSeconds()
		if remaining > previous {
			t.Fatalf("remaining wait increased from %d to %d", previous, remaining)
		}
		previous = remaining
	}
	if g.CanProceed() {
		t.Fatal("expected cooldown to still block at 50s")
	}

	clock.Advance(10 * time.Second)
	if !g.CanProceed() {
		t.Fatal("expected cooldown to expire after full window")
	}
	if got := g.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds() = %d, want 0 after window", got)
	}
}

func TestGate_RemainingSecondsCeiling(t *testing.T) {
	clock := newFakeClock()
	g := New(WithClock(clock.Now), WithCooldown(60*time.Second))

	g.RecordTriggered()
	clock.Advance(59*time.Second + 200*time.Millisecond)

	if got := g.RemainingSeconds(); got != 1 {
		t.Fatalf("RemainingSeconds() = %d, want ceiling 1", got)
	}
}

func TestGate_TryAcquireExclusive(t *testing.T) {
	clock := newFakeClock()
	g := New(WithClock(clock.Now))

	if err := g.TryAcquire(); err != nil {
		t.Fatalf("first TryAcquire() error = %v", err)
	}
	if err := g.TryAcquire(); !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("second TryAcquire() error = %v, want ErrAlreadyInProgress", err)
	}

	g.Release()
	if err := g.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire() after Release error = %v", err)
	}
}

func TestGate_StaleLockReclaim(t *testing.T) {
	clock := newFakeClock()
	g := New(WithClock(clock.Now), WithStaleTimeout(5*time.Minute))

	if err := g.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}

	clock.Advance(4 * time.Minute)
	if err := g.TryAcquire(); !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("TryAcquire() before stale timeout error = %v, want ErrAlreadyInProgress", err)
	}

	clock.Advance(2 * time.Minute)
	if err := g.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire() past stale timeout error = %v, want reclaim", err)
	}
	if !g.InFlight() {
		t.Fatal("expected reclaimed lock to be held")
	}
}

func TestGate_ConcurrentAcquire(t *testing.T) {
	g := New()

	const attempts = 32
	var wg sync.WaitGroup
	acquired := make(chan struct{}, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := g.TryAcquire(); err == nil {
				acquired <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(acquired)

	count := 0
	for range acquired {
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one concurrent acquire to win, got %d", count)
	}
}

func TestGate_ReleaseIdempotent(t *testing.T) {
	g := New()
	g.Release()
	g.Release()

	if err := g.TryAcquire(); err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
}
