package gate

import (
	"errors"
	"math"
	"sync"
	"time"

	"github.com/goliatone/go-pages-sync/internal/logging"
	"github.com/goliatone/go-pages-sync/pkg/interfaces"
)

// ErrAlreadyInProgress indicates another publish attempt currently holds the
// in-flight lock.
var ErrAlreadyInProgress = errors.New("gate: publish already in progress")

// ErrCooldownActive indicates the global cooldown window has not elapsed
// since the last recorded trigger.
var ErrCooldownActive = errors.New("gate: cooldown active")

const (
	defaultCooldown     = 60 * time.Second
	defaultStaleTimeout = 5 * time.Minute
)

// Gate is the admission control for publish attempts. It combines a global
// cooldown between trigger side effects with an in-flight mutex so no two
// attempts may both observe "not in progress" and proceed. Construct one
// instance per process and inject it into every synchronizer that shares the
// downstream build budget.
type Gate struct {
	mu           sync.Mutex
	lastTrigger  time.Time
	publishing   bool
	startedAt    time.Time
	cooldown     time.Duration
	staleTimeout time.Duration
	now          func() time.Time
	logger       interfaces.Logger
}

// Option mutates the gate before it is finalised.
type Option func(*Gate)

// WithCooldown overrides the default cooldown window.
func WithCooldown(window time.Duration) Option {
	return func(g *Gate) {
		if window > 0 {
			g.cooldown = window
		}
	}
}

// WithStaleTimeout overrides the stale-lock reclaim ceiling.
func WithStaleTimeout(timeout time.Duration) Option {
	return func(g *Gate) {
		if timeout > 0 {
			g.staleTimeout = timeout
		}
	}
}

// WithClock injects the time source used for cooldown and staleness checks.
func WithClock(clock func() time.Time) Option {
	return func(g *Gate) {
		if clock != nil {
			g.now = clock
		}
	}
}

// WithLogger injects the logger used when reclaiming stale locks.
func WithLogger(logger interfaces.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New constructs a gate with the default 60s cooldown and 5m stale timeout.
func New(opts ...Option) *Gate {
	g := &Gate{
		cooldown:     defaultCooldown,
		staleTimeout: defaultStaleTimeout,
		now:          time.Now,
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanProceed reports whether the cooldown window has elapsed since the last
// recorded trigger.
func (g *Gate) CanProceed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastTrigger.IsZero() {
		return true
	}
	return g.now().Sub(g.lastTrigger) >= g.cooldown
}

// RecordTriggered marks now as the last trigger time, starting a fresh
// cooldown window.
func (g *Gate) RecordTriggered() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastTrigger = g.now()
}

// RemainingSeconds reports the ceiling of the wait left on the cooldown
// window, or zero when a new attempt may proceed.
func (g *Gate) RemainingSeconds() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.lastTrigger.IsZero() {
		return 0
	}
	remaining := g.cooldown - g.now().Sub(g.lastTrigger)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Seconds()))
}

// TryAcquire claims the in-flight lock. It fails with ErrAlreadyInProgress
// when another attempt holds it, unless that attempt started longer ago than
// the stale timeout, in which case the lock is presumed abandoned by a
// crashed attempt and is reclaimed.
func (g *Gate) TryAcquire() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.publishing {
		held := g.now().Sub(g.startedAt)
		if held <= g.staleTimeout {
			return ErrAlreadyInProgress
		}
		g.logger.Warn("gate.lock.reclaimed",
			"held", held.String(),
			"stale_timeout", g.staleTimeout.String(),
		)
	}

	g.publishing = true
	g.startedAt = g.now()
	return nil
}

// Release frees the in-flight lock. Safe to call when the lock is not held.
func (g *Gate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.publishing = false
	g.startedAt = time.Time{}
}

// InFlight reports whether a publish attempt currently holds the lock.
func (g *Gate) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.publishing
}
