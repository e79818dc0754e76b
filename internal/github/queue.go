package github

import (
	"context"
	"errors"
	"sync"
	"time"
)

const defaultSpacing = 200 * time.Millisecond

var errQueueClosed = errors.New("github: request queue closed")

// requestQueue serializes outbound calls onto the wire one at a time, in
// submission order, with a minimum inter-request spacing measured from the
// previous call's dispatch time. A failure in one queued call does not block
// subsequent calls.
type requestQueue struct {
	jobs    chan queuedJob
	once    sync.Once
	closeMu sync.Mutex
	closed  bool
	spacing time.Duration
	now     func() time.Time
	sleep   func(time.Duration)
}

type queuedJob struct {
	ctx  context.Context
	run  func() error
	done chan error
}

func newRequestQueue(spacing time.Duration) *requestQueue {
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	return &requestQueue{
		jobs:    make(chan queuedJob, 64),
		spacing: spacing,
		now:     time.Now,
		sleep:   time.Sleep,
	}
}

// Do submits a call and blocks until it has been dispatched and completed,
// or the caller's context is cancelled while it waits in the queue.
func (q *requestQueue) Do(ctx context.Context, run func() error) error {
	q.once.Do(func() { go q.loop() })

	j := queuedJob{ctx: ctx, run: run, done: make(chan error, 1)}

	q.closeMu.Lock()
	if q.closed {
		q.closeMu.Unlock()
		return errQueueClosed
	}
	select {
	case q.jobs <- j:
		q.closeMu.Unlock()
	case <-ctx.Done():
		q.closeMu.Unlock()
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the dispatch loop. Pending jobs already queued still run.
func (q *requestQueue) Close() {
	q.closeMu.Lock()
	defer q.closeMu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.once.Do(func() { go q.loop() })
	close(q.jobs)
}

func (q *requestQueue) loop() {
	var lastDispatch time.Time
	for j := range q.jobs {
		if j.ctx != nil && j.ctx.Err() != nil {
			j.done <- j.ctx.Err()
			continue
		}
		if !lastDispatch.IsZero() {
			if wait := q.spacing - q.now().Sub(lastDispatch); wait > 0 {
				q.sleep(wait)
			}
		}
		lastDispatch = q.now()
		j.done <- j.run()
	}
}
