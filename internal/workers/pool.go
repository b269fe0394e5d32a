// Package workers provides the bounded worker pool used by each scan phase.
// A pool caps the number of concurrently executing tasks, exposes a wait-all
// barrier so the next phase cannot start early, and honors context
// cancellation by refusing new submissions. There is no retry logic: a failed
// or timed-out task is a terminal outcome for that unit of work.
package workers

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lanscout/internal/logging"
	"github.com/lanscout/internal/metrics"
)

// Task is a unit of work executed by a pool slot. Tasks report their outcome
// through captured result channels or collectors, never through panics.
type Task func(ctx context.Context)

// Pool manages a bounded set of concurrently executing task slots.
type Pool struct {
	name     string
	slots    chan struct{}
	wg       sync.WaitGroup
	inflight atomic.Int64
}

// New creates a pool named for its phase with the given concurrency cap.
// A cap below 1 is treated as 1.
func New(name string, size int) *Pool {
	if size < 1 {
		size = 1
	}
	logging.Debug("Creating worker pool", "pool", name, "size", size)
	return &Pool{
		name:  name,
		slots: make(chan struct{}, size),
	}
}

// Submit schedules a task, blocking until a slot is free. It returns false
// without running the task when ctx is canceled, which lets a phase stop
// submitting new work mid-loop.
func (p *Pool) Submit(ctx context.Context, task Task) bool {
	select {
	case <-ctx.Done():
		return false
	case p.slots <- struct{}{}:
	}

	p.wg.Add(1)
	go func() {
		defer func() {
			<-p.slots
			n := p.inflight.Add(-1)
			metrics.GetGlobalMetrics().SetInflight(p.name, int(n))
			p.wg.Done()
		}()
		n := p.inflight.Add(1)
		metrics.GetGlobalMetrics().SetInflight(p.name, int(n))
		task(ctx)
	}()
	return true
}

// Wait blocks until every submitted task has returned. This is the
// full barrier between pipeline phases.
func (p *Pool) Wait() {
	p.wg.Wait()
}

// Inflight reports the number of currently executing tasks.
// Exposed for tests asserting the concurrency cap.
func (p *Pool) Inflight() int64 {
	return p.inflight.Load()
}

// Cap returns the configured concurrency limit.
func (p *Pool) Cap() int {
	return cap(p.slots)
}
