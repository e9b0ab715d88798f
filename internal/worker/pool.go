// Package worker runs bind callbacks on a small fixed pool instead of
// spawning a goroutine per event — critical on a low-level hook thread,
// where creating new OS threads per keystroke would visibly lag typing.
package worker

import (
	"context"
	"sync"

	"keybinds/internal/logging"
)

// Driveable is returned by a callback that wants asynchronous follow-up
// work driven to completion instead of treated as a plain return value —
// the Go analogue of the reference implementation returning an awaitable
// from a synchronous callback. A Driveable is run to completion on the
// pool's lazily-started async runner instead of blocking a worker.
type Driveable interface {
	Drive(ctx context.Context) error
}

// Job is a unit of work submitted to the pool: an arbitrary callback that
// may optionally return a Driveable for further async handling.
type Job func() any

// Pool executes submitted jobs on N fixed worker goroutines pulling from an
// unbounded queue, and lazily starts a single async runner goroutine the
// first time a job returns a Driveable. The queue is an in-memory slice
// guarded by queueCond, not a channel: a channel send can block the
// submitter when every worker is busy, and Submit is called from the hook
// thread, which must never wait on a slow or still-running user callback.
type Pool struct {
	queueMu   sync.Mutex
	queueCond *sync.Cond
	queue     []Job
	closed    bool

	jobs chan Job

	log *logging.Logger

	asyncOnce sync.Once
	asyncJobs chan Driveable
	asyncErr  func(error)

	wg   sync.WaitGroup
	stop chan struct{}
}

// New starts a Pool with the given number of worker goroutines (minimum 1).
// onAsyncError, if non-nil, is called whenever a Driveable's Drive returns
// an error; it defaults to logging via log.
func New(workers int, log *logging.Logger, onAsyncError func(error)) *Pool {
	if workers < 1 {
		workers = 1
	}
	if onAsyncError == nil {
		onAsyncError = func(err error) {
			log.Errorw("worker", "async bind callback failed", "error", err)
		}
	}

	p := &Pool{
		jobs:     make(chan Job),
		log:      log,
		asyncErr: onAsyncError,
		stop:     make(chan struct{}),
	}
	p.queueCond = sync.NewCond(&p.queueMu)

	p.wg.Add(1)
	go p.feed()

	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.runWorker()
	}
	return p
}

// Submit enqueues fn for execution on a pool worker. Submit never blocks:
// it appends to the unbounded in-memory queue and returns, regardless of
// whether every worker is currently busy.
func (p *Pool) Submit(fn func()) {
	p.enqueue(func() any {
		fn()
		return nil
	})
}

// SubmitDriveable enqueues fn for execution on a pool worker; if fn returns
// a non-nil Driveable, it is handed to the lazily-started async runner
// instead of being discarded. Like Submit, this never blocks the caller.
func (p *Pool) SubmitDriveable(fn func() any) {
	p.enqueue(fn)
}

func (p *Pool) enqueue(job Job) {
	p.queueMu.Lock()
	if p.closed {
		p.queueMu.Unlock()
		return
	}
	p.queue = append(p.queue, job)
	p.queueMu.Unlock()
	p.queueCond.Signal()
}

// feed drains the unbounded queue into the worker-facing channel. It is the
// only goroutine that may block waiting for a worker to be free; Submit
// callers never do.
func (p *Pool) feed() {
	defer p.wg.Done()
	defer close(p.jobs)
	for {
		p.queueMu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.queueCond.Wait()
		}
		if len(p.queue) == 0 && p.closed {
			p.queueMu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.queueMu.Unlock()

		select {
		case p.jobs <- job:
		case <-p.stop:
			return
		}
	}
}

func (p *Pool) runWorker() {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			p.runJob(job)
		case <-p.stop:
			return
		}
	}
}

func (p *Pool) runJob(job Job) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("worker", "bind callback panicked", "recovered", r)
		}
	}()
	res := job()
	if d, ok := res.(Driveable); ok && d != nil {
		p.submitDriveable(d)
	}
}

func (p *Pool) submitDriveable(d Driveable) {
	p.asyncOnce.Do(func() {
		p.asyncJobs = make(chan Driveable, 64)
		go p.runAsync()
	})
	p.asyncJobs <- d
}

func (p *Pool) runAsync() {
	ctx := context.Background()
	for {
		select {
		case d := <-p.asyncJobs:
			if err := p.driveOne(ctx, d); err != nil {
				p.asyncErr(err)
			}
		case <-p.stop:
			return
		}
	}
}

func (p *Pool) driveOne(ctx context.Context, d Driveable) (err error) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Errorw("worker", "driveable callback panicked", "recovered", r)
		}
	}()
	return d.Drive(ctx)
}

// Stop signals every worker goroutine and the async runner (if started) to
// exit once their current job finishes. Stop does not wait for in-flight
// jobs to drain; call Wait for that. Stop must be called at most once.
func (p *Pool) Stop() {
	p.queueMu.Lock()
	p.closed = true
	p.queueMu.Unlock()
	p.queueCond.Broadcast()
	close(p.stop)
}

// Wait blocks until every worker goroutine has exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}
