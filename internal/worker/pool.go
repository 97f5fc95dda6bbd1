// Package worker runs generation jobs off the main loop and hands results back to it.
package worker

import (
	"sync"

	"go.uber.org/zap"
)

// Pool runs submitted tasks on a fixed set of goroutines.
// The queue is unbounded so Submit never blocks the caller.
type Pool struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	closed  bool
	running int
	workers int
	wg      sync.WaitGroup
	log     *zap.Logger
}

// NewPool starts a pool with the given number of workers (at least one).
func NewPool(workers int, log *zap.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pool{
		workers: workers,
		log:     log,
	}
	p.cond = sync.NewCond(&p.mu)

	for i := range workers {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit queues a task. It returns false once the pool is closed.
func (p *Pool) Submit(task func()) bool {
	if task == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.queue = append(p.queue, task)
	p.cond.Signal()
	return true
}

// Pending returns the number of queued and running tasks.
func (p *Pool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.queue) + p.running
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.workers
}

// Close stops accepting tasks, runs everything already queued and waits for the workers to exit.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 {
			p.mu.Unlock()
			return
		}
		task := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]
		p.running++
		p.mu.Unlock()

		p.run(id, task)

		p.mu.Lock()
		p.running--
		p.mu.Unlock()
	}
}

// run executes one task. A panicking task is logged and does not take the worker down.
func (p *Pool) run(id int, task func()) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("worker task panicked", zap.Int("worker", id), zap.Any("panic", r))
		}
	}()
	task()
}
