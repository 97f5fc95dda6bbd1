package worker

import "sync"

type delivery[T any] struct {
	cb    func(T)
	value T
}

// Inbox collects results produced on worker goroutines until the owner flushes them.
// Callbacks only ever run inside Flush, on the flushing goroutine.
type Inbox[T any] struct {
	mu      sync.Mutex
	pending []delivery[T]
}

// Deliver queues cb(value) for the next Flush. Safe for concurrent use.
func (b *Inbox[T]) Deliver(cb func(T), value T) {
	if cb == nil {
		return
	}
	b.mu.Lock()
	b.pending = append(b.pending, delivery[T]{cb: cb, value: value})
	b.mu.Unlock()
}

// Len returns the number of undelivered results.
func (b *Inbox[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush invokes every callback queued before the call, in arrival order, and returns how many ran.
// Results delivered while Flush runs wait for the next call.
func (b *Inbox[T]) Flush() int {
	b.mu.Lock()
	batch := b.pending
	b.pending = nil
	b.mu.Unlock()

	for _, d := range batch {
		d.cb(d.value)
	}
	return len(batch)
}
