// Package channel provides an unbounded, goroutine-safe handoff queue whose
// consumers block until a value is available.
package channel

import (
	"context"
	"sync"
)

// Channel is a FIFO handoff between producer and consumer goroutines.
//
// Push never blocks. Pop blocks until a value is available. Values are
// delivered in the order they were pushed and each value is delivered to
// exactly one consumer.
//
// A Channel must not be copied after first use.
type Channel[T any] struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items []T
}

// New creates an empty channel
func New[T any]() *Channel[T] {
	c := &Channel[T]{}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Push appends v and wakes one blocked consumer, if any.
func (c *Channel[T]) Push(v T) {
	c.mu.Lock()
	c.items = append(c.items, v)
	c.mu.Unlock()
	c.cond.Signal()
}

// Pop removes and returns the oldest value, blocking until one is pushed.
// There is no timeout, see PopContext for a cancellable variant.
func (c *Channel[T]) Pop() T {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Wait may return without a matching Push.
	for len(c.items) == 0 {
		c.cond.Wait()
	}
	return c.removeLocked()
}

// PopContext behaves like Pop but gives up once ctx is done, returning
// ctx.Err(). A value that is already queued is preferred over cancellation.
func (c *Channel[T]) PopContext(ctx context.Context) (T, error) {
	var zero T

	stop := context.AfterFunc(ctx, func() {
		// Taking the lock orders the broadcast after the waiter has parked.
		c.mu.Lock()
		c.cond.Broadcast()
		c.mu.Unlock()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.items) == 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		c.cond.Wait()
	}
	return c.removeLocked(), nil
}

// TryPop removes and returns the oldest value without blocking. The boolean
// is false when the channel is empty.
func (c *Channel[T]) TryPop() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.removeLocked(), true
}

// Len returns the number of pending values
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// removeLocked pops the head. c.mu must be held and items non-empty.
func (c *Channel[T]) removeLocked() T {
	v := c.items[0]

	var zero T
	c.items[0] = zero
	c.items = c.items[1:]

	if len(c.items) == 0 {
		// release the backing array once drained
		c.items = nil
	}
	return v
}
