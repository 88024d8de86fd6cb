package cotask

import "sync"

// cell is the single-assignment completion slot backing a Task.
//
// The mutex guards the result pointer and the continuation list; it is the
// only lock in the package and is never held across a callback. Blocking
// waiters sleep on the condition variable; select-based consumers watch done.
// Continuations run outside the lock so a callback may touch the cell again
// (late registration, chained awaits) without deadlocking.
type cell[T any] struct {
	mu   sync.Mutex
	cond sync.Cond
	res  *Result[T]
	subs []func(Result[T])
	done chan struct{}
}

func newCell[T any]() *cell[T] {
	c := &cell[T]{done: make(chan struct{})}
	c.cond.L = &c.mu
	return c
}

// complete stores the one and only result. Calling it on an already
// completed cell is a contract violation and panics.
//
// Waiters are woken and done is closed before any continuation runs; the
// drained list is then invoked in registration order on the calling
// goroutine.
func (c *cell[T]) complete(r Result[T]) {
	c.mu.Lock()
	if c.res != nil {
		c.mu.Unlock()
		panic("cotask: task completed twice")
	}
	c.res = &r
	subs := c.subs
	c.subs = nil
	c.cond.Broadcast()
	c.mu.Unlock()

	// result is published under the mutex before close(done), so readers
	// unblocked by either mechanism observe it.
	close(c.done)

	for _, f := range subs {
		f(r)
	}
}

// register queues f to run when the cell completes. If a result is already
// present, f runs immediately on the caller's goroutine.
func (c *cell[T]) register(f func(Result[T])) {
	c.mu.Lock()
	if r := c.res; r != nil {
		c.mu.Unlock()
		f(*r)
		return
	}
	c.subs = append(c.subs, f)
	c.mu.Unlock()
}

// wait blocks until the cell completes and returns a copy of the result.
// Safe to call from any number of goroutines; all observe the same result.
func (c *cell[T]) wait() Result[T] {
	c.mu.Lock()
	for c.res == nil {
		c.cond.Wait()
	}
	r := *c.res
	c.mu.Unlock()
	return r
}

// tryGet returns the result if the cell has already completed.
func (c *cell[T]) tryGet() (Result[T], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.res == nil {
		var zero Result[T]
		return zero, false
	}
	return *c.res, true
}

func (c *cell[T]) completed() <-chan struct{} {
	return c.done
}
