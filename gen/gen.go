// Package gen provides a bounded, pull-style value generator for a single
// consumer. It shares no state with the task core: there is no concurrency
// and no error channel beyond exhaustion.
package gen

import (
	"errors"
	"iter"
)

// ErrExhausted is returned by Next once the generator has yielded its last
// value.
var ErrExhausted = errors.New("gen: generator exhausted")

// Generator yields a bounded sequence of values to a single consumer.
// It is not safe for concurrent use.
type Generator[T any] struct {
	next  func() (T, bool)
	stop  func()
	head  T
	ready bool
	done  bool
}

// New returns a Generator draining seq. The producer runs lazily: nothing is
// pulled until HasNext or Next is called.
func New[T any](seq iter.Seq[T]) *Generator[T] {
	next, stop := iter.Pull(seq)
	return &Generator[T]{next: next, stop: stop}
}

// From returns a Generator yielding the given values in order.
func From[T any](values ...T) *Generator[T] {
	return New(func(yield func(T) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	})
}

// HasNext reports whether another value is available, pulling one value of
// lookahead from the producer when none is buffered. It is idempotent until
// the buffered value is consumed by Next.
func (g *Generator[T]) HasNext() bool {
	if g.done {
		return false
	}
	if !g.ready {
		v, ok := g.next()
		if !ok {
			g.done = true
			g.stop()
			return false
		}
		g.head = v
		g.ready = true
	}
	return true
}

// Next consumes and returns the buffered value, pulling one first if needed.
// Calling Next past the end returns ErrExhausted.
func (g *Generator[T]) Next() (T, error) {
	if !g.HasNext() {
		var zero T
		return zero, ErrExhausted
	}
	g.ready = false
	return g.head, nil
}

// Stop releases the producer early. The generator is exhausted afterwards;
// a buffered lookahead value is discarded.
func (g *Generator[T]) Stop() {
	if g.done {
		return
	}
	g.done = true
	g.ready = false
	g.stop()
}
