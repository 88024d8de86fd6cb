package cotask

// Completer allows external resolution of a Task you create, similar to a
// Promise resolver pair in JavaScript. Exactly one of Resolve or Reject may
// be called, exactly once; a second resolution hits the task's
// single-assignment contract and panics.
type Completer[T any] struct {
	t *Task[T]
}

// NewCompleter returns a (Completer, Task) pair. The task stays pending
// until the completer resolves or rejects it.
func NewCompleter[T any]() (*Completer[T], *Task[T]) {
	t := newTask[T]()
	return &Completer[T]{t: t}, t
}

// Resolve completes the task successfully with v.
func (c *Completer[T]) Resolve(v T) {
	c.t.complete(ValueOf(v))
}

// Reject completes the task with err. A nil err is replaced with a sentinel
// so the error leg is never empty.
func (c *Completer[T]) Reject(err error) {
	c.t.complete(ErrorOf[T](err))
}
