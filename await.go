package cotask

// Await suspends the calling computation until t completes, then returns t's
// result at the suspension point: the value on the success leg, or the
// dependency's error for the caller to propagate or handle.
//
// The registered continuation only forwards the result to the suspended
// goroutine and returns, so the goroutine completing t never blocks on the
// hand-off and no lock or stack frame accumulates across chained awaits.
// Relative to t's other subscribers, the resumption keeps its registration
// slot. The caller resumes on its own goroutine, regardless of which
// goroutine completed t.
//
// Await must not be called from the goroutine that is expected to complete
// t, or it will deadlock.
func Await[T any](t *Task[T]) (T, error) {
	ch := make(chan Result[T], 1)
	t.OnCompleted(func(r Result[T]) {
		ch <- r
	})
	r := <-ch
	return r.Get()
}
