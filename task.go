// Package cotask provides a single-assignment asynchronous result primitive.
//
// A [Task] is a handle to a computation that eventually produces exactly one
// value or one error. Consumers can block for the result with
// [Task.GetResult], subscribe with [Task.Then], [Task.Catching],
// [Task.Finally] or [Task.OnCompleted], and computations can suspend on each
// other with [Await]. Completion is delivered exactly once to every observer;
// subscribers run in registration order.
package cotask

import (
	"log/slog"
	"sync/atomic"
)

var globalTaskID uint64

var pkgLogger atomic.Pointer[slog.Logger]

// SetLogger replaces the logger used to report subscriber panics.
// The default is slog.Default.
func SetLogger(l *slog.Logger) {
	pkgLogger.Store(l)
}

func activeLogger() *slog.Logger {
	if l := pkgLogger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

// Task[T] represents a single computation that eventually produces a value
// of type T or an error. A Task completes exactly once and the result is
// immutable; it is either pending or completed, with no other states.
//
// A Task starts running immediately when constructed via Run.
type Task[T any] struct {
	id uint64
	c  *cell[T]
}

func newTask[T any]() *Task[T] {
	return &Task[T]{
		id: atomic.AddUint64(&globalTaskID, 1),
		c:  newCell[T](),
	}
}

// Run launches body in its own goroutine and returns the handle immediately.
// The handle is pending until the body finishes; the body may have run up to
// its first suspension point (or to completion) by the time Run returns.
//
// A panic inside body is captured as a *PanicError on the error leg and
// delivered through the same channel as a successful value; there is no
// separate crash path.
func Run[T any](body func() (T, error)) *Task[T] {
	t := newTask[T]()
	go t.drive(body)
	return t
}

func (t *Task[T]) drive(body func() (T, error)) {
	completed := false
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if completed {
			// The panic came out of a raw OnCompleted continuation, not
			// the body. The result already stands; let it crash.
			panic(r)
		}
		t.complete(ErrorOf[T](newPanicError(r)))
	}()

	var res Result[T]
	if v, err := body(); err != nil {
		res = ErrorOf[T](err)
	} else {
		res = ValueOf(v)
	}
	completed = true
	t.complete(res)
}

// complete is the terminal step of the computation. It may be called at most
// once per task; a second call panics.
func (t *Task[T]) complete(r Result[T]) {
	t.c.complete(r)
}

// ID returns a monotonically increasing identifier for the task.
func (t *Task[T]) ID() uint64 { return t.id }

// Done returns a channel that is closed when the task completes, for use in
// select statements.
func (t *Task[T]) Done() <-chan struct{} { return t.c.completed() }

// GetResult blocks until the task completes and returns its value. On the
// error leg the stored error is returned to the caller; this is the only
// point where the core itself propagates the error.
//
// GetResult may be called concurrently from any number of goroutines; all
// observe the same result. It must not be called from the goroutine expected
// to complete the task, or it will deadlock.
func (t *Task[T]) GetResult() (T, error) {
	return t.c.wait().Get()
}

// Wait is like GetResult but discards the value and only returns an error.
func (t *Task[T]) Wait() error {
	_, err := t.GetResult()
	return err
}

// TryGet returns the result if the task is already complete. The third
// return value reports whether a result was present; when ok==false, v and
// err are meaningless.
func (t *Task[T]) TryGet() (v T, err error, ok bool) {
	r, ok := t.c.tryGet()
	if !ok {
		var zero T
		return zero, nil, false
	}
	v, err = r.Get()
	return v, err, true
}

// OnCompleted registers a continuation receiving the full Result. The
// continuation runs exactly once: immediately on the caller's goroutine if
// the task has already completed, otherwise when completion occurs, in
// registration order, on whichever goroutine completes the task.
func (t *Task[T]) OnCompleted(f func(Result[T])) *Task[T] {
	t.c.register(f)
	return t
}

// Then registers a subscriber invoked with the value on the success leg; it
// does nothing on the error leg (the error stays observable to GetResult and
// other subscribers). A panic raised by fn itself is recovered and logged,
// never re-raised, so one failing subscriber cannot break its siblings or
// the completing goroutine.
func (t *Task[T]) Then(fn func(T)) *Task[T] {
	return t.OnCompleted(func(r Result[T]) {
		v, err := r.Get()
		if err != nil {
			return
		}
		defer logSubscriberPanic("then")
		fn(v)
	})
}

// Catching registers a subscriber invoked with the error on the error leg;
// it does nothing on success. Panics in fn are recovered and logged like
// Then's.
func (t *Task[T]) Catching(fn func(error)) *Task[T] {
	return t.OnCompleted(func(r Result[T]) {
		err := r.Err()
		if err == nil {
			return
		}
		defer logSubscriberPanic("catching")
		fn(err)
	})
}

// Finally registers a subscriber that runs on either leg, seeing neither.
func (t *Task[T]) Finally(fn func()) *Task[T] {
	return t.OnCompleted(func(Result[T]) {
		defer logSubscriberPanic("finally")
		fn()
	})
}

func logSubscriberPanic(kind string) {
	if r := recover(); r != nil {
		activeLogger().Error("cotask: subscriber panicked",
			"subscriber", kind,
			"error", newPanicError(r).Error())
	}
}

// FromValue returns an already-completed successful task carrying v.
func FromValue[T any](v T) *Task[T] {
	t := newTask[T]()
	t.complete(ValueOf(v))
	return t
}

// FromError returns an already-completed failed task carrying err.
func FromError[T any](err error) *Task[T] {
	t := newTask[T]()
	t.complete(ErrorOf[T](err))
	return t
}
