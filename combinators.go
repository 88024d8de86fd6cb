package cotask

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Map runs fn after t completes successfully, passing t's value and
// returning a new Task[U]. An error from t short-circuits past fn.
func Map[T, U any](t *Task[T], fn func(T) (U, error)) *Task[U] {
	return Run(func() (U, error) {
		v, err := Await(t)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// FlatMap awaits t and, on success, calls fn to obtain another Task[U] and
// awaits that one too.
func FlatMap[T, U any](t *Task[T], fn func(T) *Task[U]) *Task[U] {
	return Run(func() (U, error) {
		v, err := Await(t)
		if err != nil {
			var zero U
			return zero, err
		}
		return Await(fn(v))
	})
}

// Recover maps an error from t into a recovered result by running fn only
// when t fails.
func Recover[T any](t *Task[T], fn func(error) (T, error)) *Task[T] {
	return Run(func() (T, error) {
		v, err := Await(t)
		if err != nil {
			return fn(err)
		}
		return v, nil
	})
}

// Tap runs f after t settles (success or failure) and passes through the
// original result. A panic in f surfaces as the derived task's error.
func Tap[T any](t *Task[T], f func()) *Task[T] {
	return Run(func() (T, error) {
		v, err := Await(t)
		f()
		return v, err
	})
}

// Settled captures the outcome of one task in AllSettled results.
type Settled[T any] struct {
	Index int
	Value T
	Err   error
}

// All waits for every task to settle and returns their values in input
// order, with any failures joined via errors.Join. It does not
// short-circuit.
func All[T any](tasks ...*Task[T]) ([]T, error) {
	n := len(tasks)
	results := make([]T, n)
	errs := make([]error, n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, t := range tasks {
		go func() {
			defer wg.Done()
			v, err := Await(t)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = v
		}()
	}
	wg.Wait()
	return results, errors.Join(errs...)
}

// AllSettled waits for all tasks and returns their individual outcomes
// without aggregating errors.
func AllSettled[T any](tasks ...*Task[T]) []Settled[T] {
	n := len(tasks)
	out := make([]Settled[T], n)

	var wg sync.WaitGroup
	wg.Add(n)
	for i, t := range tasks {
		go func() {
			defer wg.Done()
			v, err := Await(t)
			out[i] = Settled[T]{Index: i, Value: v, Err: err}
		}()
	}
	wg.Wait()
	return out
}

// Any returns the first successful result among tasks. If all tasks fail, it
// returns an aggregated error.
func Any[T any](tasks ...*Task[T]) (T, error) {
	var zero T
	if len(tasks) == 0 {
		return zero, fmt.Errorf("cotask: Any requires at least one task")
	}

	type outcome struct {
		val T
		err error
	}

	ch := make(chan outcome, len(tasks))
	for _, t := range tasks {
		go func() {
			v, err := Await(t)
			ch <- outcome{val: v, err: err}
		}()
	}

	var errs []error
	for range tasks {
		o := <-ch
		if o.err == nil {
			return o.val, nil
		}
		errs = append(errs, o.err)
	}
	return zero, errors.Join(errs...)
}

// Race waits for the first task to complete (success or failure) and returns
// its index, value, and error. The losing tasks still run to completion.
func Race[T any](tasks ...*Task[T]) (winner int, v T, err error) {
	var zero T
	if len(tasks) == 0 {
		return -1, zero, fmt.Errorf("cotask: Race requires at least one task")
	}

	type outcome struct {
		idx int
		val T
		err error
	}

	ch := make(chan outcome, len(tasks))
	for i, t := range tasks {
		go func() {
			v, err := Await(t)
			ch <- outcome{idx: i, val: v, err: err}
		}()
	}

	o := <-ch
	return o.idx, o.val, o.err
}

// Delay returns a Task[struct{}] that completes after d. The completion runs
// on the timer's goroutine, like any other external resolution.
func Delay(d time.Duration) *Task[struct{}] {
	c, t := NewCompleter[struct{}]()
	time.AfterFunc(d, func() { c.Resolve(struct{}{}) })
	return t
}

// Select is an advanced helper that returns when any of the provided tasks
// completes, along with its index and reflect.Value. Tasks of different
// value types may be mixed.
func Select(tasks ...any) (int, reflect.Value, error) {
	if len(tasks) == 0 {
		return -1, reflect.Value{}, fmt.Errorf("cotask: Select requires at least one task")
	}

	type outcome struct {
		idx int
		val reflect.Value
		err error
	}

	ch := make(chan outcome, len(tasks))
	for i, t := range tasks {
		go func() {
			if s, ok := t.(selectable); ok {
				val, err := s.selectAwait()
				ch <- outcome{i, val, err}
				return
			}

			rv := reflect.ValueOf(t)
			m := rv.MethodByName("GetResult")
			if !m.IsValid() {
				ch <- outcome{i, reflect.Value{}, fmt.Errorf("cotask: Select received non-Task type")}
				return
			}

			out := m.Call(nil)
			// expect (T, error)
			if len(out) != 2 {
				ch <- outcome{i, reflect.Value{}, fmt.Errorf("cotask: GetResult signature mismatch")}
				return
			}

			val := out[0]
			var err error
			if !out[1].IsNil() {
				err = out[1].Interface().(error)
			}
			ch <- outcome{i, val, err}
		}()
	}
	o := <-ch
	return o.idx, o.val, o.err
}
