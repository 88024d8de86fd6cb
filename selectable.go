package cotask

import "reflect"

type selectable interface {
	selectAwait() (reflect.Value, error)
}

// selectAwait provides Select with a fast-path that avoids
// reflect.MethodByName for native Task instances.
func (t *Task[T]) selectAwait() (reflect.Value, error) {
	v, err := Await(t)
	return reflect.ValueOf(v), err
}
