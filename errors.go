package cotask

import (
	"fmt"
	"runtime/debug"
)

// PanicError wraps a panic recovered from a computation body, preserving the
// stack at the point of the panic.
type PanicError struct {
	Value any
	Stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", p.Value)
}

// Unwrap exposes the panic value when it was itself an error, so errors.Is
// and errors.As see through the capture.
func (p *PanicError) Unwrap() error {
	if err, ok := p.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	return &PanicError{Value: v, Stack: debug.Stack()}
}
