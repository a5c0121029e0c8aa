package futures

import (
	"fmt"
	"runtime"
)

// PanicError wraps a value recovered from a panicking callback together
// with the goroutine stack trace captured at the point of recovery.
//
// Combinators never let a callback panic escape onto the goroutine that
// settles a future; the panic is converted to a *PanicError, encoded, and
// fails the output future instead.
type PanicError struct {
	// Value is the original value passed to panic().
	Value any

	// Stack is the goroutine stack trace at the point of panic.
	Stack string
}

// Error returns a human-readable representation of the panic,
// including the value and the full stack trace.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v\n\n%s", e.Value, e.Stack)
}

// Unwrap returns Value when the panic was raised with an error, keeping
// the original error reachable via [errors.Is] and [errors.As]. It returns
// nil for non-error panic values.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

func newPanicError(v any) *PanicError {
	// 8 KiB is enough for most stack traces. runtime.Stack truncates
	// gracefully if the buffer is too small.
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return &PanicError{
		Value: v,
		Stack: string(buf[:n]),
	}
}

// capturePanic invokes fn, converting a recovered panic into a
// [*PanicError]. Every user callback invocation in this package goes
// through it, directly or via [runChecked].
func capturePanic(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			pe := newPanicError(r)
			emitEvent(Event{Kind: EventCallbackPanic, Err: pe})
			err = pe
		}
	}()
	return fn()
}

// runChecked invokes a value-producing callback with panic conversion.
func runChecked[T any](fn func() (T, error)) (T, error) {
	var v T
	err := capturePanic(func() error {
		var ferr error
		v, ferr = fn()
		return ferr
	})
	return v, err
}
