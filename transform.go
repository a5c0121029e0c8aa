package futures

import "errors"

// ErrNilFuture reports a compose callback that returned a nil future. It
// fails the output stage (encoded) instead of panicking, so a buggy
// callback cannot crash the goroutine that settles the input.
var ErrNilFuture = errors.New("futures: compose function returned a nil future")

// producer settles out from the observed outcome of an input future. A
// non-nil return value, or a panic recovered from the producer itself, is
// encoded and fails out instead.
type producer[T, U any] func(value T, failure error, out *Future[U]) error

// transform is the shared plumbing behind every combinator: it attaches
// exactly one completion observer to src and guarantees out settles
// exactly once on every path, including a panicking producer.
func transform[T, U any](src *Future[T], exec Executor, produce producer[T, U]) *Future[U] {
	out := New[U]()
	src.whenComplete(exec, func(v T, failure error) {
		err := capturePanic(func() error {
			return produce(v, failure, out)
		})
		if err != nil {
			out.Fail(encodeError(err))
		}
	})
	return out
}

// ThenApply returns a future holding fn applied to f's value. fn runs only
// when f succeeds; a returned error or panic fails the output encoded. A
// failure of f itself propagates without invoking fn, wrapped once at this
// boundary unless it is already encoded.
func ThenApply[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return thenApply(f, nil, fn)
}

// ThenApplyAsync is [ThenApply] with the completion observer dispatched on
// exec.
func ThenApplyAsync[T, U any](f *Future[T], fn func(T) (U, error), exec Executor) *Future[U] {
	return thenApply(f, exec, fn)
}

func thenApply[T, U any](f *Future[T], exec Executor, fn func(T) (U, error)) *Future[U] {
	if fn == nil {
		panic("futures: ThenApply called with nil function")
	}
	return transform(f, exec, func(v T, failure error, out *Future[U]) error {
		if failure != nil {
			out.Fail(encodeError(failure))
			return nil
		}
		u, err := fn(v)
		if err != nil {
			return err
		}
		out.Complete(u)
		return nil
	})
}

// ThenCompose returns a future that settles with the outcome of the nested
// future fn produces from f's value. A nested failure is encoded on the
// way out; fn's own error or panic behaves as in [ThenApply]; fn returning
// a nil future fails the output with [ErrNilFuture], encoded. A failure of
// f propagates without invoking fn.
func ThenCompose[T, U any](f *Future[T], fn func(T) (*Future[U], error)) *Future[U] {
	return thenCompose(f, nil, fn)
}

// ThenComposeAsync is [ThenCompose] with the completion observer
// dispatched on exec. The observer attached to the nested future is not
// dispatched again; it runs wherever the nested future settles.
func ThenComposeAsync[T, U any](f *Future[T], fn func(T) (*Future[U], error), exec Executor) *Future[U] {
	return thenCompose(f, exec, fn)
}

func thenCompose[T, U any](f *Future[T], exec Executor, fn func(T) (*Future[U], error)) *Future[U] {
	if fn == nil {
		panic("futures: ThenCompose called with nil function")
	}
	return transform(f, exec, func(v T, failure error, out *Future[U]) error {
		if failure != nil {
			out.Fail(encodeError(failure))
			return nil
		}
		next, err := fn(v)
		if err != nil {
			return err
		}
		if next == nil {
			return ErrNilFuture
		}
		next.whenComplete(nil, func(u U, nextFailure error) {
			if nextFailure != nil {
				out.Fail(encodeError(nextFailure))
				return
			}
			out.Complete(u)
		})
		return nil
	})
}

// WhenComplete returns a future that mirrors f's outcome after running fn
// with it. fn always runs, receiving the value (or the zero value) and the
// failure (or nil) as stored. When f succeeded, a failure of fn fails the
// output encoded; when f failed, the input failure wins and fn's failure
// is discarded, so an observer's side effect can never mask the real
// cause.
func WhenComplete[T any](f *Future[T], fn func(T, error) error) *Future[T] {
	return whenComplete(f, nil, fn)
}

// WhenCompleteAsync is [WhenComplete] with the completion observer
// dispatched on exec.
func WhenCompleteAsync[T any](f *Future[T], fn func(T, error) error, exec Executor) *Future[T] {
	return whenComplete(f, exec, fn)
}

func whenComplete[T any](f *Future[T], exec Executor, fn func(T, error) error) *Future[T] {
	if fn == nil {
		panic("futures: WhenComplete called with nil callback")
	}
	return transform(f, exec, func(v T, failure error, out *Future[T]) error {
		cbErr := capturePanic(func() error {
			return fn(v, failure)
		})
		if failure != nil {
			out.Fail(encodeError(failure))
			return nil
		}
		if cbErr != nil {
			return cbErr
		}
		out.Complete(v)
		return nil
	})
}
