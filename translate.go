package futures

import "errors"

// ErrNilTranslation reports a translate function that returned nil for a
// non-nil failure, leaving the output stage without a replacement failure.
var ErrNilTranslation = errors.New("futures: translate function returned nil")

// TranslateError returns a future that mirrors f's value but replaces its
// failure with fn(failure). The replacement is stored raw, deliberately
// skipping the encoding other combinators apply, so domain-specific
// failure types survive inspection at the boundary. fn receives the
// failure exactly as stored in f. A nil replacement fails the output with
// [ErrNilTranslation] (encoded); a panic in fn is converted and encoded as
// in the other combinators.
func TranslateError[T any](f *Future[T], fn func(error) error) *Future[T] {
	if fn == nil {
		panic("futures: TranslateError called with nil function")
	}
	return transform(f, nil, func(v T, failure error, out *Future[T]) error {
		if failure == nil {
			out.Complete(v)
			return nil
		}
		var replacement error
		if err := capturePanic(func() error {
			replacement = fn(failure)
			return nil
		}); err != nil {
			return err
		}
		if replacement == nil {
			return ErrNilTranslation
		}
		out.Fail(replacement)
		return nil
	})
}

// UnwrapCompletionError returns a future that mirrors f but with an
// encoded failure replaced by its cause: the inverse of the encoding
// combinators apply at stage boundaries. An encoded failure without a
// cause and any non-encoded failure pass through unchanged, as do values.
func UnwrapCompletionError[T any](f *Future[T]) *Future[T] {
	return transform(f, nil, func(v T, failure error, out *Future[T]) error {
		if failure == nil {
			out.Complete(v)
			return nil
		}
		out.Fail(CauseOf(failure))
		return nil
	})
}
