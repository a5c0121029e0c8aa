package futures

import "errors"

// CompletionError marks a failure that crossed an asynchronous stage
// boundary. Combinators encode every input, callback, and nested-stage
// failure into a *CompletionError exactly once, so callers can uniformly
// recognize "this came from an async stage" and unwrap to the original
// cause.
//
// Encoding is idempotent: a failure that already is a *CompletionError is
// never wrapped again. Use [CauseOf] or [UnwrapCompletionError] to recover
// the cause and [IsCompletionError] to detect the wrapper anywhere in an
// error chain.
type CompletionError struct {
	cause      error
	suppressed []error
}

// NewCompletionError returns an encoded failure wrapping cause. A nil
// cause is allowed; [CauseOf] then returns the *CompletionError itself.
func NewCompletionError(cause error) *CompletionError {
	return &CompletionError{cause: cause}
}

func (e *CompletionError) Error() string {
	if e.cause == nil {
		return "async stage failed"
	}
	return "async stage failed: " + e.cause.Error()
}

// Unwrap returns the wrapped cause, which may be nil.
func (e *CompletionError) Unwrap() error {
	return e.cause
}

// Suppress records secondary against the error in place. It is used when
// the error itself stands in for its missing cause during resource
// release; see [Suppress]. Not safe for concurrent use.
func (e *CompletionError) Suppress(secondary error) {
	e.suppressed = append(e.suppressed, secondary)
}

// Suppressed returns the secondary failures recorded directly against the
// error, in recording order.
func (e *CompletionError) Suppressed() []error {
	return e.suppressed
}

// encodeError normalizes err into its encoded form. Idempotent: only the
// top-level value is inspected, so a failure wrapped by user code is still
// encoded once at the next stage boundary.
func encodeError(err error) *CompletionError {
	if ce, ok := err.(*CompletionError); ok {
		return ce
	}
	return &CompletionError{cause: err}
}

// CauseOf returns the original cause of an encoded failure: if err is a
// [*CompletionError] with a non-nil cause, the cause is returned. Any
// other err, including an encoded failure without a cause, is returned
// as-is. Returns nil if err is nil.
func CauseOf(err error) error {
	if ce, ok := err.(*CompletionError); ok && ce.cause != nil {
		return ce.cause
	}
	return err
}

// IsCompletionError reports whether err or any error in its chain is a
// [*CompletionError].
func IsCompletionError(err error) bool {
	if err == nil {
		return false
	}
	var ce *CompletionError
	return errors.As(err, &ce)
}
