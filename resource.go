package futures

import "io"

// releaseGuard holds the single release obligation for a resource across
// the stages of a resource-scoped combinator. Ownership starts at the
// guard and can be handed downstream with disarm, after which close is a
// no-op.
//
// The guard is written and read on one goroutine at a time: disarm happens
// strictly before the observer that performs the final release is
// attached, so no synchronization is needed.
type releaseGuard struct {
	resource io.Closer
	disarmed bool
}

func newReleaseGuard(resource io.Closer) *releaseGuard {
	return &releaseGuard{resource: resource}
}

// disarm transfers the release obligation away from the guard.
func (g *releaseGuard) disarm() {
	g.disarmed = true
}

// close releases the resource unless the guard was disarmed or holds no
// resource.
func (g *releaseGuard) close() error {
	if g.disarmed || g.resource == nil {
		return nil
	}
	return releaseResource(g.resource)
}

// releaseResource closes c and emits the matching lifecycle event.
func releaseResource(c io.Closer) error {
	if err := c.Close(); err != nil {
		emitEvent(Event{Kind: EventReleaseFailed, Err: err})
		return err
	}
	emitEvent(Event{Kind: EventResourceReleased})
	return nil
}

// ThenApplyWithResource applies fn to the resource produced by rf and
// releases the resource exactly once after fn returns or panics: the
// asynchronous equivalent of acquiring inside a function body with a
// deferred Close. A release error is suppressed under fn's failure when fn
// already failed, and becomes the primary failure when fn succeeded. A nil
// resource interface value means "no resource": fn still runs and nothing
// is released. A failed rf propagates without invoking fn or releasing
// anything.
func ThenApplyWithResource[R io.Closer, T any](rf *Future[R], fn func(R) (T, error)) *Future[T] {
	return thenApplyWithResource(rf, nil, fn)
}

// ThenApplyWithResourceAsync is [ThenApplyWithResource] with the
// completion observer dispatched on exec.
func ThenApplyWithResourceAsync[R io.Closer, T any](rf *Future[R], fn func(R) (T, error), exec Executor) *Future[T] {
	return thenApplyWithResource(rf, exec, fn)
}

func thenApplyWithResource[R io.Closer, T any](rf *Future[R], exec Executor, fn func(R) (T, error)) *Future[T] {
	if fn == nil {
		panic("futures: ThenApplyWithResource called with nil function")
	}
	return thenApply(rf, exec, func(resource R) (T, error) {
		v, err := runChecked(func() (T, error) { return fn(resource) })
		if closer := io.Closer(resource); closer != nil {
			if cerr := releaseResource(closer); cerr != nil {
				if err != nil {
					err = Suppress(err, cerr)
				} else {
					err = cerr
				}
			}
		}
		return v, err
	})
}

// ThenComposeWithResource obtains a nested future from fn applied to the
// resource produced by rf, deferring release until that nested future
// settles rather than when fn returns. If fn fails, or returns a nil
// future, the guard releases the resource immediately and the failure
// propagates with any release error suppressed under it. When fn succeeds,
// the guard is disarmed and the release obligation transfers to a
// completion observer on the nested future: releasing after a nested
// failure suppresses any release error under that failure; releasing after
// a nested success promotes a release error to the primary (encoded)
// failure of the output.
func ThenComposeWithResource[R io.Closer, T any](rf *Future[R], fn func(R) (*Future[T], error)) *Future[T] {
	if fn == nil {
		panic("futures: ThenComposeWithResource called with nil function")
	}
	return thenCompose(rf, nil, func(resource R) (*Future[T], error) {
		guard := newReleaseGuard(io.Closer(resource))
		nested, err := runChecked(func() (*Future[T], error) { return fn(resource) })
		if err == nil && nested == nil {
			err = ErrNilFuture
		}
		if err != nil {
			if cerr := guard.close(); cerr != nil {
				err = Suppress(err, cerr)
			}
			return nil, err
		}
		guard.disarm()
		return settleAfterRelease(nested, io.Closer(resource)), nil
	})
}

// settleAfterRelease mirrors nested's outcome after releasing resource
// exactly once. A release failure after a nested failure is attached to
// the nested failure's raw cause as suppressed; after a nested success it
// becomes the primary failure.
func settleAfterRelease[T any](nested *Future[T], resource io.Closer) *Future[T] {
	return transform(nested, nil, func(v T, failure error, out *Future[T]) error {
		if failure != nil {
			if resource != nil {
				if cerr := releaseResource(resource); cerr != nil {
					failure = suppressIntoFailure(failure, cerr)
				}
			}
			out.Fail(encodeError(failure))
			return nil
		}
		if resource != nil {
			if cerr := releaseResource(resource); cerr != nil {
				return cerr
			}
		}
		out.Complete(v)
		return nil
	})
}
