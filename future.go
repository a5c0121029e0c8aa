package futures

import "sync"

// Future is a single-assignment container for the eventual outcome of an
// asynchronous computation: a value of type T or an error. A future starts
// pending and settles exactly once, either fulfilled or failed.
//
// Create pending futures via [New] and settle them with [Future.Complete]
// or [Future.Fail]. [Completed] and [Failed] construct already-settled
// futures. Combinators such as [ThenApply] and [Collect] derive new futures
// without blocking; [Future.Get] blocks until the future settles.
type Future[T any] struct {
	mu        sync.Mutex
	settled   bool
	done      chan struct{}
	value     T
	err       error
	observers []observer[T]
}

// observer is a completion callback paired with the executor it is
// dispatched on. A nil exec runs the callback on whichever goroutine
// settles the future, or immediately when registered after settlement.
type observer[T any] struct {
	exec Executor
	fn   func(T, error)
}

func (o observer[T]) run(v T, err error) {
	if o.exec == nil {
		o.fn(v, err)
		return
	}
	o.exec.Execute(func() { o.fn(v, err) })
}

// New returns a pending [Future].
func New[T any]() *Future[T] {
	emitEvent(Event{Kind: EventCreated})
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future already fulfilled with v.
func Completed[T any](v T) *Future[T] {
	f := New[T]()
	f.Complete(v)
	return f
}

// Failed returns a future already failed with err. The error is stored
// as-is; no encoding is applied. Failed panics if err is nil.
func Failed[T any](err error) *Future[T] {
	f := New[T]()
	f.Fail(err)
	return f
}

// Complete fulfills the future with v. It reports whether this call
// settled the future; false means it was already settled and v is
// discarded.
func (f *Future[T]) Complete(v T) bool {
	return f.settle(v, nil)
}

// Fail fails the future with err, stored as-is. It reports whether this
// call settled the future. Fail panics if err is nil; use
// [Future.Complete] for successful outcomes.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		panic("futures: Fail called with nil error")
	}
	var zero T
	return f.settle(zero, err)
}

// settle performs the one-time pending transition. The first writer wins;
// registered observers run after the lock is released so they may register
// further observers or settle other futures freely.
func (f *Future[T]) settle(v T, err error) bool {
	f.mu.Lock()
	if f.settled {
		f.mu.Unlock()
		return false
	}
	f.settled = true
	f.value, f.err = v, err
	obs := f.observers
	f.observers = nil
	close(f.done)
	f.mu.Unlock()

	if err == nil {
		emitEvent(Event{Kind: EventFulfilled})
	} else {
		emitEvent(Event{Kind: EventFailed, Err: err})
	}

	for _, o := range obs {
		o.run(v, err)
	}
	return true
}

// whenComplete registers fn to run once the future settles. A future may
// carry any number of observers. If the future is already settled, fn runs
// before whenComplete returns (or is handed to exec when one is given).
// Observers registered before settlement run in registration order.
func (f *Future[T]) whenComplete(exec Executor, fn func(T, error)) {
	f.mu.Lock()
	if f.settled {
		v, err := f.value, f.err
		f.mu.Unlock()
		observer[T]{exec: exec, fn: fn}.run(v, err)
		return
	}
	f.observers = append(f.observers, observer[T]{exec: exec, fn: fn})
	f.mu.Unlock()
}

// Get blocks until the future settles and returns its outcome.
func (f *Future[T]) Get() (T, error) {
	<-f.done
	return f.value, f.err
}

// Done returns a channel that is closed when the future settles.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsDone reports whether the future has settled.
func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// IsFailed reports whether the future has settled with an error.
func (f *Future[T]) IsFailed() bool {
	return f.IsDone() && f.err != nil
}
