package futures

// Supply runs fn on the calling goroutine and returns a future holding its
// outcome. A returned error or recovered panic fails the future encoded.
// The future is always settled by the time Supply returns.
func Supply[T any](fn func() (T, error)) *Future[T] {
	return SupplyAsync(fn, CallingGoroutine())
}

// SupplyAsync runs fn on exec and returns a future holding its eventual
// outcome, with failures encoded exactly as in [Supply].
func SupplyAsync[T any](fn func() (T, error), exec Executor) *Future[T] {
	if fn == nil {
		panic("futures: SupplyAsync called with nil function")
	}
	f := New[T]()
	exec.Execute(func() {
		v, err := runChecked(fn)
		if err != nil {
			f.Fail(encodeError(err))
			return
		}
		f.Complete(v)
	})
	return f
}

// CompleteWith bridges source into target: when source settles, its
// outcome is forwarded to target unchanged, with no encoding applied. If
// target was settled by someone else first, the forwarded outcome is
// discarded.
func CompleteWith[T any](target, source *Future[T]) {
	source.whenComplete(nil, func(v T, err error) {
		if err != nil {
			target.Fail(err)
			return
		}
		target.Complete(v)
	})
}
