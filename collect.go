package futures

// Collect returns a future of all input values, output positions matching
// input positions regardless of completion order. It settles only after
// every input has settled, failures included: an all-must-finish barrier.
// When several inputs fail, the earliest input position wins; the failure
// is encoded unless it already is.
//
// An empty input yields an immediately fulfilled empty slice.
func Collect[T any](futs []*Future[T]) *Future[[]T] {
	acc := Completed(make([]T, 0, len(futs)))
	for _, f := range futs {
		acc = collectStep(acc, f, false)
	}
	return acc
}

// ShortCircuitCollect returns a future of all input values, output
// positions matching input positions. Unlike [Collect] it fails as soon as
// the fold reaches a failed input: inputs after the first failure in
// sequence order are never observed, and the output can settle while they
// are still pending. The inputs themselves keep running; this combinator
// just stops watching them.
//
// An empty input yields an immediately fulfilled empty slice.
func ShortCircuitCollect[T any](futs []*Future[T]) *Future[[]T] {
	acc := Completed(make([]T, 0, len(futs)))
	for _, f := range futs {
		acc = collectStep(acc, f, true)
	}
	return acc
}

// collectStep folds one input into the accumulator. In short-circuit mode
// a failed accumulator propagates without observing f at all; otherwise f
// is always awaited, so the aggregate cannot settle before every input
// has. An accumulator failure always beats a failure of f, which makes the
// earliest input position win.
func collectStep[T any](acc *Future[[]T], f *Future[T], shortCircuit bool) *Future[[]T] {
	next := New[[]T]()
	acc.whenComplete(nil, func(list []T, accFailure error) {
		if shortCircuit && accFailure != nil {
			next.Fail(accFailure)
			return
		}
		f.whenComplete(nil, func(v T, failure error) {
			switch {
			case accFailure != nil:
				next.Fail(accFailure)
			case failure != nil:
				next.Fail(encodeError(failure))
			default:
				next.Complete(append(list, v))
			}
		})
	})
	return next
}
