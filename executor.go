package futures

// Executor runs work submitted by the Async combinator variants. It
// abstracts only the execution context a completion observer is dispatched
// on; scheduling, pooling, and lifecycle are entirely the implementation's
// business.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a plain function to the [Executor] interface.
type ExecutorFunc func(fn func())

func (e ExecutorFunc) Execute(fn func()) { e(fn) }

// CallingGoroutine returns an [Executor] that runs each submission on the
// goroutine calling Execute, before Execute returns. With it, the Async
// combinator variants behave exactly like their synchronous counterparts.
func CallingGoroutine() Executor {
	return ExecutorFunc(func(fn func()) { fn() })
}

// SpawnGoroutine returns an [Executor] that runs each submission on its
// own new goroutine.
func SpawnGoroutine() Executor {
	return ExecutorFunc(func(fn func()) { go fn() })
}
