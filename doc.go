// Package futures provides failure-aware combinators over single-assignment
// result containers.
//
// A [Future] settles exactly once, fulfilled with a value or failed with an
// error. Combinators derive new futures without blocking: each registers a
// single completion observer on its input and settles its output on every
// path, including panicking callbacks.
//
// # Containers
//
// [New] creates a pending future settled later via [Future.Complete] or
// [Future.Fail]. [Completed] and [Failed] construct already-settled
// futures. [Supply] and [SupplyAsync] run a function and capture its
// outcome. [CompleteWith] bridges one future's outcome into another.
// [Future.Get] blocks; [Future.Done] exposes a channel for select loops.
//
// # Failure Encoding
//
// A failure crossing a stage boundary is wrapped exactly once in a
// [*CompletionError], so callers can uniformly recognize async-stage
// failures. Encoding is idempotent: chains of combinators never
// double-wrap. [CauseOf] and [UnwrapCompletionError] recover the original
// cause; [IsCompletionError] detects the wrapper anywhere in a chain.
// Panics in callbacks never escape; they become [*PanicError] values,
// encoded like any other callback failure.
//
// # Combinators
//
// [ThenApply] maps a value, [ThenCompose] chains a future-producing
// function, [WhenComplete] observes an outcome without changing it. Each
// has an Async variant dispatching its completion observer on an
// [Executor]. Callback failures fail the output encoded; an input failure
// propagates without invoking the map/compose callback and, for
// WhenComplete, wins over a failure of the callback itself.
//
// [TranslateError] replaces a failure with a domain-specific one, stored
// raw on purpose so it survives inspection by [errors.Is] and [errors.As].
//
// # Aggregation
//
// [Collect] folds a slice of futures into one future of all values,
// waiting for every input and failing with the earliest failure in input
// order. [ShortCircuitCollect] fails as soon as the fold reaches a failed
// input and never observes the inputs after it. Both preserve input order
// in the output slice regardless of completion order.
//
// # Resource Scoping
//
// [ThenApplyWithResource] and [ThenComposeWithResource] release an
// [io.Closer] produced by an upstream future exactly once across
// asynchronous continuations, including the window between a compose
// callback returning and its nested future settling. Release failures
// never mask a primary failure: they are recorded as suppressed and
// retrieved with [Suppressed]; error types may implement [Suppressor] to
// record them in place.
//
// # Execution
//
// Async combinator variants dispatch on an [Executor]. [CallingGoroutine]
// and [SpawnGoroutine] cover the two trivial strategies; pooling and
// scheduling are the caller's business.
//
// # Observability
//
// [SetObserver] installs a process-wide [Observer] receiving an [Event]
// for every future created and settled, every recovered callback panic,
// and every resource release. The
// [github.com/baxromumarov/futures/instrumented] subpackage provides a
// Prometheus collector and a logrus-backed log observer.
package futures
