package futures

import "sync/atomic"

// EventKind identifies a lifecycle event emitted by this package.
type EventKind int

const (
	// EventCreated is emitted when a pending future is constructed.
	EventCreated EventKind = iota

	// EventFulfilled is emitted when a future settles with a value.
	EventFulfilled

	// EventFailed is emitted when a future settles with an error.
	// Event.Err carries the error as stored.
	EventFailed

	// EventCallbackPanic is emitted when a combinator recovers a panic
	// from a user callback. Event.Err carries the resulting [*PanicError].
	EventCallbackPanic

	// EventResourceReleased is emitted when a resource-scoped combinator
	// releases its resource without error.
	EventResourceReleased

	// EventReleaseFailed is emitted when releasing a resource returns an
	// error. Event.Err carries that error.
	EventReleaseFailed
)

// String returns a short lower-case name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventFulfilled:
		return "fulfilled"
	case EventFailed:
		return "failed"
	case EventCallbackPanic:
		return "callback_panic"
	case EventResourceReleased:
		return "resource_released"
	case EventReleaseFailed:
		return "release_failed"
	default:
		return "unknown"
	}
}

// Event describes a single lifecycle event. Err is nil unless the kind
// carries a failure.
type Event struct {
	Kind EventKind
	Err  error
}

// Observer receives lifecycle events. Implementations must be safe for
// concurrent use and must not block: events are emitted from whichever
// goroutine settles a future or releases a resource.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the [Observer] interface.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(e Event) { f(e) }

var globalObserver atomic.Pointer[Observer]

// SetObserver installs o as the process-wide lifecycle observer and
// returns the previous one, or nil if none was installed. Passing nil
// removes the current observer. With no observer installed, emitting an
// event costs a single atomic load.
func SetObserver(o Observer) Observer {
	var p *Observer
	if o != nil {
		p = &o
	}
	prev := globalObserver.Swap(p)
	if prev == nil {
		return nil
	}
	return *prev
}

func emitEvent(e Event) {
	if p := globalObserver.Load(); p != nil {
		(*p).Observe(e)
	}
}
