package futures

import "strings"

// Suppressor is implemented by error types that can record secondary
// failures in place, without giving up their identity. When a resource
// release fails after a primary failure, the release error is attached to
// the primary: through this interface when the primary implements it,
// otherwise through an internal carrier that keeps the primary reachable
// via [errors.Is] and [errors.As].
type Suppressor interface {
	error
	Suppress(secondary error)
}

// Suppress records secondary as a suppressed failure of primary and
// returns the error to propagate in primary's place. The result is primary
// itself whenever primary implements [Suppressor]; otherwise a carrier
// wrapping both. If either argument is nil, the other is returned
// unchanged. Not safe for concurrent use with readers of primary.
func Suppress(primary, secondary error) error {
	if primary == nil {
		return secondary
	}
	if secondary == nil {
		return primary
	}
	if s, ok := primary.(Suppressor); ok {
		s.Suppress(secondary)
		return primary
	}
	return &suppressedError{primary: primary, suppressed: []error{secondary}}
}

// Suppressed returns the secondary failures recorded against err or any
// error in its chain, in recording order. It returns nil when none were
// recorded.
func Suppressed(err error) []error {
	if err == nil {
		return nil
	}
	if s, ok := err.(interface{ Suppressed() []error }); ok {
		if out := s.Suppressed(); len(out) > 0 {
			return out
		}
	}
	switch e := err.(type) {
	case interface{ Unwrap() []error }:
		for _, sub := range e.Unwrap() {
			if out := Suppressed(sub); out != nil {
				return out
			}
		}
	case interface{ Unwrap() error }:
		return Suppressed(e.Unwrap())
	}
	return nil
}

// suppressedError carries a primary failure plus the secondary failures
// recorded against it. Unwrap exposes the primary first so identity checks
// on the primary keep working.
type suppressedError struct {
	primary    error
	suppressed []error
}

func (e *suppressedError) Error() string {
	var b strings.Builder
	b.WriteString(e.primary.Error())
	for _, s := range e.suppressed {
		b.WriteString("\n\tsuppressed: ")
		b.WriteString(s.Error())
	}
	return b.String()
}

func (e *suppressedError) Unwrap() []error {
	out := make([]error, 0, len(e.suppressed)+1)
	out = append(out, e.primary)
	return append(out, e.suppressed...)
}

func (e *suppressedError) Suppress(secondary error) {
	e.suppressed = append(e.suppressed, secondary)
}

func (e *suppressedError) Suppressed() []error {
	return e.suppressed
}

// suppressIntoFailure records secondary against the raw cause of failure,
// keeping failure's own identity when it is an encoded wrapper: the
// wrapper keeps propagating while its cause chain gains the secondary.
// An encoded failure without a cause stands in for its own cause and
// records the secondary directly.
func suppressIntoFailure(failure, secondary error) error {
	ce, ok := failure.(*CompletionError)
	if !ok {
		return Suppress(failure, secondary)
	}
	raw := CauseOf(ce)
	carrier := Suppress(raw, secondary)
	if carrier != raw {
		ce.cause = carrier
	}
	return ce
}
