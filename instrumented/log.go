package instrumented

import (
	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/futures"
)

// LogObserver logs failure-carrying lifecycle events through a logrus
// logger: recovered callback panics at error level, failed resource
// releases at warning level, failed futures at debug level. Everything
// else is logged at trace level to keep normal operation quiet.
type LogObserver struct {
	log *logrus.Logger
}

// NewLogObserver returns a LogObserver writing to log, or to
// logrus.StandardLogger() when log is nil.
func NewLogObserver(log *logrus.Logger) *LogObserver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &LogObserver{log: log}
}

// Observe implements futures.Observer.
func (l *LogObserver) Observe(e futures.Event) {
	entry := l.log.WithField("event", e.Kind.String())
	switch e.Kind {
	case futures.EventCallbackPanic:
		entry.WithError(e.Err).Error("callback panicked")
	case futures.EventReleaseFailed:
		entry.WithError(e.Err).Warn("resource release failed")
	case futures.EventFailed:
		entry.WithError(futures.CauseOf(e.Err)).Debug("future failed")
	default:
		entry.Trace("future lifecycle event")
	}
}

// Tee fans every event out to the given observers, in order.
func Tee(observers ...futures.Observer) futures.Observer {
	return futures.ObserverFunc(func(e futures.Event) {
		for _, o := range observers {
			o.Observe(e)
		}
	})
}
