package instrumented

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/baxromumarov/futures"
)

// Collector translates futures lifecycle events into Prometheus metrics:
// futures created and settled by outcome, futures in flight, recovered
// callback panics, and resource releases by outcome. Install it with
// futures.SetObserver.
type Collector struct {
	created        prometheus.Counter
	completed      *prometheus.CounterVec
	inFlight       prometheus.Gauge
	callbackPanics prometheus.Counter
	releases       *prometheus.CounterVec
}

type options struct {
	namespace  string
	registerer prometheus.Registerer
}

// Option configures [NewCollector].
type Option func(*options)

// WithNamespace sets the metric namespace. The default is "futures".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		o.namespace = namespace
	}
}

// WithRegisterer registers the collector's metrics with r instead of
// prometheus.DefaultRegisterer.
func WithRegisterer(r prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = r
	}
}

// NewCollector builds a [Collector] and registers its metrics. It returns
// an error when a metric collides with one already registered, so two
// collectors for the same namespace cannot silently share counters.
func NewCollector(opts ...Option) (*Collector, error) {
	o := options{
		namespace:  "futures",
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&o)
	}

	c := &Collector{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "created_total",
			Help:      "Futures created.",
		}),
		completed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "completed_total",
			Help:      "Futures settled, partitioned by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: o.namespace,
			Name:      "in_flight",
			Help:      "Futures created but not yet settled.",
		}),
		callbackPanics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "callback_panics_total",
			Help:      "Panics recovered from combinator callbacks.",
		}),
		releases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "resource_releases_total",
			Help:      "Resource releases performed by resource-scoped combinators, partitioned by outcome.",
		}, []string{"outcome"}),
	}

	for _, m := range []prometheus.Collector{c.created, c.completed, c.inFlight, c.callbackPanics, c.releases} {
		if err := o.registerer.Register(m); err != nil {
			return nil, fmt.Errorf("instrumented: register metrics: %w", err)
		}
	}
	return c, nil
}

// Observe implements futures.Observer.
func (c *Collector) Observe(e futures.Event) {
	switch e.Kind {
	case futures.EventCreated:
		c.created.Inc()
		c.inFlight.Inc()
	case futures.EventFulfilled:
		c.completed.WithLabelValues("fulfilled").Inc()
		c.inFlight.Dec()
	case futures.EventFailed:
		c.completed.WithLabelValues("failed").Inc()
		c.inFlight.Dec()
	case futures.EventCallbackPanic:
		c.callbackPanics.Inc()
	case futures.EventResourceReleased:
		c.releases.WithLabelValues("released").Inc()
	case futures.EventReleaseFailed:
		c.releases.WithLabelValues("failed").Inc()
	}
}
