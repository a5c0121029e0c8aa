// Package instrumented provides drop-in observability for the futures
// package: a Prometheus [Collector] and a logrus-backed [LogObserver],
// both implementing futures.Observer.
//
// Install one with futures.SetObserver, or several at once via [Tee]:
//
//	collector, err := instrumented.NewCollector()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	futures.SetObserver(instrumented.Tee(collector, instrumented.NewLogObserver(nil)))
package instrumented
