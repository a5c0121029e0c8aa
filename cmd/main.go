package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/baxromumarov/futures"
	"github.com/baxromumarov/futures/instrumented"
)

var errNotFound = errors.New("not found")

func fetchFast() (string, error) {
	time.Sleep(10 * time.Millisecond)
	return "fast payload", nil
}

func fetchSlow() (string, error) {
	time.Sleep(50 * time.Millisecond)
	return "slow payload", nil
}

func fetchBroken() (string, error) {
	time.Sleep(5 * time.Millisecond)
	return "", fmt.Errorf("backend returned 503")
}

type fakeConn struct{ name string }

func (c *fakeConn) Close() error {
	fmt.Println("closed", c.name)
	return nil
}

func (c *fakeConn) query(q string) *futures.Future[string] {
	return futures.SupplyAsync(func() (string, error) {
		time.Sleep(10 * time.Millisecond)
		return "rows for " + q, nil
	}, futures.SpawnGoroutine())
}

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	futures.SetObserver(instrumented.NewLogObserver(logger))

	now := time.Now()

	arr := []func() (string, error){fetchFast, fetchSlow, fetchBroken}

	fetches := make([]*futures.Future[string], len(arr))
	for idx, f := range arr {
		fetches[idx] = futures.SupplyAsync(f, futures.SpawnGoroutine())
	}

	// The barrier waits for every fetch; the failure still wins.
	if _, err := futures.Collect(fetches).Get(); err != nil {
		fmt.Println("collect error:", futures.CauseOf(err))
	}

	// Same inputs behind a translation into a domain error.
	lookup := futures.TranslateError(
		futures.ShortCircuitCollect(fetches),
		func(error) error { return errNotFound },
	)
	if _, err := lookup.Get(); err != nil {
		fmt.Println("lookup error:", err)
	}

	// Resource-scoped compose: the connection outlives the nested query
	// and is closed once it settles.
	acquire := futures.Supply(func() (io.Closer, error) {
		return &fakeConn{name: "conn-1"}, nil
	})
	rows := futures.ThenComposeWithResource(acquire, func(c io.Closer) (*futures.Future[string], error) {
		return c.(*fakeConn).query("select 1"), nil
	})
	if v, err := rows.Get(); err == nil {
		fmt.Println("query result:", v)
	}

	fmt.Println("Elapsed time:", time.Since(now))
}

// func main() {
// 	f := futures.Supply(func() (int, error) { return 42, nil })
//
// 	doubled := futures.ThenApply(f, func(v int) (int, error) {
// 		return v * 2, nil
// 	})
//
// 	v, err := doubled.Get()
// 	fmt.Println(v, err)
// }
