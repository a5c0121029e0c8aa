package futures_test

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baxromumarov/futures"
)

// closeRecorder counts Close calls and optionally fails them.
type closeRecorder struct {
	closes   atomic.Int32
	closeErr error
}

func (c *closeRecorder) Close() error {
	c.closes.Add(1)
	return c.closeErr
}

func TestThenApplyWithResource(t *testing.T) {
	bodyErr := errors.New("body failed")
	closeErr := errors.New("close failed")

	tests := []struct {
		name           string
		failClose      bool
		bodyErr        error
		wantValue      string
		wantErr        error
		wantSuppressed []error
	}{
		{name: "body ok close ok", wantValue: "ok"},
		{name: "body fails close ok", bodyErr: bodyErr, wantErr: bodyErr},
		{name: "body ok close fails", failClose: true, wantErr: closeErr},
		{
			name:           "body fails close fails",
			failClose:      true,
			bodyErr:        bodyErr,
			wantErr:        bodyErr,
			wantSuppressed: []error{closeErr},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := &closeRecorder{}
			if tc.failClose {
				rec.closeErr = closeErr
			}

			out := futures.ThenApplyWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (string, error) {
				if tc.bodyErr != nil {
					return "", tc.bodyErr
				}
				return "ok", nil
			})

			v, err := out.Get()
			assert.Equal(t, int32(1), rec.closes.Load(), "the resource must be released exactly once")

			if tc.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.wantValue, v)
				return
			}
			require.True(t, futures.IsCompletionError(err))
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Equal(t, tc.wantSuppressed, futures.Suppressed(err))
		})
	}
}

func TestThenApplyWithResourceBodyPanics(t *testing.T) {
	closeErr := errors.New("close failed")

	t.Run("close ok", func(t *testing.T) {
		rec := &closeRecorder{}
		out := futures.ThenApplyWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (int, error) {
			panic("body blew up")
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load(), "a panicking body must still release")
		require.True(t, futures.IsCompletionError(err))

		var pe *futures.PanicError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "body blew up", pe.Value)
	})

	t.Run("close fails", func(t *testing.T) {
		rec := &closeRecorder{closeErr: closeErr}
		out := futures.ThenApplyWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (int, error) {
			panic("body blew up")
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())

		var pe *futures.PanicError
		require.True(t, errors.As(err, &pe), "the panic stays primary")
		assert.Equal(t, []error{closeErr}, futures.Suppressed(err))
	})
}

func TestThenApplyWithResourceNilResource(t *testing.T) {
	var calls atomic.Int32
	var sawNil atomic.Bool

	out := futures.ThenApplyWithResource(futures.Completed[io.Closer](nil), func(r io.Closer) (string, error) {
		calls.Add(1)
		sawNil.Store(r == nil)
		return "ran", nil
	})

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "ran", v)
	assert.Equal(t, int32(1), calls.Load(), "the function still runs with a nil resource")
	assert.True(t, sawNil.Load())
}

func TestThenApplyWithResourceInputFailure(t *testing.T) {
	boom := errors.New("acquisition failed")
	var calls atomic.Int32

	out := futures.ThenApplyWithResource(futures.Failed[io.Closer](boom), func(io.Closer) (int, error) {
		calls.Add(1)
		return 0, nil
	})

	_, err := out.Get()
	assert.Equal(t, int32(0), calls.Load(), "the function must not run when acquisition failed")
	require.True(t, futures.IsCompletionError(err))
	assert.ErrorIs(t, err, boom)
}

func TestThenApplyWithResourceAsync(t *testing.T) {
	rec := &closeRecorder{}
	out := futures.ThenApplyWithResourceAsync(futures.Completed[io.Closer](rec), func(io.Closer) (int, error) {
		return 5, nil
	}, futures.SpawnGoroutine())

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 5, v)
	assert.Equal(t, int32(1), rec.closes.Load())
}

func TestThenComposeWithResourceDefersRelease(t *testing.T) {
	rec := &closeRecorder{}
	nested := futures.New[string]()

	out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[string], error) {
		return nested, nil
	})

	assert.False(t, out.IsDone())
	assert.Equal(t, int32(0), rec.closes.Load(), "release must wait for the nested future")

	nested.Complete("done")

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, "done", v)
	assert.Equal(t, int32(1), rec.closes.Load())
}

func TestThenComposeWithResourceComposeFailure(t *testing.T) {
	composeErr := errors.New("compose failed")
	closeErr := errors.New("close failed")

	t.Run("close ok", func(t *testing.T) {
		rec := &closeRecorder{}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			return nil, composeErr
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load(), "the guard releases when the compose function fails")
		require.True(t, futures.IsCompletionError(err))
		assert.ErrorIs(t, err, composeErr)
		assert.Nil(t, futures.Suppressed(err))
	})

	t.Run("close fails", func(t *testing.T) {
		rec := &closeRecorder{closeErr: closeErr}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			return nil, composeErr
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())
		assert.ErrorIs(t, err, composeErr)
		assert.Equal(t, []error{closeErr}, futures.Suppressed(err))
	})

	t.Run("panic releases too", func(t *testing.T) {
		rec := &closeRecorder{}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			panic("compose blew up")
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())

		var pe *futures.PanicError
		require.True(t, errors.As(err, &pe))
	})
}

func TestThenComposeWithResourceNilFuture(t *testing.T) {
	rec := &closeRecorder{}
	out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
		return nil, nil
	})

	_, err := out.Get()
	assert.Equal(t, int32(1), rec.closes.Load(), "the guard releases when no nested future was produced")
	require.True(t, futures.IsCompletionError(err))
	assert.ErrorIs(t, err, futures.ErrNilFuture)
}

func TestThenComposeWithResourceNestedOutcomes(t *testing.T) {
	nestedErr := errors.New("nested failed")
	closeErr := errors.New("close failed")

	t.Run("nested fails close ok", func(t *testing.T) {
		rec := &closeRecorder{}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			return futures.Failed[int](nestedErr), nil
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())
		require.True(t, futures.IsCompletionError(err))
		assert.ErrorIs(t, err, nestedErr)
		assert.Nil(t, futures.Suppressed(err))
	})

	t.Run("nested fails close fails", func(t *testing.T) {
		rec := &closeRecorder{closeErr: closeErr}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			return futures.Failed[int](nestedErr), nil
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())
		require.True(t, futures.IsCompletionError(err))
		assert.ErrorIs(t, err, nestedErr, "the nested failure stays primary")
		assert.Equal(t, []error{closeErr}, futures.Suppressed(err))
	})

	t.Run("nested succeeds close fails", func(t *testing.T) {
		rec := &closeRecorder{closeErr: closeErr}
		out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
			return futures.Completed(1), nil
		})

		_, err := out.Get()
		assert.Equal(t, int32(1), rec.closes.Load())
		require.True(t, futures.IsCompletionError(err))
		assert.ErrorIs(t, err, closeErr, "a release failure after success becomes primary")
	})
}

func TestThenComposeWithResourceSuppressionOrder(t *testing.T) {
	closeErr := errors.New("close failed")
	earlier := errors.New("earlier suppressed")
	primary := errors.New("primary")

	rec := &closeRecorder{closeErr: closeErr}
	carried := futures.Suppress(primary, earlier)

	out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
		return futures.Failed[int](carried), nil
	})

	_, err := out.Get()
	assert.ErrorIs(t, err, primary)
	assert.Equal(t, []error{earlier, closeErr}, futures.Suppressed(err),
		"the release failure lands after entries already recorded")
}

func TestThenComposeWithResourceNilResource(t *testing.T) {
	out := futures.ThenComposeWithResource(futures.Completed[io.Closer](nil), func(io.Closer) (*futures.Future[int], error) {
		return futures.Completed(3), nil
	})

	v, err := out.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestThenComposeWithResourceInputFailure(t *testing.T) {
	boom := errors.New("acquisition failed")
	var calls atomic.Int32

	out := futures.ThenComposeWithResource(futures.Failed[io.Closer](boom), func(io.Closer) (*futures.Future[int], error) {
		calls.Add(1)
		return futures.Completed(0), nil
	})

	_, err := out.Get()
	assert.Equal(t, int32(0), calls.Load())
	require.True(t, futures.IsCompletionError(err))
	assert.ErrorIs(t, err, boom)
}

func TestThenComposeWithResourceEncodedNestedFailure(t *testing.T) {
	encoded := futures.NewCompletionError(errors.New("boom"))
	rec := &closeRecorder{}

	out := futures.ThenComposeWithResource(futures.Completed[io.Closer](rec), func(io.Closer) (*futures.Future[int], error) {
		return futures.Failed[int](encoded), nil
	})

	_, err := out.Get()
	assert.Equal(t, int32(1), rec.closes.Load())
	if err != error(encoded) {
		t.Fatalf("expected the original encoded failure, got %v", err)
	}
}
