package decorator_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/decorators/decorator"
	"github.com/rise-and-shine/decorators/val"
)

func TestCallLimiter(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		input     pair
		want      []int
		wantCalls int32
	}{
		{name: "limit 3 on sum2(5, 6)", limit: 3, input: pair{A: 5, B: 6}, want: []int{11, 11, 11}, wantCalls: 3},
		{name: "limit 1", limit: 1, input: pair{A: 1, B: 2}, want: []int{3}, wantCalls: 1},
		{name: "zero limit never invokes", limit: 0, input: pair{A: 1, B: 2}, want: []int{}, wantCalls: 0},
		{name: "negative limit never invokes", limit: -4, input: pair{A: 1, B: 2}, want: []int{}, wantCalls: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			op, calls := counted("sum2")
			limited := decorator.NewCallLimiter[pair, int](tc.limit)(op)

			assert.Equal(t, 0, limited.CallsCount())

			res, err := limited.Execute(t.Context(), tc.input)

			require.NoError(t, err)
			require.NotNil(t, res)
			assert.Equal(t, tc.want, res)
			assert.Equal(t, tc.wantCalls, calls.Load())
			assert.Equal(t, int(tc.wantCalls), limited.CallsCount())
			assert.Equal(t, tc.limit, limited.Limit())
			assert.Equal(t, "sum2", limited.Name())
		})
	}
}

func TestCallLimiterReentry(t *testing.T) {
	t.Run("total policy is terminal at the limit", func(t *testing.T) {
		op, calls := counted("sum2")
		limited := decorator.NewCallLimiter[pair, int](3)(op)

		first, err := limited.Execute(t.Context(), pair{A: 5, B: 6})
		require.NoError(t, err)
		second, err := limited.Execute(t.Context(), pair{A: 5, B: 6})
		require.NoError(t, err)

		assert.Equal(t, []int{11, 11, 11}, first)
		assert.Empty(t, second)
		assert.NotNil(t, second)
		assert.Equal(t, 3, limited.CallsCount())
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("per call policy keeps accumulating", func(t *testing.T) {
		op, calls := counted("sum2")
		limited := decorator.NewCallLimiter[pair, int](3, decorator.WithPolicy(decorator.LimitPerCall))(op)

		first, err := limited.Execute(t.Context(), pair{A: 5, B: 6})
		require.NoError(t, err)
		second, err := limited.Execute(t.Context(), pair{A: 1, B: 1})
		require.NoError(t, err)

		assert.Equal(t, []int{11, 11, 11}, first)
		assert.Equal(t, []int{2, 2, 2}, second)
		assert.Equal(t, 6, limited.CallsCount())
		assert.Equal(t, int32(6), calls.Load())
	})
}

func TestCallLimiterPropagatesError(t *testing.T) {
	errBoom := errors.New("boom")
	op, calls := failing("sum2", errBoom)
	limited := decorator.NewCallLimiter[pair, int](3)(op)

	res, err := limited.Execute(t.Context(), pair{})

	assert.Same(t, errBoom, err)
	assert.Nil(t, res)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, 1, limited.CallsCount())
}

func TestCallLimiterStopsOnCancelledContext(t *testing.T) {
	op, calls := counted("sum2")
	limited := decorator.NewCallLimiter[pair, int](3)(op)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := limited.Execute(ctx, pair{})

	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), calls.Load())
	assert.Equal(t, 0, limited.CallsCount())
}

func TestCallLimiterConcurrentCallersNeverOvershoot(t *testing.T) {
	const (
		limit   = 500
		callers = 16
	)

	op, calls := counted("sum2")
	limited := decorator.NewCallLimiter[pair, int](limit)(op)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
	)
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := limited.Execute(context.Background(), pair{A: 1, B: 1})
			assert.NoError(t, err)

			mu.Lock()
			total += len(res)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, limit, total)
	assert.Equal(t, limit, limited.CallsCount())
	assert.Equal(t, int32(limit), calls.Load())
}

func TestNewCallLimiterFromConfig(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		build, err := decorator.NewCallLimiterFromConfig[pair, int](decorator.LimiterConfig{Limit: 2, Policy: "per_call"})
		require.NoError(t, err)

		op, _ := counted("sum2")
		limited := build(op)
		_, err = limited.Execute(t.Context(), pair{})
		require.NoError(t, err)
		_, err = limited.Execute(t.Context(), pair{})
		require.NoError(t, err)

		assert.Equal(t, 4, limited.CallsCount())
	})

	t.Run("invalid policy", func(t *testing.T) {
		_, err := decorator.NewCallLimiterFromConfig[pair, int](decorator.LimiterConfig{Limit: 2, Policy: "forever"})

		require.Error(t, err)
		assert.True(t, errx.IsCodeIn(err, val.CodeValidationFailed))
	})
}
