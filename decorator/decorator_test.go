package decorator_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rise-and-shine/decorators/decorator"
	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

type pair struct {
	A, B int
}

// counted returns an operation adding the pair and the number of times it ran.
func counted(name string) (operation.Operation[pair, int], *atomic.Int32) {
	calls := &atomic.Int32{}
	op := operation.Func(name, func(_ context.Context, in pair) (int, error) {
		calls.Add(1)
		return in.A + in.B, nil
	})
	return op, calls
}

func failing(name string, err error) (operation.Operation[pair, int], *atomic.Int32) {
	calls := &atomic.Int32{}
	op := operation.Func(name, func(context.Context, pair) (int, error) {
		calls.Add(1)
		return 0, err
	})
	return op, calls
}

func observed() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.FromZap(zap.New(core)), logs
}

func passThroughWrappers(t *testing.T) map[string]operation.WrapFunc[pair, int] {
	t.Helper()

	metrics, err := decorator.NewMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	return map[string]operation.WrapFunc[pair, int]{
		"null":      decorator.Null[pair, int](logger.Nop()),
		"benchmark": decorator.NewBenchmarkWrapper[pair, int](logger.Nop()),
		"logger":    decorator.NewLoggerWrapper[pair, int](logger.Nop()),
		"timeout":   decorator.NewTimeoutWrapper[pair, int](time.Second),
		"meta":      decorator.NewMetaInjectWrapper[pair, int]("svc", "v1"),
		"tracing":   decorator.NewTracingWrapper[pair, int](nil),
		"recovery":  decorator.NewRecoveryWrapper[pair, int](logger.Nop()),
		"retry":     decorator.NewRetryWrapper[pair, int](decorator.RetryConfig{Attempts: 1}, logger.Nop()),
		"metrics":   decorator.NewMetricsWrapper[pair, int](metrics),
	}
}

func TestWrappersPassThrough(t *testing.T) {
	for name, wrap := range passThroughWrappers(t) {
		t.Run(name, func(t *testing.T) {
			op, calls := counted("sum2")
			wrapped := wrap(op)

			direct, err := op.Execute(t.Context(), pair{A: 3, B: 4})
			require.NoError(t, err)
			calls.Store(0)

			res, err := wrapped.Execute(t.Context(), pair{A: 3, B: 4})

			require.NoError(t, err)
			assert.Equal(t, direct, res)
			assert.Equal(t, int32(1), calls.Load())
			assert.Equal(t, "sum2", wrapped.Name())
		})
	}
}

func TestWrappersPropagateErrorsUnchanged(t *testing.T) {
	errBoom := errors.New("boom")

	for name, wrap := range passThroughWrappers(t) {
		t.Run(name, func(t *testing.T) {
			op, calls := failing("sum2", errBoom)

			_, err := wrap(op).Execute(t.Context(), pair{A: 1, B: 2})

			assert.Same(t, errBoom, err)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestNull(t *testing.T) {
	l, logs := observed()
	op, calls := counted("foo")

	wrapped := decorator.Null[pair, int](l)(op)

	// applying logs once, invoking logs nothing
	assert.Same(t, op, wrapped)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "entering null decorator", logs.All()[0].Message)

	_, err := wrapped.Execute(t.Context(), pair{})
	require.NoError(t, err)
	_, err = wrapped.Execute(t.Context(), pair{})
	require.NoError(t, err)

	assert.Equal(t, 1, logs.Len())
	assert.Equal(t, int32(2), calls.Load())
}

func TestChainOfWrappers(t *testing.T) {
	l, logs := observed()
	op, calls := counted("sum2")

	wrapped := operation.Chain(op,
		decorator.NewMetaInjectWrapper[pair, int]("svc", "v1"),
		decorator.NewLoggerWrapper[pair, int](l),
		decorator.NewBenchmarkWrapper[pair, int](l),
	)

	res, err := wrapped.Execute(t.Context(), pair{A: 3, B: 4})

	require.NoError(t, err)
	assert.Equal(t, 7, res)
	assert.Equal(t, int32(1), calls.Load())

	messages := make([]string, 0, logs.Len())
	for _, entry := range logs.All() {
		messages = append(messages, entry.Message)
		assert.Equal(t, "sum2", entry.ContextMap()["operation_name"])
	}
	assert.Equal(t, []string{"preparing to execute sum2", "operation benchmarked", "sum2 executed"}, messages)
}
