package decorator

import (
	"context"
	"time"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/mask"
	"github.com/rise-and-shine/decorators/operation"
)

type BenchmarkWrapper[I operation.Input, R operation.Result] struct {
	logger logger.Logger
	next   operation.Operation[I, R]
}

// NewBenchmarkWrapper measures how long each invocation takes and logs the
// elapsed time together with the result.
func NewBenchmarkWrapper[I operation.Input, R operation.Result](l logger.Logger) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &BenchmarkWrapper[I, R]{
			logger: l.Named("decorator.benchmark").With("operation", next.Name()),
			next:   next,
		}
	}
}

func (b *BenchmarkWrapper[I, R]) Name() string {
	return b.next.Name()
}

func (b *BenchmarkWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	start := time.Now()

	result, err := b.next.Execute(ctx, input)

	elapsed := time.Since(start)

	log := b.logger.
		WithContext(ctx).
		With("execution_time", elapsed.String()).
		With("elapsed_seconds", elapsed.Seconds())

	if err != nil {
		log.With("error", err.Error()).Warn("operation failed")
		return result, err
	}

	log.With("result", mask.Value(result)).Info("operation benchmarked")

	return result, nil
}
