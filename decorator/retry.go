package decorator

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/code19m/errx"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

// RetryConfig configures NewRetryWrapper.
type RetryConfig struct {
	// Attempts is the total number of invocations including the first one.
	Attempts uint `yaml:"attempts" validate:"min=1" default:"1"`

	// Delay is the fixed pause between attempts.
	Delay time.Duration `yaml:"delay" default:"100ms"`
}

type RetryWrapper[I operation.Input, R operation.Result] struct {
	cfg    RetryConfig
	logger logger.Logger
	next   operation.Operation[I, R]
}

// NewRetryWrapper re-invokes the wrapped operation while it fails, up to
// cfg.Attempts times. Validation errors are not retried. The error of the last
// attempt is returned as is.
func NewRetryWrapper[I operation.Input, R operation.Result](
	cfg RetryConfig,
	l logger.Logger,
) operation.WrapFunc[I, R] {
	if cfg.Attempts == 0 {
		cfg.Attempts = 1
	}

	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &RetryWrapper[I, R]{
			cfg:    cfg,
			logger: l.Named("decorator.retry").With("operation", next.Name()),
			next:   next,
		}
	}
}

func (w *RetryWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *RetryWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	if w.cfg.Attempts == 1 {
		return w.next.Execute(ctx, input)
	}

	log := w.logger.WithContext(ctx)

	return retry.DoWithData(
		func() (R, error) {
			return w.next.Execute(ctx, input)
		},
		retry.Attempts(w.cfg.Attempts),
		retry.Delay(w.cfg.Delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errx.GetType(err) != errx.T_Validation
		}),
		retry.OnRetry(func(n uint, err error) {
			log.
				With("error", err.Error()).
				With("attempt", n+1).
				With("max_attempts", w.cfg.Attempts).
				Warn("retrying operation")
		}),
		retry.Context(ctx),
	)
}
