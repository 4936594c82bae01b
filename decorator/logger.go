package decorator

import (
	"context"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/mask"
	"github.com/rise-and-shine/decorators/operation"
)

type LoggerWrapper[I operation.Input, R operation.Result] struct {
	logger logger.Logger
	next   operation.Operation[I, R]
}

// NewLoggerWrapper logs before and after every invocation. The input is
// logged as received, which for operation.Args means both positional and
// named inputs. Fields tagged `mask:"true"` are hidden in the log but reach
// the operation untouched.
func NewLoggerWrapper[I operation.Input, R operation.Result](l logger.Logger) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &LoggerWrapper[I, R]{
			logger: l.Named("decorator.logger").With("operation", next.Name()),
			next:   next,
		}
	}
}

func (w *LoggerWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *LoggerWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	log := w.logger.WithContext(ctx)

	log.With("input", mask.Value(input)).Infof("preparing to execute %s", w.next.Name())

	result, err := w.next.Execute(ctx, input)
	if err != nil {
		e := errx.AsErrorX(err)
		log.With("error", map[string]any{
			"code":    e.Code(),
			"message": e.Error(),
			"type":    e.Type().String(),
			"fields":  e.Fields(),
			"details": e.Details(),
		}).Errorf("%s failed", w.next.Name())
		return result, err
	}

	log.With("result", mask.Value(result)).Infof("%s executed", w.next.Name())

	return result, nil
}
