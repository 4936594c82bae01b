package decorator

import (
	"context"
	"fmt"
	"runtime"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

const CodePanicRecovered = "PANIC_RECOVERED"

type RecoveryWrapper[I operation.Input, R operation.Result] struct {
	logger logger.Logger
	next   operation.Operation[I, R]
}

// NewRecoveryWrapper turns a panic inside the wrapped operation into an
// internal errx error. Errors returned normally pass through untouched.
func NewRecoveryWrapper[I operation.Input, R operation.Result](l logger.Logger) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &RecoveryWrapper[I, R]{
			logger: l.Named("decorator.recovery").With("operation", next.Name()),
			next:   next,
		}
	}
}

func (w *RecoveryWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *RecoveryWrapper[I, R]) Execute(ctx context.Context, input I) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			stackTrace := make([]byte, 4096) // 4KB
			stackTrace = stackTrace[:runtime.Stack(stackTrace, false)]

			w.logger.
				WithContext(ctx).
				With("stack_trace", string(stackTrace)).
				With("panic_values", fmt.Sprintf("%v", r)).
				Error("panic recovered in recovery wrapper")

			var zero R
			result = zero
			err = errx.New("panic recovered in recovery wrapper",
				errx.WithType(errx.T_Internal),
				errx.WithCode(CodePanicRecovered),
				errx.WithDetails(errx.D{
					"operation":    w.next.Name(),
					"stack_trace":  string(stackTrace),
					"panic_values": fmt.Sprintf("%v", r),
				}),
			)
		}
	}()

	return w.next.Execute(ctx, input)
}
