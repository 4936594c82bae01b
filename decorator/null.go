package decorator

import (
	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

// Null is the simplest possible decorator. It reports that it was applied and
// hands the original operation back untouched, so invocations go straight to it.
func Null[I operation.Input, R operation.Result](l logger.Logger) operation.WrapFunc[I, R] {
	l = l.Named("decorator.null")

	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		l.With("operation", next.Name()).Info("entering null decorator")
		return next
	}
}
