package decorator

import (
	"context"
	"time"

	"github.com/rise-and-shine/decorators/operation"
)

type TimeoutWrapper[I operation.Input, R operation.Result] struct {
	timeout time.Duration
	next    operation.Operation[I, R]
}

// NewTimeoutWrapper bounds every invocation with a context deadline.
// A non-positive timeout leaves the context untouched.
func NewTimeoutWrapper[I operation.Input, R operation.Result](timeout time.Duration) operation.WrapFunc[I, R] {
	return func(next operation.Operation[I, R]) operation.Operation[I, R] {
		return &TimeoutWrapper[I, R]{timeout: timeout, next: next}
	}
}

func (w *TimeoutWrapper[I, R]) Name() string {
	return w.next.Name()
}

func (w *TimeoutWrapper[I, R]) Execute(ctx context.Context, input I) (R, error) {
	if w.timeout <= 0 {
		return w.next.Execute(ctx, input)
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.next.Execute(ctx, input)
}
