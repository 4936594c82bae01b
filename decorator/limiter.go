package decorator

import (
	"context"
	"sync/atomic"

	"github.com/rise-and-shine/decorators/operation"
	"github.com/rise-and-shine/decorators/val"
)

// LimitPolicy decides what happens once the counter has reached the limit.
type LimitPolicy string

const (
	// LimitTotal makes the limit a lifetime budget. The counter stops at the
	// limit and later calls return an empty result without invoking anything.
	LimitTotal LimitPolicy = "total"

	// LimitPerCall makes every call collect limit results. The counter keeps
	// growing across calls and is never reset.
	LimitPerCall LimitPolicy = "per_call"
)

// LimiterConfig is the file/flag representation of a call limiter.
type LimiterConfig struct {
	Limit  int    `yaml:"limit"  validate:"gte=0"                   default:"3"`
	Policy string `yaml:"policy" validate:"oneof=total per_call" default:"total"`
}

// LimiterOption customizes NewCallLimiter.
type LimiterOption func(*limiterOptions)

type limiterOptions struct {
	policy LimitPolicy
}

// WithPolicy selects the re-entry policy. LimitTotal is the default.
func WithPolicy(p LimitPolicy) LimiterOption {
	return func(o *limiterOptions) {
		o.policy = p
	}
}

// Limiter is a Wrapping Construct already bound to its limit.
type Limiter[I operation.Input, R operation.Result] func(operation.Operation[I, R]) *Limited[I, R]

// NewCallLimiter binds limit and returns the construct that wraps operations.
//
//	sum := decorator.NewCallLimiter[Pair, int](3)(sum2)
//	res, _ := sum.Execute(ctx, Pair{A: 5, B: 6}) // [11 11 11]
//	sum.CallsCount()                             // 3
func NewCallLimiter[I operation.Input, R operation.Result](limit int, opts ...LimiterOption) Limiter[I, R] {
	o := limiterOptions{policy: LimitTotal}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next operation.Operation[I, R]) *Limited[I, R] {
		return &Limited[I, R]{
			next:   next,
			limit:  int64(limit),
			policy: o.policy,
		}
	}
}

// NewCallLimiterFromConfig validates cfg and builds the matching limiter.
func NewCallLimiterFromConfig[I operation.Input, R operation.Result](cfg LimiterConfig) (Limiter[I, R], error) {
	if err := val.ValidateSchema(cfg); err != nil {
		return nil, err
	}
	return NewCallLimiter[I, R](cfg.Limit, WithPolicy(LimitPolicy(cfg.Policy))), nil
}

// Limited repeatedly invokes the wrapped operation with the same input and
// collects the results in invocation order.
type Limited[I operation.Input, R operation.Result] struct {
	next   operation.Operation[I, R]
	limit  int64
	policy LimitPolicy
	calls  atomic.Int64
}

var _ operation.Operation[struct{}, []struct{}] = (*Limited[struct{}, struct{}])(nil)

func (l *Limited[I, R]) Name() string {
	return l.next.Name()
}

// Limit returns the configured limit.
func (l *Limited[I, R]) Limit() int {
	return int(l.limit)
}

// CallsCount returns how many times the wrapped operation has been invoked.
func (l *Limited[I, R]) CallsCount() int {
	return int(l.calls.Load())
}

// Execute never invokes the wrapped operation when the limit is not positive.
// An error from the wrapped operation is returned unchanged and the results
// gathered so far are dropped; the failed invocation still counts.
func (l *Limited[I, R]) Execute(ctx context.Context, input I) ([]R, error) {
	if l.limit <= 0 {
		return []R{}, nil
	}

	if l.policy == LimitPerCall {
		return l.executePerCall(ctx, input)
	}
	return l.executeTotal(ctx, input)
}

func (l *Limited[I, R]) executeTotal(ctx context.Context, input I) ([]R, error) {
	results := make([]R, 0, max(l.limit-l.calls.Load(), 0))

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// increment-and-compare is one step so concurrent callers never
		// overshoot the limit
		n := l.calls.Load()
		if n >= l.limit {
			return results, nil
		}
		if !l.calls.CompareAndSwap(n, n+1) {
			continue
		}

		result, err := l.next.Execute(ctx, input)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
}

func (l *Limited[I, R]) executePerCall(ctx context.Context, input I) ([]R, error) {
	results := make([]R, 0, l.limit)

	for range l.limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		l.calls.Add(1)

		result, err := l.next.Execute(ctx, input)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}
