// Package operation defines the unit that wrappers decorate.
//
// An Operation is a named unit of behavior taking one input value and producing
// one result or an error. Fixed-arity operations take a plain struct as input;
// operations that want positional and named inputs take an Args bag.
// Operations are immutable once defined.
package operation

import "context"

type (
	// Input represents the input type for an operation.
	Input any

	// Result represents the result type for an operation.
	Result any
)

// Operation is a callable unit identified by a name.
type Operation[I Input, R Result] interface {
	// Name returns the identifier used in logs, spans and metrics.
	Name() string

	// Execute runs the operation with the given input.
	Execute(ctx context.Context, input I) (R, error)
}

// WrapFunc transforms one Operation into another with augmented behavior.
// The returned Operation must accept exactly the inputs the original accepts.
type WrapFunc[I Input, R Result] func(Operation[I, R]) Operation[I, R]

// Func adapts an ordinary function into a named Operation.
func Func[I Input, R Result](name string, fn func(context.Context, I) (R, error)) Operation[I, R] {
	return &funcOperation[I, R]{name: name, fn: fn}
}

type funcOperation[I Input, R Result] struct {
	name string
	fn   func(context.Context, I) (R, error)
}

func (f *funcOperation[I, R]) Name() string {
	return f.name
}

func (f *funcOperation[I, R]) Execute(ctx context.Context, input I) (R, error) {
	return f.fn(ctx, input)
}

// Chain applies wrappers to op so that the first wrapper is the outermost one.
//
// Chain(op, a, b, c) produces a(b(c(op))).
func Chain[I Input, R Result](op Operation[I, R], wrappers ...WrapFunc[I, R]) Operation[I, R] {
	for i := len(wrappers) - 1; i >= 0; i-- {
		op = wrappers[i](op)
	}
	return op
}
