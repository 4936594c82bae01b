package showcase

import (
	"context"

	"github.com/rise-and-shine/decorators/logger"
	"github.com/rise-and-shine/decorators/operation"
)

// Greeting is what every greet operation returns.
const Greeting = "Здарова, бандиты!"

// Pair is the input of the two-element sum.
type Pair struct {
	A int `json:"a"`
	B int `json:"b"`
}

// Nothing is the input and result of operations that take or return nothing.
type Nothing = struct{}

func foo(l logger.Logger) operation.Operation[Nothing, Nothing] {
	return operation.Func("foo", func(ctx context.Context, _ Nothing) (Nothing, error) {
		l.WithContext(ctx).Info("now executing foo")
		return Nothing{}, nil
	})
}

// greeter builds a greet operation under the given name; the lesson defines
// the same body several times to show different ways of applying decorators.
func greeter(l logger.Logger, name string) operation.Operation[Nothing, string] {
	return operation.Func(name, func(ctx context.Context, _ Nothing) (string, error) {
		l.WithContext(ctx).Infof("now executing %s", name)
		return Greeting, nil
	})
}

func sumOfTwo(l logger.Logger) operation.Operation[Pair, int] {
	const name = "get_sum_of_two_elements"

	return operation.Func(name, func(ctx context.Context, in Pair) (int, error) {
		sum := in.A + in.B
		l.WithContext(ctx).Infof("result of %s: %d", name, sum)
		return sum, nil
	})
}

// sumOfArgs is the argument bag flavour of sumOfTwo. Every positional input
// is added; the optional named input "scale" multiplies the sum.
func sumOfArgs(l logger.Logger) operation.Operation[operation.Args, int] {
	const name = "get_sum_of_args"

	return operation.Func(name, func(ctx context.Context, in operation.Args) (int, error) {
		sum := 0
		for i := range in.Len() {
			n, err := in.IntAt(i)
			if err != nil {
				return 0, err
			}
			sum += n
		}

		if _, err := in.Get("scale"); err == nil {
			scale, err := in.NamedInt("scale")
			if err != nil {
				return 0, err
			}
			sum *= scale
		}

		l.WithContext(ctx).Infof("result of %s: %d", name, sum)
		return sum, nil
	})
}
